package validators

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

// NormalizePhone strips the separators people usually type.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(phone)
}

func IsPhoneValid(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

func phoneField(fl validator.FieldLevel) bool {
	return IsPhoneValid(fl.Field().String())
}

// Register adds the custom tags to gin's validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("phone", phoneField)
}
