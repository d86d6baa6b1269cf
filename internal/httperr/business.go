package httperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// BusinessError is an expected rule violation identified by a stable code.
// Kind, when set, classifies it under one of the sentinel errors above.
type BusinessError struct {
	Code string
	Kind error
}

func (e BusinessError) Error() string {
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Kind
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrEntityNotFound builds "<entity>_not_found", matching errors.Is(err, ErrNotFound).
func ErrEntityNotFound(entity string) error {
	return BusinessError{Code: entity + "_not_found", Kind: ErrNotFound}
}

func ErrInvalid(code string) error {
	return BusinessError{Code: code, Kind: ErrInvalidInput}
}

// StoreUnavailable wraps a data-access failure so callers can match ErrStoreUnavailable.
func StoreUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func Code(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
