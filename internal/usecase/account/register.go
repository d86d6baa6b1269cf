package account

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type Register struct {
	repo   domain.Repository
	tokens *auth.Tokens
	audit  *audit.Dispatcher
}

func NewRegister(
	repo domain.Repository,
	tokens *auth.Tokens,
	audit *audit.Dispatcher,
) *Register {
	return &Register{
		repo:   repo,
		tokens: tokens,
		audit:  audit,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*Session, error) {
	email := domain.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	if name == "" || len(in.Password) < domain.MinPasswordLength {
		return nil, httperr.ErrInvalid("invalid_request")
	}
	if in.Phone != "" && !validators.IsPhoneValid(in.Phone) {
		return nil, httperr.ErrInvalid("invalid_phone")
	}
	if !validators.IsEmailDomainValid(email) {
		return nil, httperr.ErrInvalid("invalid_email_domain")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customer := models.Customer{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        validators.NormalizePhone(in.Phone),
		IsActive:     true,
	}

	if err := uc.repo.CreateCustomer(ctx, &customer); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   audit.Ref(customer.ID),
		ActorRole: domain.RoleCustomer,
		Action:    audit.ActionCustomerRegistered,
		Entity:    "customer",
		EntityID:  audit.Ref(customer.ID),
	})

	return newSession(uc.tokens, customer.ID, customer.Name, customer.Email, domain.RoleCustomer)
}
