package account

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const maxNameLength = 100

// -------- Read --------

type GetProfile struct {
	repo domain.Repository
}

func NewGetProfile(repo domain.Repository) *GetProfile {
	return &GetProfile{repo: repo}
}

func (uc *GetProfile) Execute(ctx context.Context, caller auth.Context) (*models.Customer, error) {
	if !caller.IsCustomer() {
		return nil, httperr.ErrBusiness("forbidden")
	}
	return uc.repo.GetCustomer(ctx, caller.UserID)
}

// -------- Update --------

// UpdateProfileInput fields left blank keep their current value.
type UpdateProfileInput struct {
	Caller auth.Context
	Name   string
	Phone  string
}

type UpdateProfile struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateProfile(repo domain.Repository, audit *audit.Dispatcher) *UpdateProfile {
	return &UpdateProfile{repo: repo, audit: audit}
}

func (uc *UpdateProfile) Execute(ctx context.Context, in UpdateProfileInput) (*models.Customer, error) {
	if !in.Caller.IsCustomer() {
		return nil, httperr.ErrBusiness("forbidden")
	}

	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)

	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, httperr.ErrInvalid("invalid_request")
	}
	if phone != "" && !validators.IsPhoneValid(phone) {
		return nil, httperr.ErrInvalid("invalid_phone")
	}

	c, err := uc.repo.GetCustomer(ctx, in.Caller.UserID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		c.Name = name
	}
	if phone != "" {
		c.Phone = validators.NormalizePhone(phone)
	}

	if err := uc.repo.UpdateCustomerProfile(ctx, c.ID, c.Name, c.Phone); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   audit.Ref(c.ID),
		ActorRole: domain.RoleCustomer,
		Action:    audit.ActionCustomerUpdated,
		Entity:    "customer",
		EntityID:  audit.Ref(c.ID),
	})

	return c, nil
}

// -------- Password --------

type ChangePasswordInput struct {
	Caller          auth.Context
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

type ChangePassword struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewChangePassword(repo domain.Repository, audit *audit.Dispatcher) *ChangePassword {
	return &ChangePassword{repo: repo, audit: audit}
}

func (uc *ChangePassword) Execute(ctx context.Context, in ChangePasswordInput) error {
	if !in.Caller.IsCustomer() {
		return httperr.ErrBusiness("forbidden")
	}
	if len(in.NewPassword) < domain.MinPasswordLength {
		return httperr.ErrInvalid("password_too_short")
	}
	if in.NewPassword != in.ConfirmPassword {
		return httperr.ErrInvalid("password_mismatch")
	}

	c, err := uc.repo.GetCustomer(ctx, in.Caller.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return httperr.ErrBusiness("current_password_incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := uc.repo.UpdateCustomerPassword(ctx, c.ID, string(hashed)); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   audit.Ref(c.ID),
		ActorRole: domain.RoleCustomer,
		Action:    audit.ActionPasswordChanged,
		Entity:    "customer",
		EntityID:  audit.Ref(c.ID),
	})

	return nil
}
