package account

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type LoginInput struct {
	Email    string
	Password string
}

var errInvalidCredentials = httperr.ErrBusiness("invalid_credentials")

// credentialErr hides whether the account exists.
func credentialErr(err error) error {
	if errors.Is(err, httperr.ErrNotFound) {
		return errInvalidCredentials
	}
	return err
}

func checkPassword(hash, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return errInvalidCredentials
	}
	return nil
}

// -------- Customer --------

type Login struct {
	repo   domain.Repository
	tokens *auth.Tokens
	now    func() time.Time
}

func NewLogin(repo domain.Repository, tokens *auth.Tokens, now func() time.Time) *Login {
	return &Login{repo: repo, tokens: tokens, now: now}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*Session, error) {
	c, err := uc.repo.FindCustomerByEmail(ctx, domain.NormalizeEmail(in.Email))
	if err != nil {
		return nil, credentialErr(err)
	}
	if err := checkPassword(c.PasswordHash, in.Password); err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, httperr.ErrBusiness("account_inactive")
	}

	if err := uc.repo.RecordCustomerLogin(ctx, c.ID, uc.now()); err != nil {
		return nil, err
	}

	return newSession(uc.tokens, c.ID, c.Name, c.Email, domain.RoleCustomer)
}

// -------- Staff --------

type StaffLogin struct {
	repo   domain.Repository
	tokens *auth.Tokens
	now    func() time.Time
}

func NewStaffLogin(repo domain.Repository, tokens *auth.Tokens, now func() time.Time) *StaffLogin {
	return &StaffLogin{repo: repo, tokens: tokens, now: now}
}

func (uc *StaffLogin) Execute(ctx context.Context, in LoginInput) (*Session, error) {
	u, err := uc.repo.FindAdminByEmail(ctx, domain.NormalizeEmail(in.Email))
	if err != nil {
		return nil, credentialErr(err)
	}
	if err := checkPassword(u.PasswordHash, in.Password); err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, httperr.ErrBusiness("account_inactive")
	}

	if err := uc.repo.RecordAdminLogin(ctx, u.ID, uc.now()); err != nil {
		return nil, err
	}

	return newSession(uc.tokens, u.ID, u.Name, u.Email, staffRole(u))
}

func staffRole(u *models.AdminUser) string {
	if u.Role == domain.RoleAdmin {
		return domain.RoleAdmin
	}
	return domain.RoleStaff
}
