package account

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

const MinPasswordLength = 6

type Repository interface {
	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomer(ctx context.Context, id uint) (*models.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	RecordCustomerLogin(ctx context.Context, id uint, at time.Time) error
	UpdateCustomerProfile(ctx context.Context, id uint, name, phone string) error
	UpdateCustomerPassword(ctx context.Context, id uint, passwordHash string) error

	FindAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	RecordAdminLogin(ctx context.Context, id uint, at time.Time) error
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
