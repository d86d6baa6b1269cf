package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// -------- Customers --------

func (r *AccountGormRepository) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return writeErr("email_already_registered", "create customer", err)
	}
	return nil
}

func (r *AccountGormRepository) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, lookupErr("customer", "get customer", err)
	}
	return &c, nil
}

func (r *AccountGormRepository) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&c).Error; err != nil {
		return nil, lookupErr("customer", "find customer", err)
	}
	return &c, nil
}

func (r *AccountGormRepository) RecordCustomerLogin(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
	if err != nil {
		return httperr.StoreUnavailable("record customer login", err)
	}
	return nil
}

func (r *AccountGormRepository) UpdateCustomerProfile(ctx context.Context, id uint, name, phone string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "phone": phone})
	if res.Error != nil {
		return httperr.StoreUnavailable("update customer profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrEntityNotFound("customer")
	}
	return nil
}

func (r *AccountGormRepository) UpdateCustomerPassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return httperr.StoreUnavailable("update customer password", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrEntityNotFound("customer")
	}
	return nil
}

// -------- Staff --------

func (r *AccountGormRepository) FindAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, lookupErr("admin_user", "find admin user", err)
	}
	return &u, nil
}

func (r *AccountGormRepository) RecordAdminLogin(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
	if err != nil {
		return httperr.StoreUnavailable("record admin login", err)
	}
	return nil
}

var _ account.Repository = (*AccountGormRepository)(nil)
