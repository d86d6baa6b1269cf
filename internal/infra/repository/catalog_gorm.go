package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, lookupErr("service", "get service", err)
	}
	return &svc, nil
}

func (r *CatalogGormRepository) ListActiveServices(
	ctx context.Context,
	category string,
) ([]models.Service, error) {

	tx := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var services []models.Service
	if err := tx.Order("category ASC, name ASC").Find(&services).Error; err != nil {
		return nil, httperr.StoreUnavailable("list services", err)
	}
	return services, nil
}

func (r *CatalogGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, lookupErr("barber", "get barber", err)
	}
	return &barber, nil
}

func (r *CatalogGormRepository) ListActiveBarbers(
	ctx context.Context,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, httperr.StoreUnavailable("list barbers", err)
	}
	return barbers, nil
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
