package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/rating"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) HasRating(ctx context.Context, appointmentID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return false, httperr.StoreUnavailable("check rating", err)
	}
	return count > 0, nil
}

func (r *RatingGormRepository) CreateRating(ctx context.Context, rt *models.Rating) error {
	if err := r.db.WithContext(ctx).Omit("Customer").Create(rt).Error; err != nil {
		return writeErr("already_rated", "create rating", err)
	}
	return nil
}

func (r *RatingGormRepository) ListApprovedForBarber(
	ctx context.Context,
	barberID uint,
	limit int,
) ([]models.Rating, error) {

	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Where("barber_id = ? AND is_approved = ?", barberID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&ratings).Error; err != nil {
		return nil, httperr.StoreUnavailable("list ratings", err)
	}
	return ratings, nil
}

var _ rating.Repository = (*RatingGormRepository)(nil)
