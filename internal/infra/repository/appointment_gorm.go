package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB

	// locking is set on the transactional copy handed out by WithinTransaction.
	locking bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func statusStrings(ss []domain.Status) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

// lockBarber takes the transaction-scoped advisory lock guarding one barber's
// schedule. Postgres lets a transaction take it more than once.
func lockBarber(db *gorm.DB, barberID uint) error {
	if err := db.Exec("SELECT pg_advisory_xact_lock(?)", int64(barberID)).Error; err != nil {
		return httperr.StoreUnavailable("lock barber schedule", err)
	}
	return nil
}

// --------------------------------------------------
// Scheduling
// --------------------------------------------------

// FindAppointments returns id, start and end of the barber's appointments
// starting in [q.From, q.To]. Inside a transaction it first takes a
// transaction-scoped advisory lock on the barber, so concurrent bookings for
// the same barber serialize, and then locks the returned rows.
func (r *AppointmentGormRepository) FindAppointments(
	ctx context.Context,
	q domain.Query,
) ([]domain.Booked, error) {

	db := r.db.WithContext(ctx)

	if r.locking {
		if err := lockBarber(db, q.BarberID); err != nil {
			return nil, err
		}
	}

	tx := db.
		Model(&models.Appointment{}).
		Select("id", "appointment_start", "appointment_end").
		Where(
			"barber_id = ? AND appointment_start >= ? AND appointment_start <= ?",
			q.BarberID, q.From, q.To,
		)

	if len(q.Statuses) > 0 {
		tx = tx.Where("status IN ?", statusStrings(q.Statuses))
	}
	if q.ExcludeID != 0 {
		tx = tx.Where("id <> ?", q.ExcludeID)
	}
	if r.locking {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []models.Appointment
	if err := tx.Order("appointment_start ASC").Find(&rows).Error; err != nil {
		return nil, httperr.StoreUnavailable("find appointments", err)
	}

	booked := make([]domain.Booked, 0, len(rows))
	for _, ap := range rows {
		booked = append(booked, domain.Booked{
			ID:    ap.ID,
			Start: ap.AppointmentStart,
			End:   ap.AppointmentEnd,
		})
	}
	return booked, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error
	if err != nil {
		return writeErr("slot_unavailable", "create appointment", err)
	}
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	db := r.db.WithContext(ctx)

	// Inside a transaction the row is locked until commit. The barber lock is
	// taken first so the order matches FindAppointments.
	if r.locking {
		var barberIDs []uint
		if err := db.Model(&models.Appointment{}).
			Where("id = ?", id).
			Pluck("barber_id", &barberIDs).Error; err != nil {
			return nil, httperr.StoreUnavailable("get appointment", err)
		}
		if len(barberIDs) > 0 {
			if err := lockBarber(db, barberIDs[0]); err != nil {
				return nil, err
			}
		}
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ap models.Appointment
	if err := db.
		Preload("Service").
		Preload("Barber").
		Preload("Customer").
		Preload("Rating").
		First(&ap, id).Error; err != nil {
		return nil, lookupErr("appointment", "get appointment", err)
	}

	return &ap, nil
}

// UpdateAppointment persists the appointment's own columns; loaded
// associations are left untouched.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
	if err != nil {
		return writeErr("slot_unavailable", "update appointment", err)
	}
	return nil
}

func (r *AppointmentGormRepository) ListForCustomer(
	ctx context.Context,
	q domain.ListQuery,
) ([]models.Appointment, error) {

	tx := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Preload("Rating").
		Where("customer_id = ?", q.CustomerID)

	if len(q.Statuses) > 0 {
		tx = tx.Where("status IN ?", statusStrings(q.Statuses))
	}

	if q.UpcomingFrom != nil {
		tx = tx.Where("appointment_start >= ?", *q.UpcomingFrom).
			Order("appointment_start ASC")
	} else {
		tx = tx.Order("appointment_start DESC")
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var apps []models.Appointment
	if err := tx.Find(&apps).Error; err != nil {
		return nil, httperr.StoreUnavailable("list customer appointments", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	q domain.DayQuery,
) ([]models.Appointment, error) {

	tx := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Barber").
		Where("appointment_start >= ? AND appointment_start <= ?", q.From, q.To)

	if q.Status != "" {
		tx = tx.Where("status = ?", string(q.Status))
	}

	var apps []models.Appointment
	if err := tx.Order("appointment_start ASC").Find(&apps).Error; err != nil {
		return nil, httperr.StoreUnavailable("list appointments", err)
	}
	return apps, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinTransaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx, locking: true})
	})
	if err == nil {
		return nil
	}

	var be httperr.BusinessError
	if errors.As(err, &be) || errors.Is(err, httperr.ErrStoreUnavailable) {
		return err
	}
	return httperr.StoreUnavailable("appointment transaction", err)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
