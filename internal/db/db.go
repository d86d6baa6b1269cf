package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

// Migrate creates the schema. In overlap mode the database also refuses
// overlapping active appointments of one barber.
func Migrate(db *gorm.DB, mode scheduler.ConflictMode) error {
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.AdminUser{},
		&models.Barber{},
		&models.Service{},
		&models.Appointment{},
		&models.Rating{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if mode != scheduler.ConflictOverlap {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                    ADD CONSTRAINT appointments_no_overlap
                    EXCLUDE USING gist (
                        barber_id WITH =,
                        tstzrange(appointment_start, appointment_end, '[)') WITH &&
                    )
                    WHERE (status IN ('pending', 'confirmed'));
            END IF;
        END $$;
    `).Error; err != nil {
		return fmt.Errorf("add overlap constraint: %w", err)
	}

	return nil
}
