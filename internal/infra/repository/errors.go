package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// lookupErr maps a single-row read failure.
func lookupErr(entity, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrEntityNotFound(entity)
	}
	return httperr.StoreUnavailable(op, err)
}

// writeErr maps an insert failure; conflictCode is returned for unique or
// exclusion violations.
func writeErr(conflictCode, op string, err error) error {
	if httperr.IsExclusionConflict(err) || httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness(conflictCode)
	}
	return httperr.StoreUnavailable(op, err)
}
