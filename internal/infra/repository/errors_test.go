package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestLookupErr(t *testing.T) {
	err := lookupErr("appointment", "get appointment", gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, httperr.ErrNotFound)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	err = lookupErr("appointment", "get appointment", errors.New("connection refused"))
	assert.ErrorIs(t, err, httperr.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, httperr.ErrNotFound)
}

func TestWriteErr(t *testing.T) {
	exclusion := &pgconn.PgError{Code: "23P01"}
	err := writeErr("slot_unavailable", "create appointment", exclusion)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	unique := &pgconn.PgError{Code: "23505"}
	err = writeErr("already_rated", "create rating", unique)
	assert.True(t, httperr.IsBusiness(err, "already_rated"))

	err = writeErr("slot_unavailable", "create appointment", &pgconn.PgError{Code: "57P01"})
	assert.ErrorIs(t, err, httperr.ErrStoreUnavailable)
}
