package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// conflictCodes are answered with 409 instead of 400.
var conflictCodes = map[string]bool{
	"slot_unavailable":         true,
	"already_rated":            true,
	"email_already_registered": true,
}

var messages = map[string]string{
	"slot_unavailable":           "Barber is not available at the selected time.",
	"slot_in_past":               "Appointment time must be in the future.",
	"outside_business_hours":     "Appointments can only be booked between 9:00 AM and 7:00 PM.",
	"cancellation_window_closed": "Appointments can only be cancelled at least 2 hours in advance.",
	"invalid_state":              "Appointment cannot change to the requested status.",
	"invalid_status":             "Unknown appointment status.",
	"invalid_date":               "Invalid date.",
	"invalid_date_or_time":       "Invalid date or time.",
	"appointment_not_found":      "Appointment not found.",
	"service_not_found":          "Service not found.",
	"service_inactive":           "Service is not available.",
	"barber_not_found":           "Barber not found.",
	"barber_inactive":            "Barber is not available.",
	"already_rated":              "You have already rated this appointment.",
	"not_rateable":               "Only completed appointments can be rated.",
	"rating_window_closed":       "Rating period has expired (7 days after completion).",
	"invalid_rating":             "Rating must be between 1 and 5.",
	"review_too_long":            "Review cannot exceed 1000 characters.",
	"email_already_registered":   "Email already exists.",
	"invalid_credentials":        "Invalid email or password.",
	"account_inactive":           "Account is disabled.",
	"forbidden":                  "You don't have permission to perform this action.",
	"invalid_request":            "Invalid request data.",
	"invalid_id":                 "Invalid identifier.",
	"invalid_phone":              "Please provide a valid phone number.",
	"invalid_email_domain":       "The email domain does not appear to be valid.",
	"current_password_incorrect": "Current password is incorrect.",
	"password_mismatch":          "New passwords do not match.",
	"password_too_short":         "Password must be at least 6 characters.",
}

// Message returns the user-facing text for a business code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Request could not be processed."
}

// Respond maps err onto the error taxonomy and writes it.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	switch {
	case errors.Is(err, ErrStoreUnavailable):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("store unavailable")
		Write(c, http.StatusServiceUnavailable, "store_unavailable", "Service temporarily unavailable, please try again.")
	case errors.As(err, &be):
		Write(c, StatusFor(be), be.Code, Message(be.Code))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		Internal(c, "internal_error", "Unexpected error.")
	}
}

func StatusFor(be BusinessError) int {
	switch {
	case errors.Is(be.Kind, ErrNotFound):
		return http.StatusNotFound
	case be.Code == "forbidden":
		return http.StatusForbidden
	case be.Code == "invalid_credentials":
		return http.StatusUnauthorized
	case conflictCodes[be.Code]:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
