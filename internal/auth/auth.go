// Package auth carries the authenticated caller through a request and decides
// what that caller may do. The permission checks are pure functions.
package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const contextKey = "auth"

type Context struct {
	UserID uint
	Role   string
}

func (a Context) IsCustomer() bool {
	return a.Role == account.RoleCustomer
}

func (a Context) IsStaff() bool {
	return a.Role == account.RoleStaff || a.Role == account.RoleAdmin
}

func CanBook(a Context) bool {
	return a.UserID != 0 && a.IsCustomer()
}

func CanManageAppointments(a Context) bool {
	return a.UserID != 0 && a.IsStaff()
}

func OwnsAppointment(a Context, ap *models.Appointment) bool {
	return a.IsCustomer() && ap.CustomerID == a.UserID
}

func CanViewAppointment(a Context, ap *models.Appointment) bool {
	return OwnsAppointment(a, ap) || CanManageAppointments(a)
}

func Set(c *gin.Context, a Context) {
	c.Set(contextKey, a)
}

// FromGin returns the caller stored by the auth middleware.
func FromGin(c *gin.Context) (Context, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Context{}, false
	}
	a, ok := v.(Context)
	return a, ok
}
