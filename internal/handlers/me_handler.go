package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAccount "github.com/BruksfildServices01/barber-booking/internal/usecase/account"
)

type MeHandler struct {
	profile        *ucAccount.GetProfile
	updateProfile  *ucAccount.UpdateProfile
	changePassword *ucAccount.ChangePassword
}

func NewMeHandler(
	profile *ucAccount.GetProfile,
	updateProfile *ucAccount.UpdateProfile,
	changePassword *ucAccount.ChangePassword,
) *MeHandler {
	return &MeHandler{
		profile:        profile,
		updateProfile:  updateProfile,
		changePassword: changePassword,
	}
}

// --------- Requests ---------

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"max=100"`
	Phone string `json:"phone" binding:"omitempty,phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func profileJSON(customer *models.Customer, me auth.Context) gin.H {
	return gin.H{
		"user": gin.H{
			"id":            customer.ID,
			"name":          customer.Name,
			"email":         customer.Email,
			"phone":         customer.Phone,
			"role":          me.Role,
			"last_login_at": customer.LastLoginAt,
		},
	}
}

// --------- Handlers ---------

func (h *MeHandler) GetMe(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	customer, err := h.profile.Execute(c.Request.Context(), me)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, profileJSON(customer, me))
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.updateProfile.Execute(c.Request.Context(), ucAccount.UpdateProfileInput{
		Caller: me,
		Name:   req.Name,
		Phone:  req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, profileJSON(customer, me))
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.changePassword.Execute(c.Request.Context(), ucAccount.ChangePasswordInput{
		Caller:          me,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Password updated successfully."})
}
