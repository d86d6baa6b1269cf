package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucAccount "github.com/BruksfildServices01/barber-booking/internal/usecase/account"
)

type AuthHandler struct {
	register   *ucAccount.Register
	login      *ucAccount.Login
	staffLogin *ucAccount.StaffLogin
}

func NewAuthHandler(
	register *ucAccount.Register,
	login *ucAccount.Login,
	staffLogin *ucAccount.StaffLogin,
) *AuthHandler {
	return &AuthHandler{
		register:   register,
		login:      login,
		staffLogin: staffLogin,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.login.Execute(c.Request.Context(), ucAccount.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, session)
}

func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.staffLogin.Execute(c.Request.Context(), ucAccount.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, session)
}
