package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/rating"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	ucAccount "github.com/BruksfildServices01/barber-booking/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
	ucRating "github.com/BruksfildServices01/barber-booking/internal/usecase/rating"
)

// Deps are the singletons the routes are built from.
type Deps struct {
	Appointments appointment.Repository
	Accounts     account.Repository
	Ratings      rating.Repository

	Catalog   *catalog.Catalog
	Scheduler *scheduler.Scheduler
	Tokens    *auth.Tokens
	Audit     *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(d.Appointments, d.Catalog, d.Scheduler, d.Audit)
	getUC := ucAppointment.NewGetAppointment(d.Appointments)
	listForCustomerUC := ucAppointment.NewListForCustomer(d.Appointments, d.Scheduler)
	cancelUC := ucAppointment.NewCancelAppointment(d.Appointments, d.Scheduler, d.Audit)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(d.Appointments, d.Catalog, d.Scheduler, d.Audit)
	changeStatusUC := ucAppointment.NewChangeStatus(d.Appointments, d.Scheduler, d.Audit)
	availabilityUC := ucAppointment.NewGetAvailability(d.Catalog, d.Scheduler)
	byDateUC := ucAppointment.NewListAppointmentsByDate(d.Appointments, d.Scheduler)
	byMonthUC := ucAppointment.NewListAppointmentsByMonth(d.Appointments, d.Scheduler)

	// ======================================================
	// USE CASES - RATINGS / ACCOUNTS / CATALOG
	// ======================================================
	submitRatingUC := ucRating.NewSubmitRating(d.Appointments, d.Ratings, d.Scheduler, d.Audit)
	barberRatingsUC := ucRating.NewListForBarber(d.Catalog, d.Ratings)

	registerUC := ucAccount.NewRegister(d.Accounts, d.Tokens, d.Audit)
	loginUC := ucAccount.NewLogin(d.Accounts, d.Tokens, d.Scheduler.Now)
	staffLoginUC := ucAccount.NewStaffLogin(d.Accounts, d.Tokens, d.Scheduler.Now)
	profileUC := ucAccount.NewGetProfile(d.Accounts)
	updateProfileUC := ucAccount.NewUpdateProfile(d.Accounts, d.Audit)
	changePasswordUC := ucAccount.NewChangePassword(d.Accounts, d.Audit)

	showServiceUC := ucCatalog.NewShowService(d.Catalog)
	showBarberUC := ucCatalog.NewShowBarber(d.Catalog, d.Ratings)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, staffLoginUC)
	meHandler := handlers.NewMeHandler(profileUC, updateProfileUC, changePasswordUC)
	publicHandler := handlers.NewPublicHandler(
		d.Catalog,
		showServiceUC,
		showBarberUC,
		availabilityUC,
		barberRatingsUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		getUC,
		listForCustomerUC,
		cancelUC,
		rescheduleUC,
		submitRatingUC,
		d.Scheduler,
	)

	adminHandler := handlers.NewAdminAppointmentHandler(
		byDateUC,
		byMonthUC,
		changeStatusUC,
		d.Scheduler,
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/staff/login", authHandler.StaffLogin)

		api.GET("/services", publicHandler.ListServices)
		api.GET("/services/:id", publicHandler.GetService)
		api.GET("/barbers", publicHandler.ListBarbers)
		api.GET("/barbers/:id", publicHandler.GetBarber)
		api.GET("/barbers/:id/ratings", publicHandler.BarberRatings)
		api.GET("/availability", publicHandler.Availability)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		me := api.Group("/me")
		me.Use(
			middleware.Authenticate(d.Tokens),
			middleware.RequireRole(account.RoleCustomer),
		)
		{
			me.GET("", meHandler.GetMe)
			me.PATCH("", meHandler.UpdateMe)
			me.PATCH("/password", meHandler.ChangePassword)

			me.GET("/appointments", appointmentHandler.List)
			me.POST("/appointments", appointmentHandler.Create)
			me.GET("/appointments/:id", appointmentHandler.Get)
			me.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			me.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			me.POST("/appointments/:id/rating", appointmentHandler.Rate)
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(
			middleware.Authenticate(d.Tokens),
			middleware.RequireRole(account.RoleStaff, account.RoleAdmin),
		)
		{
			admin.GET("/appointments", adminHandler.List)
			admin.PATCH("/appointments/:id/status", adminHandler.ChangeStatus)
		}
	}
}
