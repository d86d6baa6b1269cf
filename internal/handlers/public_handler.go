package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
	ucRating "github.com/BruksfildServices01/barber-booking/internal/usecase/rating"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	catalog      *catalog.Catalog
	showService  *ucCatalog.ShowService
	showBarber   *ucCatalog.ShowBarber
	availability *appointment.GetAvailability
	ratings      *ucRating.ListForBarber
}

func NewPublicHandler(
	catalog *catalog.Catalog,
	showService *ucCatalog.ShowService,
	showBarber *ucCatalog.ShowBarber,
	availability *appointment.GetAvailability,
	ratings *ucRating.ListForBarber,
) *PublicHandler {
	return &PublicHandler{
		catalog:      catalog,
		showService:  showService,
		showBarber:   showBarber,
		availability: availability,
		ratings:      ratings,
	}
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	services, err := h.catalog.ListActiveServices(c.Request.Context(), category)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) GetService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc, err := h.showService.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, svc)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.catalog.ListActiveBarbers(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, barbers)
}

func (h *PublicHandler) GetBarber(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	profile, err := h.showBarber.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, profile)
}

func (h *PublicHandler) BarberRatings(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.ratings.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	barberIDStr := c.Query("barber_id")
	date := c.Query("date")

	if barberIDStr == "" || date == "" {
		httperr.BadRequest(c, "missing_params", "Barber ID and date are required.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 32)
	if err != nil || barberID == 0 {
		httperr.BadRequest(c, "invalid_id", httperr.Message("invalid_id"))
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), appointment.GetAvailabilityInput{
		BarberID: uint(barberID),
		Date:     date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id": barberID,
		"date":      date,
		"slots":     slots,
	})
}
