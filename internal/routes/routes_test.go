package routes_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

var brt = time.FixedZone("BRT", -3*60*60)

// Monday 2025-03-10 12:00 in the shop zone.
var now = time.Date(2025, 3, 10, 12, 0, 0, 0, brt)

func init() {
	gin.SetMode(gin.TestMode)
	validators.LookupDomain = func(string) bool { return true }
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

type server struct {
	t      *testing.T
	store  *memory.Store
	router *gin.Engine
	tokens *auth.Tokens
}

func newServer(t *testing.T) *server {
	t.Helper()

	store := memory.NewStore()
	store.AddService(models.Service{ID: 1, Name: "Classic Cut", Price: 35, DurationMinutes: 45, Category: "haircut", IsActive: true})
	store.AddService(models.Service{ID: 2, Name: "Beard Trim", Price: 20, DurationMinutes: 30, Category: "beard", IsActive: true})
	store.AddService(models.Service{ID: 3, Name: "Retired", Price: 10, DurationMinutes: 30, Category: "haircut"})
	store.AddBarber(models.Barber{ID: 10, Name: "Rafa", IsActive: true})

	hash, err := bcrypt.GenerateFromPassword([]byte("desk123"), bcrypt.MinCost)
	require.NoError(t, err)
	store.AddAdmin(models.AdminUser{ID: 20, Name: "Desk", Email: "desk@shop.com", PasswordHash: string(hash), Role: "staff", IsActive: true})

	sched := scheduler.New(store, scheduler.DefaultPolicy(), brt, scheduler.WithClock(func() time.Time { return now }))
	tokens := auth.NewTokens("test-secret", time.Hour)

	r := gin.New()
	r.Use(middleware.RequestID())
	routes.RegisterRoutes(r, routes.Deps{
		Appointments: store,
		Accounts:     store,
		Ratings:      store,
		Catalog:      catalog.New(store, nil, 0),
		Scheduler:    sched,
		Tokens:       tokens,
	})

	return &server{t: t, store: store, router: r, tokens: tokens}
}

func (s *server) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	return s.doRaw(method, path, token, &buf)
}

// doRaw sends body as is; readers other than bytes/strings types arrive with
// an unknown length, like a chunked request.
func (s *server) doRaw(method, path, token string, body io.Reader) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (s *server) register(email string) string {
	s.t.Helper()
	w, body := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Ana",
		"email":    email,
		"password": "secret1",
		"phone":    "+5511999998888",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return body["token"].(string)
}

func (s *server) staffToken() string {
	s.t.Helper()
	w, body := s.do(http.MethodPost, "/api/auth/staff/login", "", map[string]any{
		"email":    "desk@shop.com",
		"password": "desk123",
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return body["token"].(string)
}

func (s *server) book(token, date, clock string) (*httptest.ResponseRecorder, map[string]any) {
	return s.do(http.MethodPost, "/api/me/appointments", token, map[string]any{
		"service_id": 1,
		"barber_id":  10,
		"date":       date,
		"time":       clock,
	})
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	w, body := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestCatalogEndpoints(t *testing.T) {
	s := newServer(t)

	w, body := s.do(http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, body["total"])

	w, body = s.do(http.MethodGet, "/api/services?category=beard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])

	w, body = s.do(http.MethodGet, "/api/barbers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])
}

func TestAvailabilityEndpoint(t *testing.T) {
	s := newServer(t)
	token := s.register("ana@example.com")

	w, _ := s.book(token, "2025-03-11", "10:00")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body := s.do(http.MethodGet, "/api/availability?barber_id=10&date=2025-03-11", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	slots := body["slots"].([]any)
	assert.Len(t, slots, 19)
	first := slots[0].(map[string]any)
	assert.Equal(t, "9:00 AM", first["display"])
	assert.Equal(t, "2025-03-11T09:00:00-03:00", first["time"])

	w, body = s.do(http.MethodGet, "/api/availability?barber_id=10", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_params", body["error_code"])

	w, body = s.do(http.MethodGet, "/api/availability?barber_id=99&date=2025-03-11", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barber_not_found", body["error_code"])

	w, body = s.do(http.MethodGet, "/api/availability?barber_id=10&date=2025-03-09", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["slots"])
}

func TestCustomerBookingFlow(t *testing.T) {
	s := newServer(t)
	token := s.register("ana@example.com")

	w, body := s.book(token, "2025-03-11", "10:00")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "pending", body["status"])
	assert.EqualValues(t, 35, body["total_price"])
	assert.Equal(t, true, body["can_cancel"])
	id := int(body["id"].(float64))

	w, body = s.book(token, "2025-03-11", "10:15")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", body["error_code"])

	w, body = s.book(token, "2025-03-11", "20:00")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "outside_business_hours", body["error_code"])

	w, body = s.do(http.MethodGet, "/api/me/appointments?upcoming=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])

	path := "/api/me/appointments/" + itoa(id)

	w, body = s.do(http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rafa", body["barber"].(map[string]any)["name"])

	w, body = s.do(http.MethodPatch, path+"/reschedule", token, map[string]any{"date": "2025-03-11", "time": "10:20"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2025-03-11T10:20:00-03:00", body["start_time"])
	assert.Equal(t, "2025-03-11T11:05:00-03:00", body["end_time"])

	w, body = s.do(http.MethodPatch, path+"/cancel", token, map[string]any{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", body["status"])
	assert.Equal(t, "Cancelled by customer", body["cancellation_reason"])

	w, _ = s.book(token, "2025-03-11", "10:15")
	assert.Equal(t, http.StatusCreated, w.Code, "cancelled appointment frees the slot")
}

func TestOwnershipAndAuth(t *testing.T) {
	s := newServer(t)
	ana := s.register("ana@example.com")
	bruno := s.register("bruno@example.com")

	w, body := s.book(ana, "2025-03-11", "10:00")
	require.Equal(t, http.StatusCreated, w.Code)
	path := "/api/me/appointments/" + itoa(int(body["id"].(float64)))

	w, body = s.do(http.MethodGet, path, bruno, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "appointment_not_found", body["error_code"])

	w, _ = s.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/me/appointments/abc", ana, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(http.MethodGet, "/api/admin/appointments", ana, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", body["error_code"])

	w, _ = s.do(http.MethodGet, "/api/me/appointments", s.staffToken(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_already_registered", body["error_code"])

	w, body = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", body["error_code"])

	w, body = s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Carla", "email": "carla@example.com", "password": "secret1", "phone": "not a phone",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", body["error_code"])

	w, body = s.do(http.MethodGet, "/api/me", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana@example.com", body["user"].(map[string]any)["email"])
}

func TestAdminStatusAndRatingFlow(t *testing.T) {
	s := newServer(t)
	ana := s.register("ana@example.com")
	staff := s.staffToken()

	w, body := s.book(ana, "2025-03-11", "16:00")
	require.Equal(t, http.StatusCreated, w.Code)
	id := itoa(int(body["id"].(float64)))

	w, body = s.do(http.MethodGet, "/api/admin/appointments?date=2025-03-11", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 1, body["total"])
	assert.Equal(t, "Ana", body["data"].([]any)[0].(map[string]any)["customer_name"])

	w, body = s.do(http.MethodGet, "/api/admin/appointments?month=2025-03", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])

	w, body = s.do(http.MethodPost, "/api/me/appointments/"+id+"/rating", ana, map[string]any{"rating": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "not_rateable", body["error_code"])

	w, body = s.do(http.MethodPatch, "/api/admin/appointments/"+id+"/status", staff, map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_state", body["error_code"])

	for _, st := range []string{"confirmed", "completed"} {
		w, body = s.do(http.MethodPatch, "/api/admin/appointments/"+id+"/status", staff, map[string]any{"status": st})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, st, body["status"])
	}

	w, body = s.do(http.MethodPost, "/api/me/appointments/"+id+"/rating", ana, map[string]any{"rating": 5, "review": "Sharp"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 5, body["rating"])

	w, body = s.do(http.MethodPost, "/api/me/appointments/"+id+"/rating", ana, map[string]any{"rating": 4})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_rated", body["error_code"])

	w, body = s.do(http.MethodGet, "/api/barbers/10/ratings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, body["average"])
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "Ana", body["ratings"].([]any)[0].(map[string]any)["customer_name"])

	w, body = s.do(http.MethodGet, "/api/barbers/10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rafa", body["name"])
	assert.EqualValues(t, 5, body["average_rating"])
	assert.EqualValues(t, 1, body["total_ratings"])
	assert.NotContains(t, body, "email")
}

func TestStoreUnavailable(t *testing.T) {
	s := newServer(t)
	s.store.Fail(errors.New("connection refused"))

	w, body := s.do(http.MethodGet, "/api/availability?barber_id=10&date=2025-03-11", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "store_unavailable", body["error_code"])
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func TestCatalogDetailEndpoints(t *testing.T) {
	s := newServer(t)

	w, body := s.do(http.MethodGet, "/api/services/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Classic Cut", body["name"])
	assert.EqualValues(t, 45, body["duration_minutes"])

	w, body = s.do(http.MethodGet, "/api/services/3", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "service_not_found", body["error_code"])

	w, _ = s.do(http.MethodGet, "/api/services/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(http.MethodGet, "/api/barbers/10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["total_ratings"])
	assert.Empty(t, body["ratings"])

	w, body = s.do(http.MethodGet, "/api/barbers/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barber_not_found", body["error_code"])
}

func TestProfileEndpoints(t *testing.T) {
	s := newServer(t)
	token := s.register("ana@example.com")

	w, body := s.do(http.MethodPatch, "/api/me", token, map[string]any{"name": "Ana Souza", "phone": "+5521988887777"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := body["user"].(map[string]any)
	assert.Equal(t, "Ana Souza", user["name"])
	assert.Equal(t, "+5521988887777", user["phone"])

	w, body = s.do(http.MethodPatch, "/api/me", token, map[string]any{"phone": "not a phone"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", body["error_code"])

	w, body = s.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana Souza", body["user"].(map[string]any)["name"])

	w, body = s.do(http.MethodPatch, "/api/me/password", token, map[string]any{
		"current_password": "wrong", "new_password": "newpass1", "confirm_password": "newpass1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "current_password_incorrect", body["error_code"])

	w, body = s.do(http.MethodPatch, "/api/me/password", token, map[string]any{
		"current_password": "secret1", "new_password": "newpass1", "confirm_password": "other11",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password_mismatch", body["error_code"])

	w, _ = s.do(http.MethodPatch, "/api/me/password", token, map[string]any{
		"current_password": "secret1", "new_password": "newpass1", "confirm_password": "newpass1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ana@example.com", "password": "newpass1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPatch, "/api/me", s.staffToken(), map[string]any{"name": "Desk"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancelBodyOfUnknownLength(t *testing.T) {
	s := newServer(t)
	token := s.register("ana@example.com")

	w, body := s.book(token, "2025-03-11", "10:00")
	require.Equal(t, http.StatusCreated, w.Code)
	first := "/api/me/appointments/" + itoa(int(body["id"].(float64))) + "/cancel"

	w, body = s.book(token, "2025-03-11", "15:00")
	require.Equal(t, http.StatusCreated, w.Code)
	second := "/api/me/appointments/" + itoa(int(body["id"].(float64))) + "/cancel"

	w, body = s.doRaw(http.MethodPatch, first, token, io.MultiReader(strings.NewReader(`{"reason":"moving away"}`)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "moving away", body["cancellation_reason"])

	w, body = s.doRaw(http.MethodPatch, second, token, io.MultiReader(strings.NewReader("")))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Cancelled by customer", body["cancellation_reason"])

	w, body = s.doRaw(http.MethodPatch, second, token, strings.NewReader(`{"reason":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", body["error_code"])
}
