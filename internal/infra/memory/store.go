// Package memory holds map-backed implementations of the repository ports,
// used by use case and handler tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/rating"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextID uint
	err    error

	appointments map[uint]models.Appointment
	services     map[uint]models.Service
	barbers      map[uint]models.Barber
	customers    map[uint]models.Customer
	admins       map[uint]models.AdminUser
	ratings      map[uint]models.Rating

	Queries []appointment.Query
}

func NewStore() *Store {
	return &Store{
		appointments: map[uint]models.Appointment{},
		services:     map[uint]models.Service{},
		barbers:      map[uint]models.Barber{},
		customers:    map[uint]models.Customer{},
		admins:       map[uint]models.AdminUser{},
		ratings:      map[uint]models.Rating{},
	}
}

// Fail makes every subsequent call return a store-unavailable error wrapping err.
// Fail(nil) restores normal behaviour.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) failure(op string) error {
	if s.err != nil {
		return httperr.StoreUnavailable(op, s.err)
	}
	return nil
}

func (s *Store) id(current uint) uint {
	if current != 0 {
		if current > s.nextID {
			s.nextID = current
		}
		return current
	}
	s.nextID++
	return s.nextID
}

// -------- Seeding --------

func (s *Store) AddService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc.ID = s.id(svc.ID)
	s.services[svc.ID] = svc
	return svc
}

func (s *Store) AddBarber(b models.Barber) models.Barber {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id(b.ID)
	s.barbers[b.ID] = b
	return b
}

func (s *Store) AddCustomer(c models.Customer) models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id(c.ID)
	s.customers[c.ID] = c
	return c
}

func (s *Store) AddAdmin(u models.AdminUser) models.AdminUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.id(u.ID)
	s.admins[u.ID] = u
	return u
}

func (s *Store) AddAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap.ID = s.id(ap.ID)
	if ap.Status == "" {
		ap.Status = string(appointment.StatusPending)
	}
	s.appointments[ap.ID] = ap
	return ap
}

func (s *Store) Appointment(id uint) (models.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.appointments[id]
	return ap, ok
}

func (s *Store) Ratings() []models.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Rating, 0, len(s.ratings))
	for _, r := range s.ratings {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b models.Rating) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// -------- Appointments --------

func (s *Store) FindAppointments(_ context.Context, q appointment.Query) ([]appointment.Booked, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Queries = append(s.Queries, q)
	if err := s.failure("find appointments"); err != nil {
		return nil, err
	}

	var out []appointment.Booked
	for _, ap := range s.appointments {
		if ap.BarberID != q.BarberID || ap.ID == q.ExcludeID {
			continue
		}
		if ap.AppointmentStart.Before(q.From) || ap.AppointmentStart.After(q.To) {
			continue
		}
		if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, appointment.Status(ap.Status)) {
			continue
		}
		out = append(out, appointment.Booked{ID: ap.ID, Start: ap.AppointmentStart, End: ap.AppointmentEnd})
	}

	slices.SortFunc(out, func(a, b appointment.Booked) int { return a.Start.Compare(b.Start) })
	return out, nil
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("create appointment"); err != nil {
		return err
	}

	ap.ID = s.id(0)
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now
	s.appointments[ap.ID] = *ap
	return nil
}

// hydrate fills associations the way the gorm repository preloads them.
func (s *Store) hydrate(ap models.Appointment) models.Appointment {
	ap.Service = s.services[ap.ServiceID]
	ap.Barber = s.barbers[ap.BarberID]
	ap.Customer = s.customers[ap.CustomerID]
	ap.Rating = nil
	for _, r := range s.ratings {
		if r.AppointmentID == ap.ID {
			ap.Rating = &r
		}
	}
	return ap
}

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("get appointment"); err != nil {
		return nil, err
	}

	ap, ok := s.appointments[id]
	if !ok {
		return nil, httperr.ErrEntityNotFound("appointment")
	}
	ap = s.hydrate(ap)
	return &ap, nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("update appointment"); err != nil {
		return err
	}
	if _, ok := s.appointments[ap.ID]; !ok {
		return httperr.ErrEntityNotFound("appointment")
	}

	ap.UpdatedAt = time.Now()
	stored := *ap
	stored.Service, stored.Barber, stored.Customer, stored.Rating = models.Service{}, models.Barber{}, models.Customer{}, nil
	s.appointments[ap.ID] = stored
	return nil
}

func (s *Store) ListForCustomer(_ context.Context, q appointment.ListQuery) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("list customer appointments"); err != nil {
		return nil, err
	}

	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if ap.CustomerID != q.CustomerID {
			continue
		}
		if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, appointment.Status(ap.Status)) {
			continue
		}
		if q.UpcomingFrom != nil && ap.AppointmentStart.Before(*q.UpcomingFrom) {
			continue
		}
		out = append(out, s.hydrate(ap))
	}

	slices.SortFunc(out, func(a, b models.Appointment) int {
		if q.UpcomingFrom != nil {
			return a.AppointmentStart.Compare(b.AppointmentStart)
		}
		return b.AppointmentStart.Compare(a.AppointmentStart)
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Store) ListForPeriod(_ context.Context, q appointment.DayQuery) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("list appointments"); err != nil {
		return nil, err
	}

	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if ap.AppointmentStart.Before(q.From) || ap.AppointmentStart.After(q.To) {
			continue
		}
		if q.Status != "" && ap.Status != string(q.Status) {
			continue
		}
		out = append(out, s.hydrate(ap))
	}

	slices.SortFunc(out, func(a, b models.Appointment) int {
		return a.AppointmentStart.Compare(b.AppointmentStart)
	})
	return out, nil
}

// WithinTransaction serializes callers; there is no rollback.
func (s *Store) WithinTransaction(_ context.Context, fn func(tx appointment.Repository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// -------- Catalog --------

func (s *Store) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("get service"); err != nil {
		return nil, err
	}
	svc, ok := s.services[id]
	if !ok {
		return nil, httperr.ErrEntityNotFound("service")
	}
	return &svc, nil
}

func (s *Store) ListActiveServices(_ context.Context, category string) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("list services"); err != nil {
		return nil, err
	}

	out := []models.Service{}
	for _, svc := range s.services {
		if !svc.IsActive || (category != "" && svc.Category != category) {
			continue
		}
		out = append(out, svc)
	}
	slices.SortFunc(out, func(a, b models.Service) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Name, b.Name))
	})
	return out, nil
}

func (s *Store) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("get barber"); err != nil {
		return nil, err
	}
	b, ok := s.barbers[id]
	if !ok {
		return nil, httperr.ErrEntityNotFound("barber")
	}
	return &b, nil
}

func (s *Store) ListActiveBarbers(_ context.Context) ([]models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("list barbers"); err != nil {
		return nil, err
	}

	out := []models.Barber{}
	for _, b := range s.barbers {
		if b.IsActive {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b models.Barber) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

// -------- Accounts --------

func (s *Store) CreateCustomer(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("create customer"); err != nil {
		return err
	}
	for _, existing := range s.customers {
		if existing.Email == c.Email {
			return httperr.ErrBusiness("email_already_registered")
		}
	}

	c.ID = s.id(0)
	s.customers[c.ID] = *c
	return nil
}

func (s *Store) GetCustomer(_ context.Context, id uint) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("get customer"); err != nil {
		return nil, err
	}
	c, ok := s.customers[id]
	if !ok {
		return nil, httperr.ErrEntityNotFound("customer")
	}
	return &c, nil
}

func (s *Store) FindCustomerByEmail(_ context.Context, email string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("find customer"); err != nil {
		return nil, err
	}
	for _, c := range s.customers {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, httperr.ErrEntityNotFound("customer")
}

func (s *Store) RecordCustomerLogin(_ context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("record customer login"); err != nil {
		return err
	}
	c := s.customers[id]
	c.LastLoginAt = &at
	s.customers[id] = c
	return nil
}

func (s *Store) UpdateCustomerProfile(_ context.Context, id uint, name, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("update customer profile"); err != nil {
		return err
	}
	c, ok := s.customers[id]
	if !ok {
		return httperr.ErrEntityNotFound("customer")
	}
	c.Name, c.Phone = name, phone
	c.UpdatedAt = time.Now()
	s.customers[id] = c
	return nil
}

func (s *Store) UpdateCustomerPassword(_ context.Context, id uint, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("update customer password"); err != nil {
		return err
	}
	c, ok := s.customers[id]
	if !ok {
		return httperr.ErrEntityNotFound("customer")
	}
	c.PasswordHash = passwordHash
	c.UpdatedAt = time.Now()
	s.customers[id] = c
	return nil
}

func (s *Store) FindAdminByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("find admin user"); err != nil {
		return nil, err
	}
	for _, u := range s.admins {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, httperr.ErrEntityNotFound("admin_user")
}

func (s *Store) RecordAdminLogin(_ context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("record admin login"); err != nil {
		return err
	}
	u := s.admins[id]
	u.LastLoginAt = &at
	s.admins[id] = u
	return nil
}

// -------- Ratings --------

func (s *Store) HasRating(_ context.Context, appointmentID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("check rating"); err != nil {
		return false, err
	}
	for _, r := range s.ratings {
		if r.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateRating(_ context.Context, r *models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("create rating"); err != nil {
		return err
	}
	for _, existing := range s.ratings {
		if existing.AppointmentID == r.AppointmentID {
			return httperr.ErrBusiness("already_rated")
		}
	}

	r.ID = s.id(0)
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.ratings[r.ID] = *r
	return nil
}

func (s *Store) AddRating(r models.Rating) models.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id(r.ID)
	s.ratings[r.ID] = r
	return r
}

func (s *Store) ListApprovedForBarber(_ context.Context, barberID uint, limit int) ([]models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure("list ratings"); err != nil {
		return nil, err
	}

	out := []models.Rating{}
	for _, r := range s.ratings {
		if r.BarberID != barberID || !r.IsApproved {
			continue
		}
		if c, ok := s.customers[r.CustomerID]; ok {
			r.Customer = &models.Customer{ID: c.ID, Name: c.Name}
		}
		out = append(out, r)
	}

	slices.SortFunc(out, func(a, b models.Rating) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var (
	_ appointment.Repository = (*Store)(nil)
	_ catalog.Repository     = (*Store)(nil)
	_ account.Repository     = (*Store)(nil)
	_ rating.Repository      = (*Store)(nil)
)
