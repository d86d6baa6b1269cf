package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint     `gorm:"index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	BarberID uint   `gorm:"index:idx_appointments_barber_start" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	AppointmentStart time.Time `gorm:"not null;index:idx_appointments_barber_start" json:"appointment_start"`
	AppointmentEnd   time.Time `gorm:"not null" json:"appointment_end"`

	Status     string  `gorm:"size:20;default:'pending';index" json:"status"`
	TotalPrice float64 `gorm:"type:numeric(10,2)" json:"total_price"`

	Notes              string `gorm:"type:text" json:"notes"`
	CancellationReason string `gorm:"type:text" json:"cancellation_reason"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	Rating *Rating `json:"rating,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
