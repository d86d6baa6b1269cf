package models

import "time"

type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointment_id"`
	BarberID      uint `gorm:"index;not null" json:"barber_id"`
	CustomerID    uint `gorm:"not null" json:"customer_id"`

	Customer *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	Score      int    `gorm:"column:rating;not null" json:"rating"`
	Review     string `gorm:"type:text" json:"review"`
	IsApproved bool   `gorm:"default:true" json:"is_approved"`
	AdminNotes string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
