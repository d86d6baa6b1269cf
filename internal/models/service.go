package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     string  `gorm:"type:text" json:"description"`
	Price           float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	DurationMinutes int     `gorm:"default:30;not null" json:"duration_minutes"`
	Category        string  `gorm:"size:50;default:'haircut'" json:"category"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
