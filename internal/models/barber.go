package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string `gorm:"size:100;not null" json:"name"`
	Specialty       string `gorm:"size:100" json:"specialty"`
	Bio             string `gorm:"type:text" json:"bio"`
	Email           string `gorm:"size:100" json:"email"`
	Phone           string `gorm:"size:20" json:"phone"`
	ExperienceYears int    `json:"experience_years"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
