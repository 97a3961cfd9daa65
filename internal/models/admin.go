package models

import "time"

// Admin holds the admin-class principals: platform superadmins and
// salon-scoped admins, disambiguated by the Role column. SalonID is
// null for superadmins.
type Admin struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:100" json:"name"`
	Role         string `gorm:"size:20;default:'admin'" json:"role"`

	SalonID *uint  `json:"salon_id"`
	Salon   *Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
