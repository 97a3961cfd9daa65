package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Globally unique human-facing reference, minted from the booking
	// counter at creation and never reused.
	ApplicationNumber string `gorm:"size:20;uniqueIndex;not null" json:"application_number"`

	UserID uint `gorm:"not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	ScheduleID uint     `gorm:"not null" json:"schedule_id"`
	Schedule   Schedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"schedule,omitempty"`

	EmployeeID *uint     `json:"employee_id"`
	Employee   *Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"employee,omitempty"`

	// Requester and service fields are denormalized at creation so the
	// record stays self-describing if the account or schedule changes.
	UserName        string  `gorm:"size:100;not null" json:"user_name"`
	PhoneNumber     string  `gorm:"size:20;not null" json:"phone_number"`
	ApplicationDate string  `gorm:"size:10;not null" json:"application_date"`
	ApplicationTime string  `gorm:"size:5;not null" json:"application_time"`
	ServiceName     string  `gorm:"size:100" json:"service_name"`
	ServicePrice    float64 `json:"service_price"`
	Notes           string  `gorm:"size:255" json:"notes"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
