package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EmployeeIDList is the ordered list of employees eligible to serve a
// schedule, stored as a JSON array column so ordering survives round-trips.
type EmployeeIDList []uint

func (l EmployeeIDList) Value() (driver.Value, error) {
	if l == nil {
		l = EmployeeIDList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *EmployeeIDList) Scan(value any) error {
	if value == nil {
		*l = EmployeeIDList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported employee_list column type %T", value)
	}
}

// Schedule is a bookable service template offered by a salon.
type Schedule struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	SalonID uint  `gorm:"not null" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon,omitempty"`

	Title string  `gorm:"size:100;not null" json:"title"`
	Date  string  `gorm:"size:10" json:"date"`
	Price float64 `json:"price"`

	EmployeeList EmployeeIDList `gorm:"type:text" json:"employee_list"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
