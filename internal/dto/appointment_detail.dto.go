package dto

import (
	"time"

	"github.com/salonova/booking-api/internal/models"
)

// AppointmentDetailDTO is the enriched single-appointment projection,
// joining schedule, salon, user, and employee display fields.
type AppointmentDetailDTO struct {
	ID                uint    `json:"id"`
	ApplicationNumber string  `json:"application_number"`
	Status            string  `json:"status"`
	UserName          string  `json:"user_name"`
	PhoneNumber       string  `json:"phone_number"`
	ApplicationDate   string  `json:"application_date"`
	ApplicationTime   string  `json:"application_time"`
	ServiceName       string  `json:"service_name"`
	ServicePrice      float64 `json:"service_price"`
	Notes             string  `json:"notes"`

	UserID          uint   `json:"user_id"`
	UserAccountName string `json:"user_account_name"`

	ScheduleID    uint   `json:"schedule_id"`
	ScheduleTitle string `json:"schedule_title"`

	SalonID   uint   `json:"salon_id"`
	SalonName string `json:"salon_name"`

	EmployeeID   *uint  `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func AppointmentDetailFromModel(ap *models.Appointment) AppointmentDetailDTO {
	out := AppointmentDetailDTO{
		ID:                ap.ID,
		ApplicationNumber: ap.ApplicationNumber,
		Status:            ap.Status,
		UserName:          ap.UserName,
		PhoneNumber:       ap.PhoneNumber,
		ApplicationDate:   ap.ApplicationDate,
		ApplicationTime:   ap.ApplicationTime,
		ServiceName:       ap.ServiceName,
		ServicePrice:      ap.ServicePrice,
		Notes:             ap.Notes,

		UserID:          ap.UserID,
		UserAccountName: ap.User.Name,

		ScheduleID:    ap.ScheduleID,
		ScheduleTitle: ap.Schedule.Title,

		SalonID:   ap.Schedule.SalonID,
		SalonName: ap.Schedule.Salon.Name,

		EmployeeID: ap.EmployeeID,

		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}

	if ap.Employee != nil {
		out.EmployeeName = ap.Employee.Name
	}

	return out
}
