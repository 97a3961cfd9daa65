package booking

import (
	"context"

	"github.com/salonova/booking-api/internal/models"
)

// ListFilter narrows an appointment listing. Zero values mean "not set".
// SalonID is always applied server-side for salon-scoped callers and is
// never taken from client-supplied filters.
type ListFilter struct {
	Status     string
	UserID     uint
	SalonID    uint
	EmployeeID uint
	Date       string

	Page  int
	Limit int
}

func (f *ListFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 10
	}
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Repository interface {
	// -------- Directory --------
	ResolveSchedule(
		ctx context.Context,
		scheduleID uint,
	) (*models.Schedule, error)

	SalonExists(
		ctx context.Context,
		salonID uint,
	) (bool, error)

	// -------- Appointment (create) --------
	// CreateWithNumber mints the application number and inserts the row
	// inside a single transaction so a failed insert never leaves an
	// orphaned number behind.
	CreateWithNumber(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	FindAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	FindAppointmentByNumber(
		ctx context.Context,
		number string,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, int64, error)

	// -------- Appointment (write) --------
	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointmentFields(
		ctx context.Context,
		id uint,
		fields map[string]any,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
