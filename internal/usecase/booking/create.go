package booking

import (
	"context"

	"github.com/salonova/booking-api/internal/audit"
	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/httperr"
	"github.com/salonova/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID     uint
	ScheduleID uint

	UserName    string
	PhoneNumber string

	Date string
	Time string

	ServiceName  string
	ServicePrice *float64

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Schedule (missing is a fatal creation error)
	// --------------------------------------------------
	schedule, err := uc.repo.ResolveSchedule(ctx, in.ScheduleID)
	if err != nil {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}

	// --------------------------------------------------
	// 2. Owning salon must not be a ghost reference
	// --------------------------------------------------
	exists, err := uc.repo.SalonExists(ctx, schedule.SalonID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	// --------------------------------------------------
	// 3. Employee assignment policy
	// --------------------------------------------------
	employeeID := domain.PickEmployee(schedule.EmployeeList)

	// --------------------------------------------------
	// 4. Denormalize service fields from the schedule
	// --------------------------------------------------
	serviceName := in.ServiceName
	if serviceName == "" {
		serviceName = schedule.Title
	}

	servicePrice := schedule.Price
	if in.ServicePrice != nil {
		servicePrice = *in.ServicePrice
	}

	// --------------------------------------------------
	// 5. Persist (number mint + insert, one transaction)
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:     in.UserID,
		ScheduleID: schedule.ID,
		EmployeeID: employeeID,

		UserName:        in.UserName,
		PhoneNumber:     in.PhoneNumber,
		ApplicationDate: in.Date,
		ApplicationTime: in.Time,
		ServiceName:     serviceName,
		ServicePrice:    servicePrice,
		Notes:           in.Notes,

		Status: string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateWithNumber(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:   schedule.SalonID,
		ActorID:   &in.UserID,
		ActorRole: string(domain.RoleUser),
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
