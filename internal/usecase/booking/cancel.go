package booking

import (
	"context"

	"github.com/salonova/booking-api/internal/audit"
	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/httperr"
	"github.com/salonova/booking-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute is the owner-only cancellation path. Cancelled is terminal.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	callerUserID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.UserID != callerUserID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusCancelled)

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if schedule, err := uc.repo.ResolveSchedule(ctx, ap.ScheduleID); err == nil {
		uc.audit.Dispatch(audit.Event{
			SalonID:   schedule.SalonID,
			ActorID:   &callerUserID,
			ActorRole: string(domain.RoleUser),
			Action:    "appointment_cancelled",
			Entity:    "appointment",
			EntityID:  &ap.ID,
		})
	}

	return ap, nil
}
