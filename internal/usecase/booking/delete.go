package booking

import (
	"context"

	"github.com/salonova/booking-api/internal/audit"
	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute is the only hard-delete path. Owner-only, and refused once
// work is accepted or done.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	callerUserID uint,
) error {

	ap, err := uc.repo.FindAppointment(ctx, appointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if ap.UserID != callerUserID {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanDelete(domain.Status(ap.Status)); err != nil {
		return err
	}

	salonID := uint(0)
	if schedule, err := uc.repo.ResolveSchedule(ctx, ap.ScheduleID); err == nil {
		salonID = schedule.SalonID
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:   salonID,
		ActorID:   &callerUserID,
		ActorRole: string(domain.RoleUser),
		Action:    "appointment_deleted",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return nil
}
