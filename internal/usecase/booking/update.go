package booking

import (
	"context"
	"time"

	"github.com/salonova/booking-api/internal/audit"
	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/httperr"
	"github.com/salonova/booking-api/internal/models"
)

// UpdateAppointmentInput carries the owner-editable subset. Nil means
// "leave unchanged"; anything outside this whitelist cannot be touched
// through this path.
type UpdateAppointmentInput struct {
	Date         *string
	Time         *string
	ServiceName  *string
	ServicePrice *float64
	Notes        *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	callerUserID uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// Ownership failures read as not-found so existence never leaks.
	if ap.UserID != callerUserID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanUpdate(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Date != nil {
		fields["application_date"] = *in.Date
	}
	if in.Time != nil {
		fields["application_time"] = *in.Time
	}
	if in.ServiceName != nil {
		fields["service_name"] = *in.ServiceName
	}
	if in.ServicePrice != nil {
		fields["service_price"] = *in.ServicePrice
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}

	if len(fields) == 0 {
		return nil, httperr.ErrBusiness("no_updatable_fields")
	}

	fields["updated_at"] = time.Now()

	if err := uc.repo.UpdateAppointmentFields(ctx, ap.ID, fields); err != nil {
		return nil, err
	}

	updated, err := uc.repo.FindAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	if schedule, err := uc.repo.ResolveSchedule(ctx, ap.ScheduleID); err == nil {
		uc.audit.Dispatch(audit.Event{
			SalonID:   schedule.SalonID,
			ActorID:   &callerUserID,
			ActorRole: string(domain.RoleUser),
			Action:    "appointment_updated",
			Entity:    "appointment",
			EntityID:  &ap.ID,
		})
	}

	return updated, nil
}
