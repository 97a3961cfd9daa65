package booking

import (
	"context"

	"github.com/salonova/booking-api/internal/audit"
	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/httperr"
	"github.com/salonova/booking-api/internal/models"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute moves an appointment through the status machine. Salon-scoped
// callers may only touch appointments whose schedule belongs to their
// own salon; superadmins are unrestricted.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	caller *domain.Principal,
	appointmentID uint,
	newStatus domain.Status,
	notes string,
) (*models.Appointment, error) {

	if !newStatus.IsValid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.FindAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	schedule, err := uc.repo.ResolveSchedule(ctx, ap.ScheduleID)
	if err != nil {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}

	if caller.Role.IsSalonScoped() {
		salonID, ok := caller.Salon()
		if !ok || salonID != schedule.SalonID {
			return nil, httperr.ErrBusiness("forbidden_scope")
		}
	}

	if err := domain.CanTransition(domain.Status(ap.Status), newStatus); err != nil {
		return nil, err
	}

	ap.Status = string(newStatus)
	if notes != "" {
		ap.Notes = notes
	}

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	callerID := caller.ID
	uc.audit.Dispatch(audit.Event{
		SalonID:   schedule.SalonID,
		ActorID:   &callerID,
		ActorRole: string(caller.Role),
		Action:    "appointment_status_changed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata:  map[string]any{"status": string(newStatus)},
	})

	return ap, nil
}
