package booking

import (
	"context"

	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/httperr"
	"github.com/salonova/booking-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute applies role scoping on top of the requested filter: plain
// users only ever see their own rows, and salon-scoped staff are pinned
// to their own salon regardless of what the client asked for.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller *domain.Principal,
	filter domain.ListFilter,
) ([]models.Appointment, int64, error) {

	switch caller.Role {

	case domain.RoleUser:
		filter.UserID = caller.ID
		filter.SalonID = 0
		filter.EmployeeID = 0

	case domain.RoleAdmin, domain.RoleEmployee:
		salonID, ok := caller.Salon()
		if !ok {
			return nil, 0, httperr.ErrBusiness("principal_without_salon")
		}
		filter.SalonID = salonID

	case domain.RoleSuperadmin:
		// unrestricted
	}

	filter.Normalize()

	return uc.repo.ListAppointments(ctx, filter)
}

// ExecuteForSalon serves the salon-scoped listing routes. The salon must
// exist; salon-scoped callers may only address their own salon.
func (uc *ListAppointments) ExecuteForSalon(
	ctx context.Context,
	caller *domain.Principal,
	salonID uint,
	filter domain.ListFilter,
) ([]models.Appointment, int64, error) {

	exists, err := uc.repo.SalonExists(ctx, salonID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, httperr.ErrBusiness("salon_not_found")
	}

	if caller.Role.IsSalonScoped() {
		own, ok := caller.Salon()
		if !ok || own != salonID {
			return nil, 0, httperr.ErrBusiness("forbidden_scope")
		}
	}

	filter.SalonID = salonID
	if caller.Role == domain.RoleUser {
		filter.UserID = caller.ID
	}

	filter.Normalize()

	return uc.repo.ListAppointments(ctx, filter)
}
