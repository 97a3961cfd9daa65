package booking

import (
	"context"

	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/dto"
	"github.com/salonova/booking-api/internal/httperr"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns the enriched single-appointment view. Any
// authenticated principal may read any appointment by id; there is no
// ownership check on this path.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uint,
) (*dto.AppointmentDetailDTO, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	detail := dto.AppointmentDetailFromModel(ap)
	return &detail, nil
}
