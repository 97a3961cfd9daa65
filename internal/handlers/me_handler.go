package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/salonova/booking-api/internal/httpresp"
	"github.com/salonova/booking-api/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe echoes the principal the access guard resolved for this request.
func (h *MeHandler) GetMe(c *gin.Context) {
	p := middleware.MustPrincipal(c)

	httpresp.OK(c, "Principal resolved.", gin.H{
		"id":       p.ID,
		"name":     p.Name,
		"role":     p.Role,
		"salon_id": p.SalonID,
	})
}
