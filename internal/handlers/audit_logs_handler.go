package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/httperr"
	"github.com/salonova/booking-api/internal/httpresp"
	"github.com/salonova/booking-api/internal/middleware"
	"github.com/salonova/booking-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the audit trail. Salon-scoped staff only see their own
// salon; superadmins may narrow with ?salon_id=.
func (h *AuditLogsHandler) List(c *gin.Context) {
	caller := middleware.MustPrincipal(c)

	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.Model(&models.AuditLog{})

	// --------------------------------------------------
	// Scope
	// --------------------------------------------------

	switch {
	case caller.Role.IsSalonScoped():
		salonID, ok := caller.Salon()
		if !ok {
			httperr.Forbidden(c, "principal_without_salon", "Insufficient permissions.")
			return
		}
		q = q.Where("salon_id = ?", salonID)

	case caller.Role == domain.RoleSuperadmin:
		if v := c.Query("salon_id"); v != "" {
			if salonID, err := strconv.ParseUint(v, 10, 32); err == nil {
				q = q.Where("salon_id = ?", uint(salonID))
			}
		}

	default:
		httperr.Forbidden(c, "forbidden", "Insufficient permissions.")
		return
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Failed to count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	httpresp.List(c, "Audit logs retrieved.", logs, page, limit, total)
}
