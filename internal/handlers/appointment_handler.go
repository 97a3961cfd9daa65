package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/httperr"
	"github.com/salonova/booking-api/internal/httpresp"
	"github.com/salonova/booking-api/internal/middleware"
	ucBooking "github.com/salonova/booking-api/internal/usecase/booking"
	"github.com/salonova/booking-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucBooking.CreateAppointment
	listUC         *ucBooking.ListAppointments
	getUC          *ucBooking.GetAppointment
	updateUC       *ucBooking.UpdateAppointment
	updateStatusUC *ucBooking.UpdateStatus
	cancelUC       *ucBooking.CancelAppointment
	deleteUC       *ucBooking.DeleteAppointment
}

func NewAppointmentHandler(
	createUC *ucBooking.CreateAppointment,
	listUC *ucBooking.ListAppointments,
	getUC *ucBooking.GetAppointment,
	updateUC *ucBooking.UpdateAppointment,
	updateStatusUC *ucBooking.UpdateStatus,
	cancelUC *ucBooking.CancelAppointment,
	deleteUC *ucBooking.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		listUC:         listUC,
		getUC:          getUC,
		updateUC:       updateUC,
		updateStatusUC: updateStatusUC,
		cancelUC:       cancelUC,
		deleteUC:       deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ScheduleID      uint     `json:"schedule_id" binding:"required"`
	UserName        string   `json:"user_name" binding:"required"`
	PhoneNumber     string   `json:"phone_number" binding:"required"`
	ApplicationDate string   `json:"application_date" binding:"required"`
	ApplicationTime string   `json:"application_time" binding:"required"`
	ServiceName     string   `json:"service_name"`
	ServicePrice    *float64 `json:"service_price"`
	Notes           string   `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ApplicationDate *string  `json:"application_date"`
	ApplicationTime *string  `json:"application_time"`
	ServiceName     *string  `json:"service_name"`
	ServicePrice    *float64 `json:"service_price"`
	Notes           *string  `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return 0, false
	}
	return uint(id), true
}

func filterFromQuery(c *gin.Context) domain.ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	var userID uint64
	if v := c.Query("user_id"); v != "" {
		userID, _ = strconv.ParseUint(v, 10, 32)
	}

	var employeeID uint64
	if v := c.Query("employee_id"); v != "" {
		employeeID, _ = strconv.ParseUint(v, 10, 32)
	}

	return domain.ListFilter{
		Status:     c.Query("status"),
		UserID:     uint(userID),
		EmployeeID: uint(employeeID),
		Date:       c.Query("date"),
		Page:       page,
		Limit:      limit,
	}
}

// writeBookingError maps domain error codes to HTTP responses. Ownership
// failures surface as 404, terminal-state and transition violations as
// 400, scope violations as 403. Anything unmapped is a masked 500.
func writeBookingError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {

	case "appointment_not_found":
		httperr.NotFound(c, code, "Appointment not found.")
	case "schedule_not_found":
		httperr.NotFound(c, code, "Schedule not found.")
	case "salon_not_found":
		httperr.NotFound(c, code, "Salon not found.")

	case "invalid_status":
		httperr.BadRequest(c, code, "Status must be one of pending, accepted, ignored, cancelled, done.")
	case "invalid_transition":
		httperr.BadRequest(c, code, "Status change not allowed from the current state.")
	case "appointment_locked":
		httperr.BadRequest(c, code, "Appointment can no longer be modified.")
	case "no_updatable_fields":
		httperr.BadRequest(c, code, "No updatable fields supplied.")

	case "forbidden_scope", "principal_without_salon":
		httperr.Forbidden(c, code, "Insufficient permissions for this salon.")

	default:
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	caller := middleware.MustPrincipal(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing or malformed required fields.")
		return
	}

	if !validators.IsValidDate(req.ApplicationDate) {
		httperr.BadRequest(c, "invalid_date", "application_date must be YYYY-MM-DD.")
		return
	}
	if !validators.IsValidTime(req.ApplicationTime) {
		httperr.BadRequest(c, "invalid_time", "application_time must be HH:MM.")
		return
	}
	if !validators.IsValidPhone(req.PhoneNumber) {
		httperr.BadRequest(c, "invalid_phone", "phone_number is not a valid phone number.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		UserID:       caller.ID,
		ScheduleID:   req.ScheduleID,
		UserName:     req.UserName,
		PhoneNumber:  req.PhoneNumber,
		Date:         req.ApplicationDate,
		Time:         req.ApplicationTime,
		ServiceName:  req.ServiceName,
		ServicePrice: req.ServicePrice,
		Notes:        req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, "Appointment created.", ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	caller := middleware.MustPrincipal(c)
	filter := filterFromQuery(c)

	aps, total, err := h.listUC.Execute(c.Request.Context(), caller, filter)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	filter.Normalize()
	httpresp.List(c, "Appointments retrieved.", aps, filter.Page, filter.Limit, total)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	caller := middleware.MustPrincipal(c)

	filter := filterFromQuery(c)
	filter.UserID = caller.ID

	aps, total, err := h.listUC.Execute(c.Request.Context(), caller, filter)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	filter.Normalize()
	httpresp.List(c, "Appointments retrieved.", aps, filter.Page, filter.Limit, total)
}

func (h *AppointmentHandler) ListBySalon(c *gin.Context) {
	caller := middleware.MustPrincipal(c)

	salonID, err := strconv.ParseUint(c.Param("salon_id"), 10, 32)
	if err != nil || salonID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid salon id.")
		return
	}

	filter := filterFromQuery(c)

	aps, total, err := h.listUC.ExecuteForSalon(c.Request.Context(), caller, uint(salonID), filter)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	filter.Normalize()
	httpresp.List(c, "Appointments retrieved.", aps, filter.Page, filter.Limit, total)
}

// ======================================================
// GET BY ID
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, "Appointment retrieved.", detail)
}

// ======================================================
// UPDATE (owner, whitelisted fields)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	caller := middleware.MustPrincipal(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed request body.")
		return
	}

	if req.ApplicationDate != nil && !validators.IsValidDate(*req.ApplicationDate) {
		httperr.BadRequest(c, "invalid_date", "application_date must be YYYY-MM-DD.")
		return
	}
	if req.ApplicationTime != nil && !validators.IsValidTime(*req.ApplicationTime) {
		httperr.BadRequest(c, "invalid_time", "application_time must be HH:MM.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), id, caller.ID, ucBooking.UpdateAppointmentInput{
		Date:         req.ApplicationDate,
		Time:         req.ApplicationTime,
		ServiceName:  req.ServiceName,
		ServicePrice: req.ServicePrice,
		Notes:        req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, "Appointment updated.", ap)
}

// ======================================================
// UPDATE STATUS (salon staff)
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	caller := middleware.MustPrincipal(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing status.")
		return
	}

	// Reject unknown statuses before touching the database.
	newStatus := domain.Status(req.Status)
	if !newStatus.IsValid() {
		httperr.BadRequest(c, "invalid_status", "Status must be one of pending, accepted, ignored, cancelled, done.")
		return
	}

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), caller, id, newStatus, req.Notes)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, "Appointment status updated.", ap)
}

// ======================================================
// CANCEL / DELETE (owner)
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	caller := middleware.MustPrincipal(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), id, caller.ID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, "Appointment cancelled.", ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	caller := middleware.MustPrincipal(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, caller.ID); err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, "Appointment deleted.", nil)
}
