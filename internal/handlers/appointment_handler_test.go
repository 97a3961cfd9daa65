package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/models"
)

// --------- Create ---------

func TestCreateAppointment(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	e1 := env.seedEmployee(t, salon.ID, "lena")
	e2 := env.seedEmployee(t, salon.ID, "marco")
	schedule := env.seedSchedule(t, salon.ID, e1.ID, e2.ID)

	user := env.seedUser(t, "+15550002222")
	token := env.userToken(t, user)

	w := env.do(t, http.MethodPost, "/api/appointments", token, gin.H{
		"schedule_id":      schedule.ID,
		"user_name":        "Jordan",
		"phone_number":     "+15550002222",
		"application_date": "2026-09-20",
		"application_time": "14:00",
		"notes":            "first visit",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)

	assert.Equal(t, "pending", data["status"])
	assert.Regexp(t, `^APP[0-9]{6}$`, data["application_number"])

	// First eligible employee wins.
	assert.Equal(t, float64(e1.ID), data["employee_id"])

	// Service fields denormalized from the schedule.
	assert.Equal(t, "Classic Haircut", data["service_name"])
	assert.Equal(t, float64(50), data["service_price"])
}

func TestCreateAppointmentNoEligibleEmployees(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)

	user := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, user), schedule.ID)

	assert.Nil(t, ap.EmployeeID)
}

func TestCreateAppointmentValidation(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)
	user := env.seedUser(t, "+15550002222")
	token := env.userToken(t, user)

	// Missing required fields.
	w := env.do(t, http.MethodPost, "/api/appointments", token, gin.H{
		"schedule_id": schedule.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed date.
	w = env.do(t, http.MethodPost, "/api/appointments", token, gin.H{
		"schedule_id":      schedule.ID,
		"user_name":        "Jordan",
		"phone_number":     "+15550002222",
		"application_date": "20-09-2026",
		"application_time": "14:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown schedule.
	w = env.do(t, http.MethodPost, "/api/appointments", token, gin.H{
		"schedule_id":      uint(9999),
		"user_name":        "Jordan",
		"phone_number":     "+15550002222",
		"application_date": "2026-09-20",
		"application_time": "14:00",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	env.db.Model(&models.Appointment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateAppointmentRequiresUserRole(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)
	employee := env.seedEmployee(t, salon.ID, "lena")

	w := env.do(t, http.MethodPost, "/api/appointments", env.employeeToken(t, employee), gin.H{
		"schedule_id":      schedule.ID,
		"user_name":        "Jordan",
		"phone_number":     "+15550002222",
		"application_date": "2026-09-20",
		"application_time": "14:00",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// Two bookings against the same schedule and slot both succeed: there is
// no capacity or double-booking check, and that stays a product decision
// rather than something this layer silently enforces.
func TestOverlappingSlotBookingsBothSucceed(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)

	u1 := env.seedUser(t, "+15550002222")
	u2 := env.seedUser(t, "+15550003333")

	first := env.createAppointment(t, env.userToken(t, u1), schedule.ID)
	second := env.createAppointment(t, env.userToken(t, u2), schedule.ID)

	assert.Equal(t, first.ApplicationDate, second.ApplicationDate)
	assert.Equal(t, first.ApplicationTime, second.ApplicationTime)
	assert.NotEqual(t, first.ApplicationNumber, second.ApplicationNumber)
}

// --------- List ---------

func TestListScopedToOwnUser(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)

	u1 := env.seedUser(t, "+15550002222")
	u2 := env.seedUser(t, "+15550003333")

	env.createAppointment(t, env.userToken(t, u1), schedule.ID)
	env.createAppointment(t, env.userToken(t, u1), schedule.ID)
	env.createAppointment(t, env.userToken(t, u2), schedule.ID)

	// Even an explicit user_id filter cannot escape the caller's scope.
	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/appointments?user_id=%d", u2.ID), env.userToken(t, u1), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].([]any)
	assert.Len(t, data, 2)
	for _, item := range data {
		assert.Equal(t, float64(u1.ID), item.(map[string]any)["user_id"])
	}
}

func TestListScopedToOwnSalon(t *testing.T) {
	env := newTestEnv(t)

	salonA := env.seedSalon(t, "Studio Nova")
	salonB := env.seedSalon(t, "Studio Luz")
	scheduleA := env.seedSchedule(t, salonA.ID)
	scheduleB := env.seedSchedule(t, salonB.ID)

	user := env.seedUser(t, "+15550002222")
	env.createAppointment(t, env.userToken(t, user), scheduleA.ID)
	env.createAppointment(t, env.userToken(t, user), scheduleB.ID)

	adminA := env.seedAdmin(t, "admin", &salonA.ID, "boss_a")

	w := env.do(t, http.MethodGet, "/api/appointments", env.adminToken(t, adminA), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, float64(scheduleA.ID), data[0].(map[string]any)["schedule_id"])
}

func TestListPagination(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)
	user := env.seedUser(t, "+15550002222")
	token := env.userToken(t, user)

	for i := 0; i < 25; i++ {
		env.createAppointment(t, token, schedule.ID)
	}

	w := env.do(t, http.MethodGet, "/api/appointments?page=2&limit=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["data"].([]any), 10)

	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(10), pagination["limit"])
	assert.Equal(t, float64(25), pagination["total"])
	assert.Equal(t, float64(3), pagination["pages"])
}

func TestMyAppointments(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)

	u1 := env.seedUser(t, "+15550002222")
	u2 := env.seedUser(t, "+15550003333")
	env.createAppointment(t, env.userToken(t, u1), schedule.ID)
	env.createAppointment(t, env.userToken(t, u2), schedule.ID)

	w := env.do(t, http.MethodGet, "/api/appointments/my-appointments", env.userToken(t, u2), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, float64(u2.ID), data[0].(map[string]any)["user_id"])
}

func TestListBySalon(t *testing.T) {
	env := newTestEnv(t)

	salonA := env.seedSalon(t, "Studio Nova")
	salonB := env.seedSalon(t, "Studio Luz")
	scheduleA := env.seedSchedule(t, salonA.ID)

	user := env.seedUser(t, "+15550002222")
	env.createAppointment(t, env.userToken(t, user), scheduleA.ID)

	super := env.seedAdmin(t, "superadmin", nil, "root")

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/appointments/salon/%d", salonA.ID), env.adminToken(t, super), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].([]any), 1)

	// Filter variant serves the same listing.
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/appointments/filter/salon/%d?status=pending", salonA.ID), env.adminToken(t, super), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].([]any), 1)

	// Unknown salon is a 404, not an empty page.
	w = env.do(t, http.MethodGet, "/api/appointments/salon/9999", env.adminToken(t, super), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Staff of another salon cannot address this one.
	adminB := env.seedAdmin(t, "admin", &salonB.ID, "boss_b")
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/appointments/salon/%d", salonA.ID), env.adminToken(t, adminB), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// --------- Get ---------

func TestGetAppointmentEnriched(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	employee := env.seedEmployee(t, salon.ID, "lena")
	schedule := env.seedSchedule(t, salon.ID, employee.ID)

	user := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, user), schedule.ID)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/appointments/%d", ap.ID), env.userToken(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "Classic Haircut", data["schedule_title"])
	assert.Equal(t, "Studio Nova", data["salon_name"])
	assert.Equal(t, employee.Name, data["employee_name"])
	assert.Equal(t, user.Name, data["user_account_name"])

	w = env.do(t, http.MethodGet, "/api/appointments/9999", env.userToken(t, user), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --------- Update ---------

func TestUpdateAppointmentOwnerOnly(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)

	owner := env.seedUser(t, "+15550002222")
	other := env.seedUser(t, "+15550003333")
	ap := env.createAppointment(t, env.userToken(t, owner), schedule.ID)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d", ap.ID), env.userToken(t, other), gin.H{
		"notes": "hijacked",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d", ap.ID), env.userToken(t, owner), gin.H{
		"application_time": "16:30",
		"notes":            "running late",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Appointment
	require.NoError(t, env.db.First(&updated, ap.ID).Error)
	assert.Equal(t, "16:30", updated.ApplicationTime)
	assert.Equal(t, "running late", updated.Notes)
	assert.Equal(t, ap.ApplicationNumber, updated.ApplicationNumber)
}

func TestUpdateAppointmentNoFields(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)
	owner := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, owner), schedule.ID)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d", ap.ID), env.userToken(t, owner), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAppointmentTerminalLocked(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)
	owner := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, owner), schedule.ID)

	require.NoError(t, env.db.Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Update("status", string(domain.StatusDone)).Error)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d", ap.ID), env.userToken(t, owner), gin.H{
		"notes": "too late",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var unchanged models.Appointment
	require.NoError(t, env.db.First(&unchanged, ap.ID).Error)
	assert.Equal(t, ap.Notes, unchanged.Notes)
}

// --------- Status ---------

func TestUpdateStatusHappyPath(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	employee := env.seedEmployee(t, salon.ID, "lena")
	schedule := env.seedSchedule(t, salon.ID, employee.ID)

	user := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, user), schedule.ID)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/status", ap.ID), env.employeeToken(t, employee), gin.H{
		"status": "accepted",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Appointment
	require.NoError(t, env.db.First(&updated, ap.ID).Error)
	assert.Equal(t, "accepted", updated.Status)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/status", ap.ID), env.employeeToken(t, employee), gin.H{
		"status": "done",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	employee := env.seedEmployee(t, salon.ID, "lena")
	schedule := env.seedSchedule(t, salon.ID)

	user := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, user), schedule.ID)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/status", ap.ID), env.employeeToken(t, employee), gin.H{
		"status": "not-a-real-status",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var unchanged models.Appointment
	require.NoError(t, env.db.First(&unchanged, ap.ID).Error)
	assert.Equal(t, "pending", unchanged.Status)
}

func TestUpdateStatusEnforcesTransitionTable(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	employee := env.seedEmployee(t, salon.ID, "lena")
	schedule := env.seedSchedule(t, salon.ID)

	user := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, user), schedule.ID)

	require.NoError(t, env.db.Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Update("status", string(domain.StatusDone)).Error)

	// done is terminal, no way back to pending.
	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/status", ap.ID), env.employeeToken(t, employee), gin.H{
		"status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var unchanged models.Appointment
	require.NoError(t, env.db.First(&unchanged, ap.ID).Error)
	assert.Equal(t, "done", unchanged.Status)
}

func TestUpdateStatusCrossSalonForbidden(t *testing.T) {
	env := newTestEnv(t)

	salonA := env.seedSalon(t, "Studio Nova")
	salonB := env.seedSalon(t, "Studio Luz")
	scheduleA := env.seedSchedule(t, salonA.ID)
	employeeB := env.seedEmployee(t, salonB.ID, "intruder")

	user := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, user), scheduleA.ID)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/status", ap.ID), env.employeeToken(t, employeeB), gin.H{
		"status": "accepted",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateStatusUserForbidden(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)

	user := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, user), schedule.ID)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/status", ap.ID), env.userToken(t, user), gin.H{
		"status": "accepted",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// --------- Cancel ---------

func TestCancelAppointment(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)

	owner := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, owner), schedule.ID)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/cancel", ap.ID), env.userToken(t, owner), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cancelled models.Appointment
	require.NoError(t, env.db.First(&cancelled, ap.ID).Error)
	assert.Equal(t, "cancelled", cancelled.Status)

	// Cancelled is terminal.
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/cancel", ap.ID), env.userToken(t, owner), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelAppointmentNotOwner(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)

	owner := env.seedUser(t, "+15550002222")
	other := env.seedUser(t, "+15550003333")
	ap := env.createAppointment(t, env.userToken(t, owner), schedule.ID)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d/cancel", ap.ID), env.userToken(t, other), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --------- Delete ---------

func TestDeleteAppointment(t *testing.T) {
	env := newTestEnv(t)

	salon := env.seedSalon(t, "Studio Nova")
	schedule := env.seedSchedule(t, salon.ID)

	owner := env.seedUser(t, "+15550002222")
	ap := env.createAppointment(t, env.userToken(t, owner), schedule.ID)

	// Finished work cannot be deleted.
	require.NoError(t, env.db.Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Update("status", string(domain.StatusDone)).Error)

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/api/appointments/%d", ap.ID), env.userToken(t, owner), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	env.db.Model(&models.Appointment{}).Where("id = ?", ap.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Pending rows are removable.
	require.NoError(t, env.db.Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Update("status", string(domain.StatusPending)).Error)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/appointments/%d", ap.ID), env.userToken(t, owner), nil)
	require.Equal(t, http.StatusOK, w.Code)

	env.db.Model(&models.Appointment{}).Where("id = ?", ap.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
