package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salonova/booking-api/internal/auth"
	"github.com/salonova/booking-api/internal/config"
	dbpkg "github.com/salonova/booking-api/internal/db"
	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/handlers"
	"github.com/salonova/booking-api/internal/infra/tokenstore"
	"github.com/salonova/booking-api/internal/models"
	"github.com/salonova/booking-api/internal/routes"
)

var handlerDBSeq uint64

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config
	tokens *tokenstore.MemoryTokenStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddUint64(&handlerDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}

	tokens := tokenstore.NewMemoryTokenStore()

	router := gin.New()
	routes.RegisterRoutes(router, db, cfg, tokens, nil)

	return &testEnv{db: db, router: router, cfg: cfg, tokens: tokens}
}

func newTestEnvWithPayments(t *testing.T, payments handlers.PaymentFetcher) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddUint64(&handlerDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}

	tokens := tokenstore.NewMemoryTokenStore()

	router := gin.New()
	routes.RegisterRoutes(router, db, cfg, tokens, payments)

	return &testEnv{db: db, router: router, cfg: cfg, tokens: tokens}
}

// --------- Seeding ---------

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func (e *testEnv) seedSalon(t *testing.T, name string) *models.Salon {
	t.Helper()
	salon := &models.Salon{Name: name, IsActive: true}
	require.NoError(t, e.db.Create(salon).Error)
	return salon
}

func (e *testEnv) seedSchedule(t *testing.T, salonID uint, employees ...uint) *models.Schedule {
	t.Helper()
	schedule := &models.Schedule{
		SalonID:      salonID,
		Title:        "Classic Haircut",
		Date:         "2026-09-20",
		Price:        50,
		EmployeeList: models.EmployeeIDList(employees),
		IsActive:     true,
	}
	require.NoError(t, e.db.Create(schedule).Error)
	return schedule
}

func (e *testEnv) seedEmployee(t *testing.T, salonID uint, username string) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		SalonID:      salonID,
		Username:     username,
		PasswordHash: mustHash(t, "secret123"),
		Name:         "Employee " + username,
		IsActive:     true,
	}
	require.NoError(t, e.db.Create(employee).Error)
	return employee
}

func (e *testEnv) seedUser(t *testing.T, phone string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "User " + phone,
		Phone:        phone,
		PasswordHash: mustHash(t, "secret123"),
		IsActive:     true,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedAdmin(t *testing.T, role string, salonID *uint, username string) *models.Admin {
	t.Helper()
	admin := &models.Admin{
		Username:     username,
		PasswordHash: mustHash(t, "secret123"),
		Name:         "Admin " + username,
		Role:         role,
		SalonID:      salonID,
		IsActive:     true,
	}
	require.NoError(t, e.db.Create(admin).Error)
	return admin
}

// --------- Tokens ---------

func (e *testEnv) userToken(t *testing.T, user *models.User) string {
	t.Helper()
	return e.tokenFor(t, &domain.Principal{ID: user.ID, Role: domain.RoleUser, Name: user.Name})
}

func (e *testEnv) employeeToken(t *testing.T, employee *models.Employee) string {
	t.Helper()
	salonID := employee.SalonID
	return e.tokenFor(t, &domain.Principal{
		ID:      employee.ID,
		Role:    domain.RoleEmployee,
		Name:    employee.Name,
		SalonID: &salonID,
	})
}

func (e *testEnv) adminToken(t *testing.T, admin *models.Admin) string {
	t.Helper()
	return e.tokenFor(t, &domain.Principal{
		ID:      admin.ID,
		Role:    domain.Role(admin.Role),
		Name:    admin.Name,
		SalonID: admin.SalonID,
	})
}

func (e *testEnv) tokenFor(t *testing.T, p *domain.Principal) string {
	t.Helper()
	token, err := auth.GenerateToken(e.cfg, p)
	require.NoError(t, err)
	return token
}

// --------- Requests ---------

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (e *testEnv) createAppointment(t *testing.T, token string, scheduleID uint) *models.Appointment {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/appointments", token, gin.H{
		"schedule_id":      scheduleID,
		"user_name":        "Jordan",
		"phone_number":     "+15550002222",
		"application_date": "2026-09-20",
		"application_time": "14:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)

	var ap models.Appointment
	require.NoError(t, e.db.First(&ap, uint(data["id"].(float64))).Error)
	return &ap
}
