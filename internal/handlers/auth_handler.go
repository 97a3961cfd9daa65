package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salonova/booking-api/internal/auth"
	"github.com/salonova/booking-api/internal/config"
	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/httperr"
	"github.com/salonova/booking-api/internal/httpresp"
	"github.com/salonova/booking-api/internal/middleware"
	"github.com/salonova/booking-api/internal/models"
	"github.com/salonova/booking-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	tokens auth.TokenStore
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, tokens auth.TokenStore) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, tokens: tokens}
}

// --------- Requests ---------

type StaffLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UserLoginRequest struct {
	// Identifier is a phone number or an email address.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// StaffLogin authenticates admin-class principals and employees by
// username. The admins table is consulted first, then employees; the
// issued role comes from the table the record was found in.
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var req StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Username and password are required.")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var admin models.Admin
	err := h.db.Where("username = ? AND is_active = ?", username, true).
		First(&admin).Error
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
			return
		}

		principal := &domain.Principal{
			ID:      admin.ID,
			Role:    domain.Role(admin.Role),
			Name:    admin.Name,
			SalonID: admin.SalonID,
		}
		h.respondWithToken(c, principal)
		return
	}

	var employee models.Employee
	err = h.db.Where("username = ? AND is_active = ?", username, true).
		First(&employee).Error
	if err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	salonID := employee.SalonID
	principal := &domain.Principal{
		ID:      employee.ID,
		Role:    domain.RoleEmployee,
		Name:    employee.Name,
		SalonID: &salonID,
	}
	h.respondWithToken(c, principal)
}

func (h *AuthHandler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, phone and password are required.")
		return
	}

	if !validators.IsValidPhone(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "phone is not a valid phone number.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && !validators.IsValidEmail(email) {
		httperr.BadRequest(c, "invalid_email", "email is not a valid address.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("phone = ?", req.Phone).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "phone_already_registered", "An account with this phone already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Something went wrong.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Something went wrong.")
		return
	}

	principal := &domain.Principal{
		ID:   user.ID,
		Role: domain.RoleUser,
		Name: user.Name,
	}

	token, err := auth.GenerateToken(h.config, principal)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Something went wrong.")
		return
	}

	httpresp.Created(c, "Account created.", gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"phone": user.Phone,
			"email": user.Email,
		},
		"token": token,
	})
}

func (h *AuthHandler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Identifier and password are required.")
		return
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))

	var user models.User
	err := h.db.
		Where("(phone = ? OR email = ?) AND is_active = ?", identifier, identifier, true).
		First(&user).Error
	if err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	principal := &domain.Principal{
		ID:   user.ID,
		Role: domain.RoleUser,
		Name: user.Name,
	}
	h.respondWithToken(c, principal)
}

// Logout revokes the presented token for its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, ttl := middleware.TokenLifetime(c)
	if jti == "" {
		httpresp.OK(c, "Logged out.", nil)
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), jti, ttl); err != nil {
		httperr.Internal(c, "failed_to_revoke_token", "Something went wrong.")
		return
	}

	httpresp.OK(c, "Logged out.", nil)
}

// --------- Helpers ---------

func (h *AuthHandler) respondWithToken(c *gin.Context, principal *domain.Principal) {
	token, err := auth.GenerateToken(h.config, principal)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Something went wrong.")
		return
	}

	httpresp.OK(c, "Logged in.", gin.H{
		"principal": gin.H{
			"id":       principal.ID,
			"name":     principal.Name,
			"role":     principal.Role,
			"salon_id": principal.SalonID,
		},
		"token": token,
	})
}
