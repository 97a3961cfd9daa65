package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonova/booking-api/internal/audit"
	"github.com/salonova/booking-api/internal/auth"
	"github.com/salonova/booking-api/internal/config"
	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/handlers"
	infraRepo "github.com/salonova/booking-api/internal/infra/repository"
	"github.com/salonova/booking-api/internal/middleware"
	ucBooking "github.com/salonova/booking-api/internal/usecase/booking"
)

// RegisterRoutes wires repositories, use cases, and handlers onto the
// engine. The payments fetcher may be nil when the gateway is not
// configured; the webhook then answers 503.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	tokens auth.TokenStore,
	payments handlers.PaymentFetcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	credentials := auth.NewCredentialStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createUC := ucBooking.NewCreateAppointment(bookingRepo, auditDispatcher)
	listUC := ucBooking.NewListAppointments(bookingRepo)
	getUC := ucBooking.NewGetAppointment(bookingRepo)
	updateUC := ucBooking.NewUpdateAppointment(bookingRepo, auditDispatcher)
	updateStatusUC := ucBooking.NewUpdateStatus(bookingRepo, auditDispatcher)
	cancelUC := ucBooking.NewCancelAppointment(bookingRepo, auditDispatcher)
	deleteUC := ucBooking.NewDeleteAppointment(bookingRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, tokens)
	meHandler := handlers.NewMeHandler()
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	paymentHandler := handlers.NewPaymentHandler(payments, bookingRepo, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		listUC,
		getUC,
		updateUC,
		updateStatusUC,
		cancelUC,
		deleteUC,
	)

	guard := middleware.AccessGuard(cfg, credentials, tokens)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.StaffLogin)
		api.POST("/auth/user/register", authHandler.UserRegister)
		api.POST("/auth/user/login", authHandler.UserLogin)

		// ------------------------------
		// PAYMENT CALLBACK (gateway, unauthenticated)
		// ------------------------------
		api.POST("/payments/mercadopago", paymentHandler.Webhook)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(guard)
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			appointments := secured.Group("/appointments")
			{
				appointments.POST("",
					middleware.RequireRoles(domain.RoleUser),
					appointmentHandler.Create,
				)

				appointments.GET("", appointmentHandler.List)
				appointments.GET("/my-appointments", appointmentHandler.ListMine)
				appointments.GET("/salon/:salon_id", appointmentHandler.ListBySalon)
				appointments.GET("/filter/salon/:salon_id", appointmentHandler.ListBySalon)
				appointments.GET("/:id", appointmentHandler.Get)

				appointments.PUT("/:id",
					middleware.RequireRoles(domain.RoleUser),
					appointmentHandler.Update,
				)

				appointments.PUT("/:id/status",
					middleware.RequireRoles(
						domain.RoleSuperadmin,
						domain.RoleAdmin,
						domain.RoleEmployee,
					),
					appointmentHandler.UpdateStatus,
				)

				appointments.PUT("/:id/cancel",
					middleware.RequireRoles(domain.RoleUser),
					appointmentHandler.Cancel,
				)

				appointments.DELETE("/:id",
					middleware.RequireRoles(domain.RoleUser),
					appointmentHandler.Delete,
				)
			}

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
