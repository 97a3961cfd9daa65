package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/salonova/booking-api/internal/audit"
	domain "github.com/salonova/booking-api/internal/domain/booking"
)

// PaymentFetcher is the slice of the gateway client the webhook needs.
type PaymentFetcher interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// PaymentHandler handles the payment-completion callback. The gateway
// posts a notification carrying only a payment id; the payment itself is
// fetched back from the gateway, and its external reference carries the
// appointment's application number.
type PaymentHandler struct {
	payments PaymentFetcher
	repo     domain.Repository
	audit    *audit.Dispatcher
}

func NewPaymentHandler(
	payments PaymentFetcher,
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		repo:     repo,
		audit:    auditDispatcher,
	}
}

type paymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Webhook acknowledges with 200 for everything it chooses to ignore;
// non-2xx answers make the gateway retry.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	if h.payments == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}

	var notif paymentNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if notif.Type != "" && notif.Type != "payment" {
		c.Status(http.StatusOK)
		return
	}

	paymentID, err := strconv.Atoi(notif.Data.ID)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	p, err := h.payments.Get(c.Request.Context(), paymentID)
	if err != nil {
		log.Println("payment lookup failed:", err)
		c.Status(http.StatusBadGateway)
		return
	}

	if p.Status != "approved" || p.ExternalReference == "" {
		c.Status(http.StatusOK)
		return
	}

	ap, err := h.repo.FindAppointmentByNumber(c.Request.Context(), p.ExternalReference)
	if err != nil {
		// Unknown reference; nothing to retry.
		c.Status(http.StatusOK)
		return
	}

	// A completed payment confirms the booking. Anything the machine
	// does not allow (already accepted, terminal) is left untouched.
	if err := domain.CanTransition(domain.Status(ap.Status), domain.StatusAccepted); err != nil {
		c.Status(http.StatusOK)
		return
	}

	ap.Status = string(domain.StatusAccepted)
	if err := h.repo.SaveAppointment(c.Request.Context(), ap); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	if schedule, err := h.repo.ResolveSchedule(c.Request.Context(), ap.ScheduleID); err == nil {
		h.audit.Dispatch(audit.Event{
			SalonID:   schedule.SalonID,
			ActorRole: "system",
			Action:    "appointment_payment_completed",
			Entity:    "appointment",
			EntityID:  &ap.ID,
			Metadata:  map[string]any{"payment_id": paymentID},
		})
	}

	c.Status(http.StatusOK)
}
