package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/entrevistaja/backend/internal/billing"
	"github.com/entrevistaja/backend/internal/utils"
)

type BillingHandler struct {
	checkout      *billing.CheckoutService
	processor     *billing.WebhookProcessor
	webhookSecret string
	log           *logrus.Logger
}

func NewBillingHandler(checkout *billing.CheckoutService, processor *billing.WebhookProcessor, webhookSecret string, log *logrus.Logger) *BillingHandler {
	return &BillingHandler{checkout: checkout, processor: processor, webhookSecret: webhookSecret, log: log}
}

type checkoutRequest struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
}

func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "BillingHandler.CreateCheckoutSession", "invalid request body", err))
		return
	}

	sess, err := h.checkout.CreateSession(req.Email, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Webhook receives Stripe event deliveries. The signature check happens
// before anything else; Stripe expects a plain-text 400 on failure and a
// JSON ack on success.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: could not read body")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		h.log.WithError(err).Warn("stripe webhook signature verification failed")
		c.String(http.StatusBadRequest, "Webhook Error: "+err.Error())
		return
	}

	if err := h.processor.Process(c.Request.Context(), string(event.Type), event.Data.Raw); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
