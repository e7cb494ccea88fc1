package billing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/entrevistaja/backend/internal/models"
	mongorepo "github.com/entrevistaja/backend/internal/repositories/mongo"
	"github.com/entrevistaja/backend/internal/utils"
)

// WebhookProcessor turns verified Stripe events into billing records. It is
// idempotent: every write is an upsert keyed by the Stripe object id, so
// Stripe redelivering an event produces the same state, not a duplicate.
type WebhookProcessor struct {
	billing  mongorepo.BillingRepository
	profiles mongorepo.ProfileRepository
	log      *logrus.Logger
}

func NewWebhookProcessor(billing mongorepo.BillingRepository, profiles mongorepo.ProfileRepository, log *logrus.Logger) *WebhookProcessor {
	return &WebhookProcessor{billing: billing, profiles: profiles, log: log}
}

// Process handles one event whose signature has already been verified.
// Unknown event types are acknowledged without action so Stripe does not
// retry them forever.
func (p *WebhookProcessor) Process(ctx context.Context, eventType string, raw json.RawMessage) error {
	switch eventType {
	case "checkout.session.completed":
		return p.handleCheckoutCompleted(ctx, raw)
	case "customer.subscription.created", "customer.subscription.updated":
		return p.handleSubscription(ctx, raw, false)
	case "customer.subscription.deleted":
		return p.handleSubscription(ctx, raw, true)
	case "invoice.payment_succeeded", "invoice.payment_failed":
		return p.handleInvoice(ctx, raw)
	default:
		p.log.WithField("event_type", eventType).Debug("ignoring unhandled stripe event")
		return nil
	}
}

func (p *WebhookProcessor) handleCheckoutCompleted(ctx context.Context, raw json.RawMessage) error {
	const op = "WebhookProcessor.handleCheckoutCompleted"

	var ev checkoutSessionEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "malformed checkout session payload", err)
	}
	if ev.ID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "checkout session payload missing id", nil)
	}

	uid := ev.Metadata["userID"]
	if uid == "" && ev.email() != "" {
		// Sessions created outside our checkout flow carry no metadata;
		// fall back to matching the payer's email against profiles.
		found, err := p.profiles.FindUIDByEmail(ctx, ev.email())
		if err != nil {
			p.log.WithError(err).WithField("session_id", ev.ID).Warn("could not resolve user for checkout session")
		} else {
			uid = found
		}
	}

	rec := &models.PaymentRecord{
		SessionID:      ev.ID,
		UserID:         uid,
		Email:          ev.email(),
		Status:         ev.PaymentStatus,
		AmountTotal:    ev.AmountTotal,
		Currency:       ev.Currency,
		SubscriptionID: ev.Subscription,
	}
	if err := p.billing.UpsertPayment(ctx, rec); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to record payment", err)
	}

	p.log.WithFields(logrus.Fields{
		"session_id": ev.ID,
		"uid":        uid,
		"amount":     ev.AmountTotal,
	}).Info("checkout session recorded")
	return nil
}

func (p *WebhookProcessor) handleSubscription(ctx context.Context, raw json.RawMessage, deleted bool) error {
	const op = "WebhookProcessor.handleSubscription"

	var ev subscriptionEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "malformed subscription payload", err)
	}
	if ev.ID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "subscription payload missing id", nil)
	}

	rec := &models.SubscriptionRecord{
		SubscriptionID:     ev.ID,
		UserID:             ev.Metadata["userID"],
		CustomerID:         ev.Customer,
		Status:             ev.Status,
		PlanID:             ev.planID(),
		CurrentPeriodStart: time.Unix(ev.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(ev.CurrentPeriodEnd, 0).UTC(),
	}
	if deleted {
		rec.Status = "canceled"
	}
	if ev.CanceledAt > 0 {
		t := time.Unix(ev.CanceledAt, 0).UTC()
		rec.CanceledAt = &t
	} else if deleted {
		t := time.Now().UTC()
		rec.CanceledAt = &t
	}

	if err := p.billing.UpsertSubscription(ctx, rec); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to record subscription", err)
	}

	p.log.WithFields(logrus.Fields{
		"subscription_id": ev.ID,
		"status":          rec.Status,
	}).Info("subscription recorded")
	return nil
}

func (p *WebhookProcessor) handleInvoice(ctx context.Context, raw json.RawMessage) error {
	const op = "WebhookProcessor.handleInvoice"

	var ev invoiceEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "malformed invoice payload", err)
	}
	if ev.ID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "invoice payload missing id", nil)
	}

	rec := &models.InvoiceRecord{
		InvoiceID:      ev.ID,
		CustomerID:     ev.Customer,
		SubscriptionID: ev.Subscription,
		Paid:           ev.Paid,
		AmountPaid:     ev.AmountPaid,
		AmountDue:      ev.AmountDue,
		FailureMessage: ev.LastFinalizationError.Message,
	}
	if err := p.billing.UpsertInvoice(ctx, rec); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to record invoice", err)
	}

	p.log.WithFields(logrus.Fields{
		"invoice_id": ev.ID,
		"paid":       ev.Paid,
	}).Info("invoice recorded")
	return nil
}
