package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/entrevistaja/backend/internal/models"
)

// BillingRepository stores what the webhook processor learns from Stripe.
// All writes are $set upserts keyed by the Stripe object id, so redelivered
// events converge on the same record instead of duplicating it.
type BillingRepository interface {
	UpsertPayment(ctx context.Context, p *models.PaymentRecord) error
	UpsertSubscription(ctx context.Context, s *models.SubscriptionRecord) error
	UpsertInvoice(ctx context.Context, inv *models.InvoiceRecord) error
	GetSubscription(ctx context.Context, subscriptionID string) (*models.SubscriptionRecord, error)
}

type billingRepo struct {
	payments      *mongo.Collection
	subscriptions *mongo.Collection
	invoices      *mongo.Collection
}

func NewBillingRepo(db *mongo.Database) BillingRepository {
	return &billingRepo{
		payments:      db.Collection("payments"),
		subscriptions: db.Collection("subscriptions"),
		invoices:      db.Collection("invoices"),
	}
}

func (r *billingRepo) UpsertPayment(ctx context.Context, p *models.PaymentRecord) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.payments.UpdateOne(ctx,
		bson.M{"_id": p.SessionID},
		bson.M{"$set": bson.M{
			"user_id":         p.UserID,
			"email":           p.Email,
			"status":          p.Status,
			"amount_total":    p.AmountTotal,
			"currency":        p.Currency,
			"subscription_id": p.SubscriptionID,
			"created_at":      p.CreatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *billingRepo) UpsertSubscription(ctx context.Context, s *models.SubscriptionRecord) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	set := bson.M{
		"customer_id":          s.CustomerID,
		"status":               s.Status,
		"plan_id":              s.PlanID,
		"current_period_start": s.CurrentPeriodStart,
		"current_period_end":   s.CurrentPeriodEnd,
		"updated_at":           s.UpdatedAt,
	}
	if s.UserID != "" {
		set["user_id"] = s.UserID
	}
	if s.CanceledAt != nil {
		set["canceled_at"] = *s.CanceledAt
	}
	_, err := r.subscriptions.UpdateOne(ctx,
		bson.M{"_id": s.SubscriptionID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *billingRepo) UpsertInvoice(ctx context.Context, inv *models.InvoiceRecord) error {
	if inv.UpdatedAt.IsZero() {
		inv.UpdatedAt = time.Now().UTC()
	}
	_, err := r.invoices.UpdateOne(ctx,
		bson.M{"_id": inv.InvoiceID},
		bson.M{"$set": bson.M{
			"customer_id":     inv.CustomerID,
			"subscription_id": inv.SubscriptionID,
			"paid":            inv.Paid,
			"amount_paid":     inv.AmountPaid,
			"amount_due":      inv.AmountDue,
			"failure_message": inv.FailureMessage,
			"updated_at":      inv.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *billingRepo) GetSubscription(ctx context.Context, subscriptionID string) (*models.SubscriptionRecord, error) {
	var s models.SubscriptionRecord
	err := r.subscriptions.FindOne(ctx, bson.M{"_id": subscriptionID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &s, err
}
