package models

import "time"

// Billing records are created only by the webhook processor, keyed by the
// Stripe object id so replayed deliveries overwrite instead of duplicating.

type PaymentRecord struct {
	SessionID      string    `bson:"_id" json:"sessionId"`
	UserID         string    `bson:"user_id,omitempty" json:"userId,omitempty"`
	Email          string    `bson:"email,omitempty" json:"email,omitempty"`
	Status         string    `bson:"status" json:"status"`
	AmountTotal    int64     `bson:"amount_total" json:"amountTotal"`
	Currency       string    `bson:"currency,omitempty" json:"currency,omitempty"`
	SubscriptionID string    `bson:"subscription_id,omitempty" json:"subscriptionId,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

type SubscriptionRecord struct {
	SubscriptionID     string     `bson:"_id" json:"subscriptionId"`
	UserID             string     `bson:"user_id,omitempty" json:"userId,omitempty"`
	CustomerID         string     `bson:"customer_id,omitempty" json:"customerId,omitempty"`
	Status             string     `bson:"status" json:"status"`
	PlanID             string     `bson:"plan_id,omitempty" json:"planId,omitempty"`
	CurrentPeriodStart time.Time  `bson:"current_period_start" json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time  `bson:"current_period_end" json:"currentPeriodEnd"`
	CanceledAt         *time.Time `bson:"canceled_at,omitempty" json:"canceledAt,omitempty"`
	UpdatedAt          time.Time  `bson:"updated_at" json:"updatedAt"`
}

type InvoiceRecord struct {
	InvoiceID      string    `bson:"_id" json:"invoiceId"`
	CustomerID     string    `bson:"customer_id,omitempty" json:"customerId,omitempty"`
	SubscriptionID string    `bson:"subscription_id,omitempty" json:"subscriptionId,omitempty"`
	Paid           bool      `bson:"paid" json:"paid"`
	AmountPaid     int64     `bson:"amount_paid" json:"amountPaid"`
	AmountDue      int64     `bson:"amount_due" json:"amountDue"`
	FailureMessage string    `bson:"failure_message,omitempty" json:"failureMessage,omitempty"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}
