package billing

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrevistaja/backend/internal/models"
	"github.com/entrevistaja/backend/internal/utils"
)

type fakeBillingRepo struct {
	payments      map[string]models.PaymentRecord
	subscriptions map[string]models.SubscriptionRecord
	invoices      map[string]models.InvoiceRecord
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{
		payments:      map[string]models.PaymentRecord{},
		subscriptions: map[string]models.SubscriptionRecord{},
		invoices:      map[string]models.InvoiceRecord{},
	}
}

func (r *fakeBillingRepo) UpsertPayment(ctx context.Context, p *models.PaymentRecord) error {
	r.payments[p.SessionID] = *p
	return nil
}

func (r *fakeBillingRepo) UpsertSubscription(ctx context.Context, s *models.SubscriptionRecord) error {
	r.subscriptions[s.SubscriptionID] = *s
	return nil
}

func (r *fakeBillingRepo) UpsertInvoice(ctx context.Context, inv *models.InvoiceRecord) error {
	r.invoices[inv.InvoiceID] = *inv
	return nil
}

func (r *fakeBillingRepo) GetSubscription(ctx context.Context, id string) (*models.SubscriptionRecord, error) {
	if s, ok := r.subscriptions[id]; ok {
		return &s, nil
	}
	return nil, nil
}

type fakeProfileLookup struct {
	byEmail map[string]string
}

func (f *fakeProfileLookup) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	return nil, utils.ErrNotFound
}
func (f *fakeProfileLookup) Upsert(ctx context.Context, p *models.UserProfile) error { return nil }
func (f *fakeProfileLookup) FindUIDByEmail(ctx context.Context, email string) (string, error) {
	if uid, ok := f.byEmail[email]; ok {
		return uid, nil
	}
	return "", utils.ErrNotFound
}
func (f *fakeProfileLookup) SetResumeFile(ctx context.Context, uid, url, name string) error {
	return nil
}
func (f *fakeProfileLookup) ClearResumeFile(ctx context.Context, uid string) error { return nil }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestProcessor() (*WebhookProcessor, *fakeBillingRepo, *fakeProfileLookup) {
	repo := newFakeBillingRepo()
	profiles := &fakeProfileLookup{byEmail: map[string]string{}}
	return NewWebhookProcessor(repo, profiles, quietLogger()), repo, profiles
}

const checkoutPayload = `{
	"id": "cs_test_123",
	"status": "complete",
	"payment_status": "paid",
	"amount_total": 4900,
	"currency": "brl",
	"subscription": "sub_1",
	"customer_details": {"email": "ana@example.com"},
	"metadata": {"userID": "uid-1"}
}`

func TestCheckoutCompletedRecordsPayment(t *testing.T) {
	p, repo, _ := newTestProcessor()

	err := p.Process(context.Background(), "checkout.session.completed", []byte(checkoutPayload))
	require.NoError(t, err)

	rec, ok := repo.payments["cs_test_123"]
	require.True(t, ok)
	assert.Equal(t, "uid-1", rec.UserID)
	assert.Equal(t, "ana@example.com", rec.Email)
	assert.Equal(t, "paid", rec.Status)
	assert.Equal(t, int64(4900), rec.AmountTotal)
	assert.Equal(t, "sub_1", rec.SubscriptionID)
}

func TestCheckoutCompletedIsIdempotent(t *testing.T) {
	p, repo, _ := newTestProcessor()

	require.NoError(t, p.Process(context.Background(), "checkout.session.completed", []byte(checkoutPayload)))
	first := repo.payments["cs_test_123"]

	// Stripe redelivers: the record converges, it does not duplicate
	require.NoError(t, p.Process(context.Background(), "checkout.session.completed", []byte(checkoutPayload)))
	assert.Len(t, repo.payments, 1)

	second := repo.payments["cs_test_123"]
	first.CreatedAt = second.CreatedAt
	assert.Equal(t, first, second)
}

func TestCheckoutCompletedFallsBackToEmailLookup(t *testing.T) {
	p, repo, profiles := newTestProcessor()
	profiles.byEmail["ana@example.com"] = "uid-from-email"

	payload := `{
		"id": "cs_test_456",
		"payment_status": "paid",
		"customer_email": "ana@example.com",
		"metadata": {}
	}`
	require.NoError(t, p.Process(context.Background(), "checkout.session.completed", []byte(payload)))
	assert.Equal(t, "uid-from-email", repo.payments["cs_test_456"].UserID)
}

func TestCheckoutCompletedUnknownEmailStillRecords(t *testing.T) {
	p, repo, _ := newTestProcessor()

	payload := `{"id": "cs_test_789", "payment_status": "paid", "customer_email": "ghost@example.com"}`
	require.NoError(t, p.Process(context.Background(), "checkout.session.completed", []byte(payload)))

	rec := repo.payments["cs_test_789"]
	assert.Empty(t, rec.UserID, "an unmatched payment is kept for later reconciliation")
	assert.Equal(t, "ghost@example.com", rec.Email)
}

func TestSubscriptionLifecycle(t *testing.T) {
	p, repo, _ := newTestProcessor()

	created := `{
		"id": "sub_1",
		"customer": "cus_1",
		"status": "active",
		"current_period_start": 1735689600,
		"current_period_end": 1738368000,
		"metadata": {"userID": "uid-1"},
		"items": {"data": [{"price": {"id": "price_starter"}}]}
	}`
	require.NoError(t, p.Process(context.Background(), "customer.subscription.created", []byte(created)))

	rec := repo.subscriptions["sub_1"]
	assert.Equal(t, "active", rec.Status)
	assert.Equal(t, "uid-1", rec.UserID)
	assert.Equal(t, "price_starter", rec.PlanID)
	assert.Nil(t, rec.CanceledAt)

	deleted := `{"id": "sub_1", "customer": "cus_1", "status": "active"}`
	require.NoError(t, p.Process(context.Background(), "customer.subscription.deleted", []byte(deleted)))

	rec = repo.subscriptions["sub_1"]
	assert.Equal(t, "canceled", rec.Status)
	require.NotNil(t, rec.CanceledAt)
	assert.Len(t, repo.subscriptions, 1, "lifecycle events converge on one record")
}

func TestInvoiceEvents(t *testing.T) {
	p, repo, _ := newTestProcessor()

	paid := `{"id": "in_1", "customer": "cus_1", "subscription": "sub_1", "paid": true, "amount_paid": 4900, "amount_due": 4900}`
	require.NoError(t, p.Process(context.Background(), "invoice.payment_succeeded", []byte(paid)))
	assert.True(t, repo.invoices["in_1"].Paid)

	failed := `{"id": "in_2", "customer": "cus_1", "paid": false, "amount_due": 4900, "last_finalization_error": {"message": "card declined"}}`
	require.NoError(t, p.Process(context.Background(), "invoice.payment_failed", []byte(failed)))
	rec := repo.invoices["in_2"]
	assert.False(t, rec.Paid)
	assert.Equal(t, "card declined", rec.FailureMessage)
}

func TestUnknownEventIsAcknowledged(t *testing.T) {
	p, repo, _ := newTestProcessor()

	err := p.Process(context.Background(), "customer.updated", []byte(`{"id": "cus_1"}`))
	assert.NoError(t, err, "unknown events must not make Stripe retry")
	assert.Empty(t, repo.payments)
	assert.Empty(t, repo.subscriptions)
	assert.Empty(t, repo.invoices)
}

func TestMalformedPayloadIsRejected(t *testing.T) {
	p, _, _ := newTestProcessor()

	err := p.Process(context.Background(), "checkout.session.completed", []byte(`{`))
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	err = p.Process(context.Background(), "checkout.session.completed", []byte(`{"id": ""}`))
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
