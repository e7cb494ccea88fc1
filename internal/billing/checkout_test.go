package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v82"

	"github.com/entrevistaja/backend/internal/utils"
)

type fakeSessionCreator struct {
	calls  int
	params *stripe.CheckoutSessionParams
	err    error
}

func (f *fakeSessionCreator) Create(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.calls++
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", ClientSecret: "secret_1"}, nil
}

func TestCreateSessionRequiresIdentity(t *testing.T) {
	fake := &fakeSessionCreator{}
	svc := NewCheckoutServiceWith(fake, "https://example.com/return", quietLogger())

	cases := []struct{ email, userID string }{
		{"", ""},
		{"ana@example.com", ""},
		{"", "uid-1"},
		{"   ", "uid-1"},
	}
	for _, tc := range cases {
		_, err := svc.CreateSession(tc.email, tc.userID)
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "email=%q userID=%q", tc.email, tc.userID)
	}
	assert.Zero(t, fake.calls, "invalid requests must never reach Stripe")
}

func TestCreateSessionBuildsEmbeddedSubscription(t *testing.T) {
	fake := &fakeSessionCreator{}
	svc := NewCheckoutServiceWith(fake, "https://example.com/return", quietLogger())

	out, err := svc.CreateSession("ana@example.com", "uid-1")
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", out.SessionID)
	assert.Equal(t, "secret_1", out.ClientSecret)

	p := fake.params
	require.NotNil(t, p)
	assert.Equal(t, "embedded", stripe.StringValue(p.UIMode))
	assert.Equal(t, string(stripe.CheckoutSessionModeSubscription), stripe.StringValue(p.Mode))
	assert.Equal(t, "https://example.com/return", stripe.StringValue(p.ReturnURL))
	assert.Equal(t, "ana@example.com", stripe.StringValue(p.CustomerEmail))

	require.Len(t, p.LineItems, 1)
	price := p.LineItems[0].PriceData
	require.NotNil(t, price)
	assert.Equal(t, "brl", stripe.StringValue(price.Currency))
	assert.Equal(t, int64(4900), stripe.Int64Value(price.UnitAmount))
	assert.Equal(t, "month", stripe.StringValue(price.Recurring.Interval))

	// the user id rides on both the session and the subscription so every
	// later webhook can attribute its object
	assert.Equal(t, "uid-1", p.Metadata["userID"])
	require.NotNil(t, p.SubscriptionData)
	assert.Equal(t, "uid-1", p.SubscriptionData.Metadata["userID"])
}

func TestCreateSessionProviderFailure(t *testing.T) {
	fake := &fakeSessionCreator{err: assert.AnError}
	svc := NewCheckoutServiceWith(fake, "https://example.com/return", quietLogger())

	_, err := svc.CreateSession("ana@example.com", "uid-1")
	assert.True(t, utils.IsCode(err, utils.CodeInternal), "provider failures surface as 500s")
}
