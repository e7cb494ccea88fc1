package billing

import (
	"strings"

	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/entrevistaja/backend/internal/utils"
)

// Subscription pricing. Amounts are in cents.
const (
	planName     = "Currículo Turbo Starter"
	planCurrency = "brl"
	planAmount   = 4900
	planInterval = "month"
)

// SessionCreator abstracts the Stripe checkout session API.
type SessionCreator interface {
	Create(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeSessionCreator struct{}

func (stripeSessionCreator) Create(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

// CheckoutSession is what the frontend needs to mount the embedded checkout.
type CheckoutSession struct {
	SessionID    string `json:"sessionId"`
	ClientSecret string `json:"clientSecret"`
}

// CheckoutService starts embedded-mode subscription checkouts.
type CheckoutService struct {
	sessions  SessionCreator
	returnURL string
	log       *logrus.Logger
}

func NewCheckoutService(returnURL string, log *logrus.Logger) *CheckoutService {
	return &CheckoutService{sessions: stripeSessionCreator{}, returnURL: returnURL, log: log}
}

// NewCheckoutServiceWith injects a custom session creator.
func NewCheckoutServiceWith(sessions SessionCreator, returnURL string, log *logrus.Logger) *CheckoutService {
	return &CheckoutService{sessions: sessions, returnURL: returnURL, log: log}
}

// CreateSession opens a checkout session for the given user. Both identity
// fields are required; nothing reaches Stripe until they validate.
func (s *CheckoutService) CreateSession(email, userID string) (*CheckoutSession, error) {
	const op = "CheckoutService.CreateSession"

	email = strings.TrimSpace(email)
	userID = strings.TrimSpace(userID)
	if email == "" || userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and userId are required", nil)
	}

	params := &stripe.CheckoutSessionParams{
		UIMode:        stripe.String("embedded"),
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		ReturnURL:     stripe.String(s.returnURL),
		CustomerEmail: stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(planCurrency),
					UnitAmount: stripe.Int64(planAmount),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(planInterval),
					},
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(planName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"userID": userID},
		},
	}
	params.AddMetadata("userID", userID)

	sess, err := s.sessions.Create(params)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create checkout session", err)
	}

	s.log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"uid":        userID,
	}).Info("checkout session created")

	return &CheckoutSession{SessionID: sess.ID, ClientSecret: sess.ClientSecret}, nil
}
