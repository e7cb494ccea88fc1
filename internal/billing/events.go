package billing

// Local views of the Stripe payloads the processor cares about. Each event
// type is decoded into exactly one of these, so a field from one shape can
// never leak into the handling of another.

type checkoutSessionEvent struct {
	ID            string            `json:"id"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Subscription  string            `json:"subscription"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

func (e *checkoutSessionEvent) email() string {
	if e.CustomerDetails.Email != "" {
		return e.CustomerDetails.Email
	}
	return e.CustomerEmail
}

type subscriptionEvent struct {
	ID                 string            `json:"id"`
	Customer           string            `json:"customer"`
	Status             string            `json:"status"`
	CurrentPeriodStart int64             `json:"current_period_start"`
	CurrentPeriodEnd   int64             `json:"current_period_end"`
	CanceledAt         int64             `json:"canceled_at"`
	Metadata           map[string]string `json:"metadata"`
	Items              struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

func (e *subscriptionEvent) planID() string {
	if len(e.Items.Data) == 0 {
		return ""
	}
	return e.Items.Data[0].Price.ID
}

type invoiceEvent struct {
	ID           string `json:"id"`
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
	Paid         bool   `json:"paid"`
	AmountPaid   int64  `json:"amount_paid"`
	AmountDue    int64  `json:"amount_due"`
	LastFinalizationError struct {
		Message string `json:"message"`
	} `json:"last_finalization_error"`
}
