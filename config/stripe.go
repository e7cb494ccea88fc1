package config

import (
	"errors"
	"os"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	ReturnURL     string
}

func LoadStripeConfig() (*StripeConfig, error) {
	cfg := &StripeConfig{
		SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		ReturnURL:     os.Getenv("STRIPE_RETURN_URL"),
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY environment variable is not set")
	}
	if cfg.WebhookSecret == "" {
		return nil, errors.New("STRIPE_WEBHOOK_SECRET environment variable is not set")
	}
	if cfg.ReturnURL == "" {
		cfg.ReturnURL = "https://www.entrevistaja.com.br/home?session_id={CHECKOUT_SESSION_ID}"
	}
	return cfg, nil
}
