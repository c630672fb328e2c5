package payments

import (
	"fmt"
	"os"
)

// Config holds the complete Stripe configuration for the payments service.
type Config struct {
	APIKey        string   `yaml:"api_key" json:"api_key"`
	WebhookSecret string   `yaml:"webhook_secret" json:"webhook_secret"`
	FrontendURL   string   `yaml:"frontend_url" json:"frontend_url"`
	Catalog       *Catalog `yaml:"-" json:"-"`
}

// NewConfig creates a new payments configuration from environment variables.
// The frontend URL is used to derive the checkout success and cancel
// redirect targets.
func NewConfig(frontendURL string) (*Config, error) {
	apiKey := os.Getenv("KURSIO_STRIPEAPISECRET")
	if apiKey == "" {
		return nil, fmt.Errorf("KURSIO_STRIPEAPISECRET environment variable is required")
	}

	webhookSecret := os.Getenv("KURSIO_STRIPEWEBHOOKSECRET")
	if webhookSecret == "" {
		return nil, fmt.Errorf("KURSIO_STRIPEWEBHOOKSECRET environment variable is required")
	}

	if frontendURL == "" {
		return nil, fmt.Errorf("frontend URL is required")
	}

	return &Config{
		APIKey:        apiKey,
		WebhookSecret: webhookSecret,
		FrontendURL:   frontendURL,
		Catalog:       DefaultCatalog(),
	}, nil
}
