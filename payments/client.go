package payments

import (
	stripeapi "github.com/stripe/stripe-go/v82"
	stripecheckoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
)

// Client wraps the Stripe API client with additional functionality
type Client struct {
	config *Config
}

// NewClient creates a new Stripe client with the given configuration
func NewClient(config *Config) *Client {
	stripeapi.Key = config.APIKey

	return &Client{config: config}
}

// ValidateWebhookEvent validates the signature of a webhook payload against
// the shared webhook secret and parses the event. It fails closed: an
// invalid signature never yields an event.
func (c *Client) ValidateWebhookEvent(payload []byte, signatureHeader string) (*stripeapi.Event, error) {
	event, err := stripewebhook.ConstructEvent(payload, signatureHeader, c.config.WebhookSecret)
	if err != nil {
		return nil, NewPaymentError(CodeWebhookValidation, "webhook signature validation failed", err)
	}
	return &event, nil
}

// CreateCheckoutSession creates a single-use, payment-mode checkout session
// for one course price. The user and course identifiers travel as opaque
// session metadata so the webhook can reconcile the purchase even when the
// price lookup fails.
// Overview of stripe checkout mechanics: https://docs.stripe.com/checkout/custom/quickstart
// API description https://docs.stripe.com/api/checkout/sessions
func (c *Client) CreateCheckoutSession(params *CheckoutSessionParams) (*stripeapi.CheckoutSession, error) {
	checkoutParams := &stripeapi.CheckoutSessionParams{
		// One-time payment mode, a single line item with quantity one
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Price:    stripeapi.String(params.PriceID),
				Quantity: stripeapi.Int64(1),
			},
		},
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card", "blik", "klarna"}),
		CustomerEmail:      stripeapi.String(params.Email),
		// The redirect targets are derived from the configured frontend
		// base URL
		SuccessURL: stripeapi.String(c.config.FrontendURL + "/?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripeapi.String(c.config.FrontendURL + "/kurs"),
	}
	checkoutParams.AddMetadata("userId", params.UserID)
	checkoutParams.AddMetadata("courseId", params.CourseID)

	session, err := stripecheckoutsession.New(checkoutParams)
	if err != nil {
		return nil, NewPaymentError(CodeAPICallFailed, "failed to create checkout session", err)
	}

	return session, nil
}

// GetCheckoutSession retrieves a checkout session by ID with its line items
// and their price references expanded. The reconciler always re-fetches the
// session because the webhook payload is not trusted to carry complete
// price information.
func (*Client) GetCheckoutSession(sessionID string) (*stripeapi.CheckoutSession, error) {
	params := &stripeapi.CheckoutSessionParams{}
	params.AddExpand("line_items")
	params.AddExpand("line_items.data.price")

	session, err := stripecheckoutsession.Get(sessionID, params)
	if err != nil {
		return nil, NewPaymentError(CodeAPICallFailed, "failed to get checkout session", err)
	}

	return session, nil
}

// CheckoutSessionParams holds parameters for creating a checkout session.
// All fields are required.
type CheckoutSessionParams struct {
	UserID   string
	Email    string
	CourseID string
	PriceID  string
}
