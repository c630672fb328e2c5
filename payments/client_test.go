package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	stripeapi "github.com/stripe/stripe-go/v82"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload produces a Stripe-Signature header for the given payload, the
// same scheme the webhook library verifies: an HMAC-SHA256 over
// "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func webhookPayload(c *qt.C) []byte {
	payload, err := json.Marshal(map[string]any{
		"id":          "evt_test_1",
		"api_version": stripeapi.APIVersion,
		"type":        string(stripeapi.EventTypeCheckoutSessionCompleted),
		"data": map[string]any{
			"object": map[string]any{
				"id":       "cs_test_1",
				"metadata": map[string]string{"userId": "u1"},
			},
		},
	})
	c.Assert(err, qt.IsNil)
	return payload
}

func TestValidateWebhookEvent(t *testing.T) {
	c := qt.New(t)
	client := NewClient(&Config{WebhookSecret: testWebhookSecret})
	payload := webhookPayload(c)

	event, err := client.ValidateWebhookEvent(payload, signPayload(payload, testWebhookSecret, time.Now()))
	c.Assert(err, qt.IsNil)
	c.Assert(event.ID, qt.Equals, "evt_test_1")
	c.Assert(event.Type, qt.Equals, stripeapi.EventTypeCheckoutSessionCompleted)

	var session stripeapi.CheckoutSession
	c.Assert(json.Unmarshal(event.Data.Raw, &session), qt.IsNil)
	c.Assert(session.ID, qt.Equals, "cs_test_1")
	c.Assert(session.Metadata["userId"], qt.Equals, "u1")
}

func TestValidateWebhookEventRejectsBadSignature(t *testing.T) {
	c := qt.New(t)
	client := NewClient(&Config{WebhookSecret: testWebhookSecret})
	payload := webhookPayload(c)

	check := func(header string) {
		_, err := client.ValidateWebhookEvent(payload, header)
		c.Assert(err, qt.Not(qt.IsNil))
		paymentErr, ok := err.(*PaymentError)
		c.Assert(ok, qt.IsTrue)
		c.Assert(paymentErr.Code, qt.Equals, CodeWebhookValidation)
	}

	// signed with the wrong secret
	check(signPayload(payload, "whsec_other_secret", time.Now()))
	// stale timestamp outside the tolerance window
	check(signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour)))
	// garbage header
	check("t=notatimestamp,v1=deadbeef")
	// missing header
	check("")
}

func TestValidateWebhookEventRejectsTamperedPayload(t *testing.T) {
	c := qt.New(t)
	client := NewClient(&Config{WebhookSecret: testWebhookSecret})
	payload := webhookPayload(c)
	header := signPayload(payload, testWebhookSecret, time.Now())

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = 'x'

	_, err := client.ValidateWebhookEvent(tampered, header)
	c.Assert(err, qt.Not(qt.IsNil))
	paymentErr, ok := err.(*PaymentError)
	c.Assert(ok, qt.IsTrue)
	c.Assert(paymentErr.Code, qt.Equals, CodeWebhookValidation)
}
