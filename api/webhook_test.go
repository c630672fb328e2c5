package api

import (
	"encoding/json"
	"net/http"
	"testing"

	qt "github.com/frankban/quicktest"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/kursio/backend/errors"
)

// webhookEventPayload builds a raw event body the way the payment provider
// delivers it.
func webhookEventPayload(eventType string) []byte {
	return mustMarshal(map[string]any{
		"id":          "evt_test_" + eventType,
		"api_version": stripeapi.APIVersion,
		"type":        eventType,
		"data": map[string]any{
			"object": map[string]any{
				"id":       "cs_test_1",
				"metadata": map[string]string{"userId": "user_webhook_test"},
			},
		},
	})
}

func TestWebhookMissingSignature(t *testing.T) {
	c := qt.New(t)

	status, body := doRequest(t, http.MethodPost, webhookEndpoint, webhookEventPayload("checkout.session.completed"), nil)
	c.Assert(status, qt.Equals, http.StatusBadRequest)

	var errResp errorResponse
	c.Assert(json.Unmarshal(body, &errResp), qt.IsNil)
	c.Assert(errResp.Code, qt.Equals, errors.ErrInvalidSignature.Code)
}

func TestWebhookInvalidSignature(t *testing.T) {
	c := qt.New(t)
	defer func() {
		if err := testDB.Reset(); err != nil {
			t.Errorf("failed to reset the database: %v", err)
		}
	}()

	payload := webhookEventPayload("checkout.session.completed")
	headers := map[string]string{"Stripe-Signature": signPayload(payload, "whsec_other_secret")}

	status, body := doRequest(t, http.MethodPost, webhookEndpoint, payload, headers)
	c.Assert(status, qt.Equals, http.StatusBadRequest)

	var errResp errorResponse
	c.Assert(json.Unmarshal(body, &errResp), qt.IsNil)
	c.Assert(errResp.Code, qt.Equals, errors.ErrInvalidSignature.Code)

	// a rejected delivery must leave no trace in the database
	_, err := testDB.User("user_webhook_test")
	c.Assert(err, qt.Not(qt.IsNil))
	enrollments, err := testDB.UserEnrollments("user_webhook_test")
	c.Assert(err, qt.IsNil)
	c.Assert(enrollments, qt.HasLen, 0)
}

func TestWebhookUnhandledEventType(t *testing.T) {
	c := qt.New(t)

	// a correctly signed event of an unhandled type is acknowledged without
	// side effects
	payload := webhookEventPayload("invoice.created")
	headers := map[string]string{"Stripe-Signature": signPayload(payload, testWebhookSecret)}

	status, body := doRequest(t, http.MethodPost, webhookEndpoint, payload, headers)
	c.Assert(status, qt.Equals, http.StatusOK)

	var ack WebhookResponse
	c.Assert(json.Unmarshal(body, &ack), qt.IsNil)
	c.Assert(ack.Received, qt.IsTrue)
}

func TestWebhookCompletedSessionMissingUser(t *testing.T) {
	c := qt.New(t)

	// a completed session without the user metadata is rejected before any
	// provider call or database write
	payload := mustMarshal(map[string]any{
		"id":          "evt_test_no_user",
		"api_version": stripeapi.APIVersion,
		"type":        "checkout.session.completed",
		"data": map[string]any{
			"object": map[string]any{"id": "cs_test_no_user"},
		},
	})
	headers := map[string]string{"Stripe-Signature": signPayload(payload, testWebhookSecret)}

	status, body := doRequest(t, http.MethodPost, webhookEndpoint, payload, headers)
	c.Assert(status, qt.Equals, http.StatusBadRequest)

	var errResp errorResponse
	c.Assert(json.Unmarshal(body, &errResp), qt.IsNil)
	c.Assert(errResp.Code, qt.Equals, errors.ErrMissingEventMetadata.Code)
}
