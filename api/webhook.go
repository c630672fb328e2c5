package api

import (
	"io"
	"net/http"

	"github.com/kursio/backend/errors"
	"github.com/kursio/backend/payments"
	"go.vocdoni.io/dvote/log"
)

// WebhookResponse acknowledges a processed webhook delivery.
type WebhookResponse struct {
	Received bool `json:"received"`
}

// handleWebhook handles the incoming webhook events from the payment
// provider. The signature is verified before anything else; a completed
// checkout session is reconciled into course enrollments. Reconciliation
// problems that retrying cannot fix are still acknowledged with 200 so the
// provider does not redeliver them forever.
func (a *API) handleWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Warnw("payments webhook: failed to read request body", "error", err)
		errors.ErrMalformedBody.Write(w)
		return
	}

	signatureHeader := r.Header.Get("Stripe-Signature")
	if signatureHeader == "" {
		errors.ErrInvalidSignature.With("missing Stripe-Signature header").Write(w)
		return
	}

	if err := a.payments.HandleWebhookEvent(payload, signatureHeader); err != nil {
		if paymentErr, ok := err.(*payments.PaymentError); ok {
			switch paymentErr.Code {
			case payments.CodeWebhookValidation:
				errors.ErrInvalidSignature.WithErr(paymentErr).Write(w)
			case payments.CodeMissingMetadata:
				errors.ErrMissingEventMetadata.WithErr(paymentErr).Write(w)
			case payments.CodeInvalidEvent:
				errors.ErrMalformedBody.WithErr(paymentErr).Write(w)
			default:
				errors.ErrPaymentProviderError.WithErr(paymentErr).Write(w)
			}
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}

	httpWriteJSON(w, &WebhookResponse{Received: true})
}
