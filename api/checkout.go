package api

import (
	"encoding/json"
	"net/http"

	"github.com/kursio/backend/errors"
	"github.com/kursio/backend/payments"
)

// FlexibleID is an identifier that accepts both JSON strings and JSON
// numbers, since frontend clients send the course identifier either way.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// CheckoutRequest is the request to create a new payment checkout session.
// All fields are required.
type CheckoutRequest struct {
	UserID   string     `json:"userId"`
	Email    string     `json:"email"`
	CourseID FlexibleID `json:"courseId"`
	PriceID  string     `json:"priceId"`
}

// CheckoutResponse carries the identifier of the created checkout session,
// which the frontend uses to redirect the customer to the payment page.
type CheckoutResponse struct {
	ID string `json:"id"`
}

// createCheckoutSessionHandler handles requests to create a new payment
// checkout session for a course purchase. No local state is mutated; the
// purchase only becomes an enrollment when the completed event arrives on
// the webhook.
func (a *API) createCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	checkout := &CheckoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(checkout); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if checkout.UserID == "" || checkout.Email == "" || checkout.CourseID == "" || checkout.PriceID == "" {
		errors.ErrMissingRequiredFields.Withf("userId, email, courseId and priceId are required").Write(w)
		return
	}

	session, err := a.payments.CreateCheckoutSession(&payments.CheckoutSessionParams{
		UserID:   checkout.UserID,
		Email:    checkout.Email,
		CourseID: string(checkout.CourseID),
		PriceID:  checkout.PriceID,
	})
	if err != nil {
		errors.ErrPaymentProviderError.Withf("cannot create session: %v", err).Write(w)
		return
	}

	httpWriteJSON(w, &CheckoutResponse{ID: session.ID})
}
