package payments

import (
	"fmt"
)

// PaymentError represents a payments-specific error with a stable code the
// HTTP layer can map to a status.
type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payments error [%s]: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("payments error [%s]: %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// Error codes used across the package. "webhook_validation" and
// "missing_metadata" are the caller's (or sender's) fault and map to client
// error statuses; the rest are upstream or internal failures.
const (
	CodeWebhookValidation = "webhook_validation"
	CodeInvalidEvent      = "invalid_event"
	CodeMissingMetadata   = "missing_metadata"
	CodeAPICallFailed     = "api_call_failed"
)

// NewPaymentError creates a new PaymentError with the given code, message
// and underlying error.
func NewPaymentError(code, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
