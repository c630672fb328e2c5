// Package errors provides the coded error values returned by the HTTP API.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the caller's fault
// and return an HTTP Status in the 4xx range.
//
// Error codes 50001-59999 are the server's fault
// and return HTTP Status 500 or 503.
//
// NEVER change any of the current error codes, only append new errors after the
// current last 4XXX or 5XXX. A gap in the sequence means the code was used in
// the past and must not be reused.
var (
	// Caller errors (4xx)
	ErrMalformedBody         = Error{Code: 40001, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid JSON request body")}
	ErrMissingRequiredFields = Error{Code: 40002, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("missing required fields")}
	ErrInvalidSignature      = Error{Code: 40003, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("webhook signature verification failed")}
	ErrMissingEventMetadata  = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("event is missing required metadata")}
	ErrMalformedURLParam     = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid URL parameter")}

	// Server errors (5xx)
	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
	ErrPaymentProviderError       = Error{Code: 50003, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("payment provider request failed")}
)
