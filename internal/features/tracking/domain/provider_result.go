package domain

import (
	"encoding/json"
	"fmt"
)

// FailureReason classifies why a provider lookup produced no usable package data.
type FailureReason string

const (
	// FailureTimeout indicates the provider did not answer within the per-call timeout.
	FailureTimeout FailureReason = "timeout"
	// FailureHTTPStatus indicates the provider answered with a non-2xx status.
	FailureHTTPStatus FailureReason = "http_status"
	// FailureTransport indicates a network-level error (DNS, refused, reset).
	FailureTransport FailureReason = "transport_error"
	// FailureMalformed indicates the body was not valid JSON.
	FailureMalformed FailureReason = "malformed_response"
	// FailureNoData indicates a JSON body that is empty or carries an error marker.
	FailureNoData FailureReason = "no_data"
)

// Failure describes an unsuccessful provider lookup.
type Failure struct {
	// Reason is the failure class.
	Reason FailureReason
	// StatusCode is the upstream HTTP status for FailureHTTPStatus, zero otherwise.
	StatusCode int
	// Message is a diagnostic message, e.g. the transport error text.
	Message string
}

// Error implements error so a Failure can be logged or wrapped.
func (f Failure) Error() string {
	if f.Message != "" {
		return fmt.Sprintf("%s: %s", f.Reason, f.Message)
	}
	return string(f.Reason)
}

// ProviderResult is the outcome of one provider lookup: either a payload or a Failure.
// The zero value is a no_data failure.
type ProviderResult struct {
	payload json.RawMessage
	failure Failure
}

// Success returns a successful result holding payload.
func Success(payload json.RawMessage) ProviderResult {
	return ProviderResult{payload: payload}
}

// Fail returns a failed result.
func Fail(f Failure) ProviderResult {
	return ProviderResult{failure: f}
}

// OK reports whether the lookup returned usable package data.
func (r ProviderResult) OK() bool {
	return r.payload != nil
}

// Payload returns the raw provider JSON, nil for failures.
func (r ProviderResult) Payload() json.RawMessage {
	return r.payload
}

// Failure returns the failure details. It is only meaningful when OK is false.
func (r ProviderResult) Failure() Failure {
	if r.OK() {
		return Failure{}
	}
	if r.failure.Reason == "" {
		return Failure{Reason: FailureNoData}
	}
	return r.failure
}
