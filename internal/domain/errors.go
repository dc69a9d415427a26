package domain

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/status"
)

// The four error kinds every tool call can end with. All of them are terminal
// for the triggering call: no retries happen below the MCP boundary.

// ValidationError reports a malformed, missing, or contradictory input
// parameter. The upstream API is never called when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// AuthorizationError reports a request targeting an account other than the
// single configured one. The upstream API is never called when one is returned.
type AuthorizationError struct {
	AccountID string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization: account %q is not the configured account", e.AccountID)
}

// UpstreamError wraps a failure reported by the brokerage API. The gRPC status
// detail is preserved so the caller sees what the exchange/broker said.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	if st, ok := status.FromError(e.Err); ok {
		return fmt.Sprintf("upstream: %s: %s (%s)", e.Op, st.Message(), st.Code())
	}
	return fmt.Sprintf("upstream: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func Upstream(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

// ConfigurationError reports missing or invalid process configuration. It is
// fatal at startup; no tool is ever served with a broken configuration.
type ConfigurationError struct {
	Var    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Var, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
