// Package guard holds the single-account safety gate. Exactly one brokerage
// account is allowed per process; every account-scoped request resolves its
// target through the gate before anything is sent upstream.
package guard

import (
	"tinvest-mcp/internal/domain"
)

type AccountGate struct {
	allowed string
}

func New(accountID string) *AccountGate {
	return &AccountGate{allowed: accountID}
}

// Resolve returns the account id an upstream request may use. An empty
// requested id means "the configured account". Any other id is rejected with
// an AuthorizationError; the caller must not reach the upstream API.
func (g *AccountGate) Resolve(requested string) (string, error) {
	if requested == "" || requested == g.allowed {
		return g.allowed, nil
	}
	return "", &domain.AuthorizationError{AccountID: requested}
}

// AccountID exposes the configured id for logging and response assembly.
func (g *AccountGate) AccountID() string { return g.allowed }
