package types

import "github.com/m-mizutani/goerr/v2"

// ControlScope declares what kind of assessment a control applies to
type ControlScope string

const (
	ScopeOrg     ControlScope = "ORG"
	ScopeProduct ControlScope = "PRODUCT"
	ScopeBoth    ControlScope = "BOTH"
)

// Validate checks if the ControlScope is valid
func (s ControlScope) Validate() error {
	switch s {
	case ScopeOrg, ScopeProduct, ScopeBoth:
		return nil
	}
	return goerr.New("invalid control scope", goerr.V("scope", s))
}

// Matches reports whether a control with scope s applies to a query for
// the requested scope. A BOTH control matches either side; a BOTH query
// matches every control.
func (s ControlScope) Matches(requested ControlScope) bool {
	if s == ScopeBoth || requested == ScopeBoth {
		return true
	}
	return s == requested
}

// String returns the string representation of ControlScope
func (s ControlScope) String() string {
	return string(s)
}
