// Package identity carries the authenticated caller through service calls.
// The caller is always passed explicitly; there is no ambient session state.
package identity

// Caller is the identity the external identity provider authenticated.
// The zero value means unauthenticated.
type Caller struct {
	UserID uint
}

// Anonymous is the unauthenticated caller.
var Anonymous = Caller{}

func (c Caller) Authenticated() bool {
	return c.UserID != 0
}
