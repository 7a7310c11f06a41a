// Package auth implements the shared-secret login gate. There is exactly one
// credential and one implicit role; the authenticated flag lives in memory
// only and resets on restart.
package auth

import "sync"

// CredentialPolicy decides whether a submitted secret grants admin access.
// Keeping the comparison behind this interface lets the gate swap in a real
// credential store without touching callers.
type CredentialPolicy interface {
	Check(secret string) bool
}

// StaticSecret grants access on exact equality with one fixed value.
type StaticSecret string

func (s StaticSecret) Check(secret string) bool {
	return secret == string(s)
}

// Gate holds the single volatile authenticated flag for the session.
type Gate struct {
	mu            sync.Mutex
	policy        CredentialPolicy
	authenticated bool
}

func NewGate(policy CredentialPolicy) *Gate {
	return &Gate{policy: policy}
}

// Authenticate checks the secret and opens the gate on success. A wrong
// secret leaves the gate exactly as it was: no lockout, no attempt counter.
func (g *Gate) Authenticate(secret string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.policy.Check(secret) {
		return false
	}
	g.authenticated = true
	return true
}

// Logout closes the gate.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authenticated = false
}

// IsAuthenticated reports whether the admin session is open.
func (g *Gate) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}
