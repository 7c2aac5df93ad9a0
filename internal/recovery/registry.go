// Package recovery holds the in-process one-time password-reset codes.
// Entries live only for the life of the process; a restart drops all pending
// resets, and a multi-instance deployment would fragment them. Single
// instance is an accepted deployment constraint.
package recovery

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/tigersos/tigersos-api/internal/domain"
)

type entry struct {
	code    string
	expires time.Time
}

// Registry maps an email to its pending recovery code. One live entry per
// email; a new request overwrites the previous one.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	now func() time.Time // test hook
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Request issues a fresh 6-digit code for the email, replacing any pending
// entry, and returns the code together with its expiry. The code must only
// ever reach the user through the mailer, never an HTTP response.
func (r *Registry) Request(email string) (string, time.Time) {
	code := generateCode()

	r.mu.Lock()
	defer r.mu.Unlock()

	exp := r.now().Add(r.ttl)
	r.entries[email] = entry{code: code, expires: exp}
	return code, exp
}

// Verify checks the presented code without consuming it. A mismatch leaves
// the entry in place so the caller may retry within the window. Reading an
// entry past its expiry evicts it; the caller must request a new code.
// On success the caller persists the new password and then calls Delete.
func (r *Registry) Verify(email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[email]
	if !ok {
		return domain.ErrInvalidCode
	}
	if r.now().After(e.expires) {
		delete(r.entries, email)
		return domain.ErrExpiredCode
	}
	if e.code != code {
		return domain.ErrInvalidCode
	}
	return nil
}

// Delete removes the pending entry, ending the reset flow for the email.
func (r *Registry) Delete(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, email)
}

// Pending reports whether an unexpired entry exists for the email.
func (r *Registry) Pending(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[email]
	if !ok {
		return false
	}
	if r.now().After(e.expires) {
		delete(r.entries, email)
		return false
	}
	return true
}

// generateCode draws a uniformly random 6-digit code in [100000, 999999].
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%900000+100000)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
