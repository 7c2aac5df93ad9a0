package recovery

import (
	"errors"
	"testing"
	"time"

	"github.com/tigersos/tigersos-api/internal/domain"
)

func TestRequest_CodeFormat(t *testing.T) {
	r := NewRegistry(15 * time.Minute)

	for i := 0; i < 50; i++ {
		code, _ := r.Request("a0000000001@alumno.uttehuacan.edu.mx")
		if len(code) != 6 {
			t.Fatalf("Expected 6-digit code, got %q", code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("Expected digits only, got %q", code)
			}
		}
		if code[0] == '0' {
			t.Fatalf("Expected code in [100000, 999999], got %q", code)
		}
	}
}

func TestRequest_ExpiryMatchesTTL(t *testing.T) {
	r := NewRegistry(15 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	_, expires := r.Request("x@example.com")
	if !expires.Equal(base.Add(15 * time.Minute)) {
		t.Fatalf("Expected expiry at %v, got %v", base.Add(15*time.Minute), expires)
	}
}

func TestVerify_Success_KeepsEntry(t *testing.T) {
	r := NewRegistry(15 * time.Minute)
	email := "x@example.com"
	code, _ := r.Request(email)

	if err := r.Verify(email, code); err != nil {
		t.Fatalf("Expected valid code, got %v", err)
	}
	// Verify does not consume; a second check still passes
	if err := r.Verify(email, code); err != nil {
		t.Fatalf("Expected code to survive verification, got %v", err)
	}
	if !r.Pending(email) {
		t.Fatal("Expected entry to remain pending after verify")
	}
}

func TestVerify_WrongCode(t *testing.T) {
	r := NewRegistry(15 * time.Minute)
	email := "x@example.com"
	code, _ := r.Request(email)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := r.Verify(email, wrong); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("Expected ErrInvalidCode, got %v", err)
	}
	// A mismatch must not evict the entry
	if err := r.Verify(email, code); err != nil {
		t.Fatalf("Expected correct code to still work, got %v", err)
	}
}

func TestVerify_UnknownEmail(t *testing.T) {
	r := NewRegistry(15 * time.Minute)

	if err := r.Verify("nobody@example.com", "123456"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("Expected ErrInvalidCode, got %v", err)
	}
}

func TestVerify_Expired_Evicts(t *testing.T) {
	r := NewRegistry(15 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	r.now = func() time.Time { return now }

	email := "x@example.com"
	code, _ := r.Request(email)

	now = base.Add(15*time.Minute + time.Second)
	if err := r.Verify(email, code); !errors.Is(err, domain.ErrExpiredCode) {
		t.Fatalf("Expected ErrExpiredCode, got %v", err)
	}

	// Expired entry is gone; retrying reports invalid, not expired
	if err := r.Verify(email, code); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("Expected ErrInvalidCode after eviction, got %v", err)
	}
}

func TestRequest_OverwritesPrevious(t *testing.T) {
	r := NewRegistry(15 * time.Minute)
	email := "x@example.com"

	first, _ := r.Request(email)
	second, _ := r.Request(email)
	if first == second {
		// Possible but astronomically unlikely; re-request once
		second, _ = r.Request(email)
	}

	if err := r.Verify(email, first); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("Expected old code to be invalid, got %v", err)
	}
	if err := r.Verify(email, second); err != nil {
		t.Fatalf("Expected new code to be valid, got %v", err)
	}
}

func TestDelete_EndsFlow(t *testing.T) {
	r := NewRegistry(15 * time.Minute)
	email := "x@example.com"
	code, _ := r.Request(email)

	r.Delete(email)

	if r.Pending(email) {
		t.Fatal("Expected no pending entry after delete")
	}
	if err := r.Verify(email, code); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("Expected ErrInvalidCode after delete, got %v", err)
	}
}
