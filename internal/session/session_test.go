package session

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "a-test-secret-that-is-long-enough"

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, ttl)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, expiresAt, err := m.Issue(42, "frodo@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute {
		t.Errorf("expiry too soon: %v remaining", remaining)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.MemberID != 42 {
		t.Errorf("member id = %d, want 42", claims.MemberID)
	}
	if claims.Email != "frodo@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "frodo@example.com")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := newTestManager(t, time.Hour)
	m.ttl = -time.Minute

	token, _, err := m.Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.Verify(token); err != ErrInvalidToken {
		t.Errorf("verify expired = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, _, err := m.Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.Verify(tampered); err != ErrInvalidToken {
		t.Errorf("verify tampered = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := newTestManager(t, time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); err != ErrInvalidToken {
			t.Errorf("verify %q = %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other, err := NewManager("a-completely-different-secret-key", time.Hour)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	token, _, err := other.Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.Verify(token); err != ErrInvalidToken {
		t.Errorf("verify foreign token = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshSlidesExpiry(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, firstExpiry, err := m.Issue(7, "b@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	refreshed, secondExpiry, err := m.Refresh(token)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !secondExpiry.After(firstExpiry) {
		t.Errorf("refreshed expiry %v not after original %v", secondExpiry, firstExpiry)
	}

	claims, err := m.Verify(refreshed)
	if err != nil {
		t.Fatalf("verify refreshed: %v", err)
	}
	if claims.MemberID != 7 {
		t.Errorf("member id = %d, want 7", claims.MemberID)
	}

	// Refreshing twice in quick succession is not an error; both results
	// remain valid tokens.
	again, _, err := m.Refresh(token)
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if _, err := m.Verify(again); err != nil {
		t.Errorf("verify second refresh: %v", err)
	}
}

func TestRefreshInvalidToken(t *testing.T) {
	m := newTestManager(t, time.Hour)

	if _, _, err := m.Refresh("bogus"); err != ErrInvalidToken {
		t.Errorf("refresh bogus = %v, want ErrInvalidToken", err)
	}
}

func TestDefaultTTLApplied(t *testing.T) {
	m := newTestManager(t, 0)
	if m.TTL() != DefaultTTL {
		t.Errorf("ttl = %v, want %v", m.TTL(), DefaultTTL)
	}
}
