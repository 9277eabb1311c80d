package anchor

import (
	"testing"
	"time"

	"github.com/anchorkit/anchorkit/failure"
)

func TestSessionStore_NonceLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newSessionStore(func() time.Time { return now })

	sess := s.begin("acme")
	if sess.ID == "" || sess.Attestor != "acme" || !sess.Started.Equal(now) {
		t.Fatalf("session = %+v", sess)
	}

	if err := s.useNonce(sess.ID, "n-1"); err != nil {
		t.Fatalf("useNonce: %v", err)
	}
	wantKind(t, s.useNonce(sess.ID, "n-1"), failure.KindReplayDetected)

	// A different nonce in the same session is fine.
	if err := s.useNonce(sess.ID, "n-2"); err != nil {
		t.Fatalf("useNonce n-2: %v", err)
	}

	if err := s.end(sess.ID); err != nil {
		t.Fatalf("end: %v", err)
	}
	wantKind(t, s.useNonce(sess.ID, "n-3"), failure.KindValidation)
	wantKind(t, s.end(sess.ID), failure.KindValidation)
}

func TestSessionStore_NoncesScopedPerSession(t *testing.T) {
	s := newSessionStore(nil)
	a := s.begin("acme")
	b := s.begin("acme")
	if a.ID == b.ID {
		t.Fatalf("two sessions share an ID")
	}

	if err := s.useNonce(a.ID, "n-1"); err != nil {
		t.Fatalf("useNonce a: %v", err)
	}
	if err := s.useNonce(b.ID, "n-1"); err != nil {
		t.Fatalf("same nonce in another session must work: %v", err)
	}
}

func TestSessionStore_UnknownSession(t *testing.T) {
	s := newSessionStore(nil)
	wantKind(t, s.useNonce("missing", "n-1"), failure.KindValidation)
}
