package anchor

import (
	"sync"
	"time"

	"github.com/anchorkit/anchorkit/failure"
	"github.com/google/uuid"
)

// Session scopes a sequence of anchor interactions for one attestor.
// Nonces presented within a session are one-time-use.
type Session struct {
	ID       string
	Attestor string
	Started  time.Time
}

type sessionState struct {
	session Session
	nonces  map[string]struct{}
}

type sessionStore struct {
	mu    sync.Mutex
	byID  map[string]*sessionState
	nowFn func() time.Time
}

func newSessionStore(nowFn func() time.Time) *sessionStore {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &sessionStore{
		byID:  make(map[string]*sessionState),
		nowFn: nowFn,
	}
}

func (s *sessionStore) begin(attestor string) Session {
	sess := Session{
		ID:       uuid.NewString(),
		Attestor: attestor,
		Started:  s.nowFn(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sess.ID] = &sessionState{
		session: sess,
		nonces:  make(map[string]struct{}),
	}
	return sess
}

// useNonce consumes nonce within session id. Reusing a nonce is a replay.
func (s *sessionStore) useNonce(id, nonce string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.byID[id]
	if !ok {
		return failure.New(failure.KindValidation, "session", "session not found")
	}
	if _, used := state.nonces[nonce]; used {
		return failure.New(failure.KindReplayDetected, "session", "nonce already used in session")
	}
	state.nonces[nonce] = struct{}{}
	return nil
}

func (s *sessionStore) end(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return failure.New(failure.KindValidation, "session", "session not found")
	}
	delete(s.byID, id)
	return nil
}
