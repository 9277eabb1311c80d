package anchor

import (
	"crypto/sha256"
	"sync"

	"github.com/anchorkit/anchorkit/failure"
)

// replayGuard remembers payload hashes of accepted attestations so a
// replayed payload is rejected before any network call.
type replayGuard struct {
	mu   sync.Mutex
	seen map[[sha256.Size]byte]struct{}
}

func newReplayGuard() *replayGuard {
	return &replayGuard{seen: make(map[[sha256.Size]byte]struct{})}
}

func (g *replayGuard) check(hash [sha256.Size]byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seen[hash]; ok {
		return failure.New(failure.KindReplayDetected, "submit_attestation", "payload hash already used")
	}
	return nil
}

func (g *replayGuard) mark(hash [sha256.Size]byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seen[hash] = struct{}{}
}
