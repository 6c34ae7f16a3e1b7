package capture

import (
	"sync"

	"github.com/gomlx/exceptions"
)

// Global-mode capture observes all stream activity process-wide, so the driver
// only supports one capturing stream at a time, whichever Manager it belongs to.
// The Token makes that constraint part of the API instead of an implicit
// driver-level serialization: a caller must hold the (unique) token across each
// BeginCapture/EndCapture pair.
var captureGate sync.Mutex

// Token is the process-wide right to capture. At most one Token is held at any
// moment; while held, no other caller can begin a capture on any stream.
//
// Replays of already-instantiated graphs never need the token.
type Token struct {
	held bool
}

// AcquireToken blocks until no other capture token is held, then returns a held
// Token. Release it after EndCapture.
func AcquireToken() *Token {
	captureGate.Lock()
	return &Token{held: true}
}

// Held reports whether the token still grants the right to capture.
func (t *Token) Held() bool { return t != nil && t.held }

// Release gives up the capture right, unblocking the next AcquireToken caller.
// Releasing an already-released token is a contract violation and panics.
func (t *Token) Release() {
	if !t.Held() {
		exceptions.Panicf("capture.Token.Release: token is not held -- already released?")
	}
	t.held = false
	captureGate.Unlock()
}
