package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenExclusion(t *testing.T) {
	token := AcquireToken()
	require.True(t, token.Held())

	acquired := make(chan *Token)
	go func() {
		acquired <- AcquireToken()
	}()

	select {
	case <-acquired:
		t.Fatal("second AcquireToken succeeded while the first token was still held")
	case <-time.After(50 * time.Millisecond):
		// Still blocked, as it must be.
	}

	token.Release()
	assert.False(t, token.Held())

	second := <-acquired
	require.True(t, second.Held())
	second.Release()
}

func TestTokenDoubleReleasePanics(t *testing.T) {
	token := AcquireToken()
	token.Release()
	require.Panics(t, func() { token.Release() })

	var nilToken *Token
	assert.False(t, nilToken.Held())
	require.Panics(t, func() { nilToken.Release() })
}
