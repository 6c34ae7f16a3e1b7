package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlot(t *testing.T) {
	assert.False(t, DefaultSlot().IsAnnotated())
	assert.Equal(t, "default slot", DefaultSlot().String())

	s := Annotated(3)
	assert.True(t, s.IsAnnotated())
	assert.Equal(t, AnnotationID(3), s.Annotation())
	assert.Equal(t, "annotation 3", s.String())

	// The zero value is the default slot, and slots compare by value.
	var zero Slot
	assert.Equal(t, DefaultSlot(), zero)
	assert.NotEqual(t, DefaultSlot(), Annotated(0))
	assert.Equal(t, Annotated(3), s)
}

func TestSkipCaptureIsNotARealKey(t *testing.T) {
	// The sentinel must stay distinct from any annotation a caller would assign:
	// callers use non-negative identifiers.
	assert.Less(t, int64(SkipCapture), int64(0))
}
