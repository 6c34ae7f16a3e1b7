package capture

import "fmt"

// AnnotationID is a caller-assigned key distinguishing multiple concurrently-held
// graph variants of one model -- different control-flow branches, cache states,
// etc. Identifiers must be stable across the begin/end/replay calls referring to
// the same logical variant.
type AnnotationID int64

// SkipCapture is the reserved annotation meaning "graph capture is disallowed for
// this variant". It is a policy signal, never a real graph key:
// Manager.CaptureAllowed returns false for it and BeginCapture rejects it.
const SkipCapture AnnotationID = -1

// Slot identifies where a capture session records to, and which recording a
// replay launches: either the single default slot or an annotated slot keyed by
// an AnnotationID. The choice is resolved once, at BeginCapture, and carried
// through to EndCapture, so the two storage slots can never be written
// inconsistently.
//
// The zero value is the default slot.
type Slot struct {
	annotated bool
	id        AnnotationID
}

// DefaultSlot returns the Slot for the single, annotation-less recording.
func DefaultSlot() Slot { return Slot{} }

// Annotated returns the Slot for the graph variant keyed by id.
func Annotated(id AnnotationID) Slot { return Slot{annotated: true, id: id} }

// IsAnnotated reports whether s refers to an annotated slot, as opposed to the
// default slot.
func (s Slot) IsAnnotated() bool { return s.annotated }

// Annotation returns the AnnotationID of an annotated slot. It is only
// meaningful if IsAnnotated is true.
func (s Slot) Annotation() AnnotationID { return s.id }

// String implements fmt.Stringer.
func (s Slot) String() string {
	if !s.annotated {
		return "default slot"
	}
	return fmt.Sprintf("annotation %d", s.id)
}
