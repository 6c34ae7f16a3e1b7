// Package capture implements the lifecycle of device execution graphs: record
// the work submitted to a command stream once, instantiate the recording into a
// launchable graph, and replay it later with a single launch call.
//
// The Manager is a small state machine over the driver API defined in package
// execgraphs. It holds one optional default recording plus any number of
// annotated recordings keyed by AnnotationID, and owns every graph handle it
// creates until Reset/ResetAnnotated/Finalize.
//
// Error handling follows the usual convention: contract violations and device
// failures during capture or launch panic with a stack trace (see package
// github.com/gomlx/exceptions); the one recoverable condition, replaying a slot
// that holds no recording, is returned as an error wrapping
// ErrMissingAnnotation so callers can fall back to eager execution.
//
// A Manager is not safe for concurrent use: it assumes one logical owner, the
// typical deployment being one Manager (with its own stream) per worker
// goroutine. Capturing additionally requires the process-wide Token, since
// global-mode capture only supports one capturing stream per process.
package capture

import (
	"time"

	"github.com/gomlx/exceptions"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/execgraphs"
)

// ErrMissingAnnotation is returned (wrapped) by Manager.Replay when the
// requested slot holds no captured graph. Callers can check it with
// errors.Is and fall back to eager execution for that call.
var ErrMissingAnnotation = errors.New("no captured execution graph for the requested slot")

// session is the per-cycle record kept between BeginCapture and EndCapture.
type session struct {
	slot  Slot
	id    string
	start time.Time
}

// Manager drives the capture/instantiate/replay/reset lifecycle against one
// command stream. See the package documentation for the ownership and
// concurrency rules.
type Manager struct {
	stream   execgraphs.Stream
	observer Observer

	capturing bool
	session   session

	defaultExec execgraphs.ExecutableGraph
	annotated   map[AnnotationID]execgraphs.ExecutableGraph

	// pendingGraph holds a raw recording whose instantiate step did not run to
	// completion, so Reset/ResetAnnotated can still release it.
	pendingGraph execgraphs.Graph
}

// New creates a Manager operating on the given stream. The stream can be
// replaced later with Bind.
func New(stream execgraphs.Stream) *Manager {
	return &Manager{
		stream:   stream,
		observer: klogObserver{},
	}
}

// WithObserver replaces the default (klog) observer. It returns the Manager, so
// it can be chained with New. Call it before any capture or replay.
func (m *Manager) WithObserver(observer Observer) *Manager {
	m.observer = observer
	return m
}

// Bind replaces the command stream the Manager operates on. It has no effect on
// already-captured graphs; keeping those consistent with the stream they were
// recorded on is the caller's responsibility.
func (m *Manager) Bind(stream execgraphs.Stream) {
	m.stream = stream
}

// BeginCapture synchronizes the stream and opens a capture session recording
// into the given slot. The caller must hold the process-wide capture token.
//
// Preconditions, violations of which panic:
//   - no capture session is already active on this Manager;
//   - slot is not the SkipCapture sentinel;
//   - for the default slot, no default recording is currently held (recapturing
//     the default requires an explicit Reset first). Annotated slots have no such
//     requirement: recapturing an annotation overwrites its previous recording
//     once EndCapture completes.
//
// Device errors while synchronizing or opening the capture are fatal: the
// driver state is not assumed safe to continue capturing.
func (m *Manager) BeginCapture(token *Token, slot Slot) {
	if !token.Held() {
		exceptions.Panicf("BeginCapture(%s): the process-wide capture token must be held", slot)
	}
	if m.capturing {
		exceptions.Panicf("BeginCapture(%s): a capture session (%s, into %s) is already active -- it must be ended first",
			slot, m.session.id, m.session.slot)
	}
	if !m.CaptureAllowed(slot) {
		exceptions.Panicf("BeginCapture(%s): capture is disallowed for the SkipCapture sentinel annotation", slot)
	}
	if !slot.IsAnnotated() && m.defaultExec != nil {
		exceptions.Panicf("BeginCapture(%s): a default execution graph is already held; call Reset before recapturing the default slot", slot)
	}

	// Drain previously queued work so the recording starts from a clean,
	// deterministic point.
	if err := m.stream.Synchronize(); err != nil {
		panic(errors.WithMessagef(err, "BeginCapture(%s): synchronizing stream before capture", slot))
	}
	if err := m.stream.BeginCapture(execgraphs.CaptureModeGlobal); err != nil {
		panic(errors.WithMessagef(err, "BeginCapture(%s): opening stream capture", slot))
	}
	m.capturing = true
	m.session = session{
		slot:  slot,
		id:    uuid.NewString(),
		start: time.Now(),
	}
	m.observer.OnCaptureStarted(CaptureStarted{Session: m.session.id, Slot: slot})
}

// EndCapture closes the active capture session, instantiates the recording and
// stores the resulting executable graph into the slot chosen at BeginCapture.
// The raw recording is destroyed immediately after instantiation, on success
// and on failure alike.
//
// Whatever the outcome, the Manager returns to the idle state: the stream
// capture is closed either way, so there is no session left to resume. Calling
// EndCapture without an active session panics, as do device errors during close
// or instantiation and a nil recording returned by the driver.
func (m *Manager) EndCapture() {
	if !m.capturing {
		exceptions.Panicf("EndCapture: no capture session is active")
	}
	sess := m.session
	m.capturing = false

	graph, err := m.stream.EndCapture()
	if err != nil {
		panic(errors.WithMessagef(err, "EndCapture(%s): closing stream capture (session %s)", sess.slot, sess.id))
	}
	if graph == nil {
		exceptions.Panicf("EndCapture(%s): driver returned a nil graph (session %s) -- no usable work was recorded or the driver failed silently",
			sess.slot, sess.id)
	}

	// The raw recording never outlives instantiation. pendingGraph keeps it
	// reachable for Reset in case Instantiate panics inside the driver.
	m.pendingGraph = graph
	exec, instErr := graph.Instantiate()
	destroyErr := graph.Destroy()
	m.pendingGraph = nil
	if instErr != nil {
		panic(errors.WithMessagef(instErr, "EndCapture(%s): instantiating captured graph (session %s)", sess.slot, sess.id))
	}
	if destroyErr != nil {
		panic(errors.WithMessagef(destroyErr, "EndCapture(%s): destroying raw graph after instantiation (session %s)", sess.slot, sess.id))
	}

	if sess.slot.IsAnnotated() {
		id := sess.slot.Annotation()
		if prev, found := m.annotated[id]; found {
			// Recapture of the same annotation: release the recording it replaces.
			if err := prev.Destroy(); err != nil {
				panic(errors.WithMessagef(err, "EndCapture(%s): destroying overwritten executable graph", sess.slot))
			}
		}
		if m.annotated == nil {
			m.annotated = make(map[AnnotationID]execgraphs.ExecutableGraph)
		}
		m.annotated[id] = exec
	} else {
		m.defaultExec = exec
	}
	m.observer.OnCaptureEnded(CaptureEnded{
		Session:  sess.id,
		Slot:     sess.slot,
		Duration: time.Since(sess.start),
	})
}

// Replay launches the executable graph held in the given slot on the bound
// stream and blocks until it has fully finished executing on the device.
//
// If the slot holds no recording -- the annotation was never captured, or the
// default slot is empty or was Reset -- Replay returns an error wrapping
// ErrMissingAnnotation; the caller can recover by executing eagerly. Device
// errors during launch or synchronization are fatal and panic.
func (m *Manager) Replay(slot Slot) error {
	var exec execgraphs.ExecutableGraph
	if slot.IsAnnotated() {
		exec = m.annotated[slot.Annotation()]
		if exec == nil {
			return errors.WithMessagef(ErrMissingAnnotation, "Replay(%s)", slot)
		}
	} else {
		if m.defaultExec == nil {
			return errors.WithMessagef(ErrMissingAnnotation, "Replay(%s)", slot)
		}
		exec = m.defaultExec
	}

	start := time.Now()
	if err := exec.Launch(m.stream); err != nil {
		panic(errors.WithMessagef(err, "Replay(%s): launching executable graph", slot))
	}
	if err := m.stream.Synchronize(); err != nil {
		panic(errors.WithMessagef(err, "Replay(%s): waiting for replay to finish", slot))
	}
	m.observer.OnReplayed(Replayed{Slot: slot, Duration: time.Since(start)})
	return nil
}

// HasAnnotatedCaptures reports whether at least one annotated recording is
// held. Callers use it to branch between capture and replay strategies.
func (m *Manager) HasAnnotatedCaptures() bool {
	return len(m.annotated) > 0
}

// CaptureAllowed reports whether capture may be attempted for the given slot.
// It is false only for the SkipCapture sentinel annotation; callers are
// expected to consult it before BeginCapture/Replay for a variant.
func (m *Manager) CaptureAllowed(slot Slot) bool {
	return !slot.IsAnnotated() || slot.Annotation() != SkipCapture
}

// destroyPending releases a raw recording left over from an EndCapture that did
// not complete. No-op in the common case.
func (m *Manager) destroyPending() {
	if m.pendingGraph == nil {
		return
	}
	if err := m.pendingGraph.Destroy(); err != nil {
		klog.Warningf("Failure while destroying leftover raw graph: %+v", err)
	}
	m.pendingGraph = nil
}

// Reset releases the default-slot executable graph, if any, returning the slot
// to empty so the default can be recaptured. Idempotent and safe to call when
// nothing is held. Annotated recordings are not touched, see ResetAnnotated.
func (m *Manager) Reset() {
	m.destroyPending()
	if m.defaultExec == nil {
		return
	}
	if err := m.defaultExec.Destroy(); err != nil {
		klog.Warningf("Failure while destroying default executable graph: %+v", err)
	}
	m.defaultExec = nil
}

// ResetAnnotated releases every annotated executable graph and clears the
// annotation map. Idempotent.
func (m *Manager) ResetAnnotated() {
	m.destroyPending()
	for id, exec := range m.annotated {
		if err := exec.Destroy(); err != nil {
			klog.Warningf("Failure while destroying executable graph for annotation %d: %+v", id, err)
		}
	}
	clear(m.annotated)
}

// Finalize releases every graph resource the Manager holds, default and
// annotated alike. Safe to call more than once. The Manager remains usable for
// new captures afterward, but the usual pattern is to discard it.
func (m *Manager) Finalize() {
	m.Reset()
	m.ResetAnnotated()
}
