package simdriver

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/gomlx/execgraphs"
)

// Global-mode capture serializes process-wide: at most one stream, across all
// simulated drivers, may be capturing. Mirrors the driver-level behavior that
// capture.Token makes explicit at the API level.
var (
	captureOwnerMu sync.Mutex
	captureOwner   *Stream
)

// workItem is one unit of device work: a host-visible side effect plus a name
// recorded on the stream history.
type workItem struct {
	name string
	fn   func()
}

// Stream is an ordered queue of simulated device work.
//
// The simulation is synchronous: while idle, work runs at enqueue time, so
// Synchronize never has anything left to wait for; it still counts its calls so
// tests can assert the capture lifecycle fences where it must.
//
// A Stream is not safe for concurrent use, matching the execgraphs.Stream
// contract.
type Stream struct {
	driver *Driver
	id     int64

	capturing bool
	recording []workItem

	history   []string
	syncCount int

	failNextEndCapture bool
}

var _ execgraphs.Stream = (*Stream)(nil)

// Do submits one work item to the stream: executed immediately when the stream
// is idle, recorded into the open capture otherwise. This is the entry point
// operator builders use to enqueue kernels.
func (s *Stream) Do(name string, fn func()) {
	if s.capturing {
		s.recording = append(s.recording, workItem{name: name, fn: fn})
		return
	}
	fn()
	s.history = append(s.history, name)
}

// Synchronize blocks until all queued work completed. See Stream on why this is
// a no-op beyond bookkeeping for the simulated driver.
func (s *Stream) Synchronize() error {
	s.syncCount++
	return nil
}

// SyncCount returns how many times the stream was synchronized.
func (s *Stream) SyncCount() int { return s.syncCount }

// History returns the names of all work items executed (not recorded) on the
// stream, in execution order.
func (s *Stream) History() []string { return s.history }

// ClearHistory empties the executed-work history, so a test can observe just
// the work of the next replay.
func (s *Stream) ClearHistory() { s.history = nil }

// BeginCapture switches the stream into capture mode.
//
// Only execgraphs.CaptureModeGlobal is supported, and only for one stream at a
// time process-wide.
func (s *Stream) BeginCapture(mode execgraphs.CaptureMode) error {
	if mode != execgraphs.CaptureModeGlobal {
		return errors.Errorf("%q driver: capture mode %s is not supported, only %s",
			DriverName, mode, execgraphs.CaptureModeGlobal)
	}
	if s.capturing {
		return errors.Errorf("%q driver: stream #%d is already capturing", DriverName, s.id)
	}
	captureOwnerMu.Lock()
	defer captureOwnerMu.Unlock()
	if captureOwner != nil {
		return errors.Errorf("%q driver: stream #%d is already capturing in global mode, stream #%d cannot start",
			DriverName, captureOwner.id, s.id)
	}
	captureOwner = s
	s.capturing = true
	s.recording = nil
	return nil
}

// EndCapture closes the open capture and returns the recorded Graph. A capture
// of zero work items still yields a valid, empty graph.
func (s *Stream) EndCapture() (execgraphs.Graph, error) {
	if !s.capturing {
		return nil, errors.Errorf("%q driver: stream #%d is not capturing", DriverName, s.id)
	}
	captureOwnerMu.Lock()
	captureOwner = nil
	captureOwnerMu.Unlock()
	s.capturing = false
	items := s.recording
	s.recording = nil

	if s.failNextEndCapture {
		// Simulated silent driver fault: a nil graph with no error.
		s.failNextEndCapture = false
		return nil, nil
	}
	g := &Graph{driver: s.driver, items: items}
	s.driver.addLiveGraph(1)
	return g, nil
}

// FailNextEndCapture arms a simulated silent driver fault: the next EndCapture
// returns a nil graph with a nil error. Test hook.
func (s *Stream) FailNextEndCapture() { s.failNextEndCapture = true }
