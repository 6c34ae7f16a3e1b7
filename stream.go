package execgraphs

// CaptureMode selects how stream capture interacts with work submitted by other
// threads and streams while a capture is open.
type CaptureMode int

const (
	// CaptureModeGlobal observes and serializes all stream activity process-wide:
	// only one stream may be capturing at a time. This is the only mode the
	// lifecycle manager in package capture uses.
	CaptureModeGlobal CaptureMode = iota

	// CaptureModeThreadLocal restricts capture to work submitted by the capturing
	// thread. Drivers may not support it.
	CaptureModeThreadLocal

	// CaptureModeRelaxed places no restriction on concurrent work. Drivers may not
	// support it.
	CaptureModeRelaxed
)

//go:generate go tool enumer -type=CaptureMode -trimprefix=CaptureMode -output=gen_capturemode_enumer.go stream.go

// Stream is an ordered, device-side queue of work items submitted by the host.
//
// A Stream is not safe for concurrent use: it assumes a single logical owner, the
// same model the lifecycle manager follows.
type Stream interface {
	// Synchronize blocks until all work previously queued on the stream has
	// completed on the device.
	Synchronize() error

	// BeginCapture switches the stream into capture mode: subsequently submitted
	// work is recorded instead of executed, until EndCapture.
	BeginCapture(mode CaptureMode) error

	// EndCapture closes an open capture and returns the recorded Graph.
	//
	// Returning a nil Graph with a nil error is a driver contract violation; the
	// lifecycle manager treats it as fatal.
	EndCapture() (Graph, error)
}
