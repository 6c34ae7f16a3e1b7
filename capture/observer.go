package capture

import (
	"time"

	"k8s.io/klog/v2"
)

// CaptureStarted is emitted right after a capture session opens on the stream.
type CaptureStarted struct {
	// Session uniquely identifies one begin/end cycle, for correlating events.
	Session string
	Slot    Slot
}

// CaptureEnded is emitted after the recording has been instantiated and stored.
type CaptureEnded struct {
	Session  string
	Slot     Slot
	Duration time.Duration
}

// Replayed is emitted after a replay has fully finished on the device.
type Replayed struct {
	Slot     Slot
	Duration time.Duration
}

// Observer receives the lifecycle events of a Manager. Implementations must not
// call back into the Manager.
//
// Observers are for observability only: no event implies any state change beyond
// what the emitting operation documents.
type Observer interface {
	OnCaptureStarted(ev CaptureStarted)
	OnCaptureEnded(ev CaptureEnded)
	OnReplayed(ev Replayed)
}

// klogObserver is the default Observer, logging events with klog at verbosity 1.
type klogObserver struct{}

func (klogObserver) OnCaptureStarted(ev CaptureStarted) {
	klog.V(1).Infof("execgraphs: capture started: session=%s %s", ev.Session, ev.Slot)
}

func (klogObserver) OnCaptureEnded(ev CaptureEnded) {
	klog.V(1).Infof("execgraphs: capture ended: session=%s %s duration=%s", ev.Session, ev.Slot, ev.Duration)
}

func (klogObserver) OnReplayed(ev Replayed) {
	klog.V(1).Infof("execgraphs: replayed %s in %s", ev.Slot, ev.Duration)
}
