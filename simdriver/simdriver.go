// Package simdriver implements a simulated, in-process driver for the
// execgraphs interfaces.
//
// There is no device: work items are plain Go closures, executed at enqueue
// time when the stream is idle and recorded (not executed) while the stream is
// capturing. It is meant for tests and for exercising the capture lifecycle
// without an accelerator, so it also tracks live graph handles, which lets
// tests verify that nothing leaks and nothing is destroyed twice.
package simdriver

import (
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"

	"github.com/gomlx/execgraphs"
)

// DriverName to be used in EXECGRAPHS_DRIVER to specify this driver.
const DriverName = "sim"

// DefaultMemory is the simulated device memory reported when the configuration
// does not specify one.
const DefaultMemory = 8 << 30

// Registers New() as the constructor for the "sim" driver.
func init() {
	execgraphs.Register(DriverName, New)
}

// New constructs a new simulated Driver.
//
// The configuration string is the simulated device memory, in any form
// humanize accepts ("2GiB", "512 MB", plain bytes); empty means DefaultMemory.
func New(config string) execgraphs.Driver {
	memory := uint64(DefaultMemory)
	if config != "" {
		var err error
		memory, err = humanize.ParseBytes(config)
		if err != nil {
			exceptions.Panicf("invalid %q driver configuration %q: expected a memory size like \"2GiB\"", DriverName, config)
		}
	}
	return &Driver{memoryBytes: memory}
}

// Driver implements the execgraphs.Driver interface with simulated streams.
type Driver struct {
	memoryBytes  uint64
	nextStreamID atomic.Int64

	liveGraphs atomic.Int64
	liveExecs  atomic.Int64
}

// Compile-time check that simdriver.Driver implements execgraphs.Driver.
var _ execgraphs.Driver = (*Driver)(nil)

// Name returns the short name of the driver.
func (d *Driver) Name() string { return DriverName }

// Description is a longer description of the Driver that can be used to pretty-print.
func (d *Driver) Description() string {
	return fmt.Sprintf("Simulated Stream Driver (%s device memory)", humanize.IBytes(d.memoryBytes))
}

// NewStream creates a new simulated command stream.
func (d *Driver) NewStream() (execgraphs.Stream, error) {
	return &Stream{
		driver: d,
		id:     d.nextStreamID.Add(1),
	}, nil
}

// Finalize releases all the associated resources immediately, and makes the
// driver invalid. For the simulated driver there is nothing device-side to
// release.
func (d *Driver) Finalize() {}

// LiveGraphs returns the number of raw (non-instantiated) graph handles
// currently alive. Tests use it to assert leak-freedom.
func (d *Driver) LiveGraphs() int64 {
	return d.liveGraphs.Load()
}

// LiveExecutables returns the number of executable graph handles currently
// alive.
func (d *Driver) LiveExecutables() int64 {
	return d.liveExecs.Load()
}

func (d *Driver) addLiveGraph(delta int64) { d.liveGraphs.Add(delta) }
func (d *Driver) addLiveExec(delta int64)  { d.liveExecs.Add(delta) }
