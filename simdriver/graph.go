package simdriver

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/gomlx/execgraphs"
)

// Graph is the raw recording of one capture: the ordered work items submitted
// while the stream was capturing.
type Graph struct {
	driver *Driver
	items  []workItem

	instantiated bool
	destroyed    bool
}

var _ execgraphs.Graph = (*Graph)(nil)

// Instantiate converts the recording into a launchable Executable. At most
// once per Graph.
func (g *Graph) Instantiate() (execgraphs.ExecutableGraph, error) {
	if g.destroyed {
		return nil, errors.Errorf("%q driver: cannot instantiate a destroyed graph", DriverName)
	}
	if g.instantiated {
		return nil, errors.Errorf("%q driver: graph was already instantiated", DriverName)
	}
	g.instantiated = true
	e := &Executable{driver: g.driver, items: slices.Clone(g.items)}
	g.driver.addLiveExec(1)
	return e, nil
}

// Destroy releases the recording.
func (g *Graph) Destroy() error {
	if g.destroyed {
		return errors.Errorf("%q driver: graph was already destroyed", DriverName)
	}
	g.destroyed = true
	g.items = nil
	g.driver.addLiveGraph(-1)
	return nil
}

// NumNodes returns how many work items the recording holds.
func (g *Graph) NumNodes() int { return len(g.items) }

// Executable is the launchable form of a Graph. It stays valid independently of
// the Graph it was instantiated from, until destroyed.
type Executable struct {
	driver *Driver
	items  []workItem

	launches  int
	destroyed bool
}

var _ execgraphs.ExecutableGraph = (*Executable)(nil)

// Launch replays the recorded work items, in order, onto the given stream.
func (e *Executable) Launch(stream execgraphs.Stream) error {
	if e.destroyed {
		return errors.Errorf("%q driver: cannot launch a destroyed executable graph", DriverName)
	}
	s, ok := stream.(*Stream)
	if !ok {
		return errors.Errorf("stream given is not a %q driver stream", DriverName)
	}
	if s.capturing {
		return errors.Errorf("%q driver: cannot launch an executable graph on stream #%d while it is capturing",
			DriverName, s.id)
	}
	for _, item := range e.items {
		item.fn()
		s.history = append(s.history, item.name)
	}
	e.launches++
	return nil
}

// Launches returns how many times the executable was launched.
func (e *Executable) Launches() int { return e.launches }

// Destroy releases the executable.
func (e *Executable) Destroy() error {
	if e.destroyed {
		return errors.Errorf("%q driver: executable graph was already destroyed", DriverName)
	}
	e.destroyed = true
	e.items = nil
	e.driver.addLiveExec(-1)
	return nil
}
