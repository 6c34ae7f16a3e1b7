// Package execgraphs defines the driver interface for device execution-graph
// capture and replay, and a registry of driver implementations.
//
// An execution graph is a recording of the work submitted to a device command
// stream, instantiated once into a launchable form and then replayed with a
// single low-overhead launch call. The package splits into:
//
//   - This package: the Driver/Stream/Graph/ExecutableGraph interfaces a device
//     driver needs to implement, plus driver registration and selection.
//   - Package capture: the lifecycle manager that drives begin/end/replay/reset
//     against any registered driver.
//   - Package simdriver: a pure-Go simulated driver, useful for tests and for
//     running the lifecycle without an accelerator.
//
// To simplify error handling, fatal conditions (contract violations, device
// failures during capture) panic with a stack trace, see package
// github.com/gomlx/exceptions. Recoverable conditions are returned as errors.
package execgraphs

import (
	"os"
	"strings"

	"github.com/gomlx/exceptions"
)

// Driver is the entry point a device driver implements to participate in
// execution-graph capture and replay.
type Driver interface {
	// Name returns the short name of the driver, e.g.: "sim" for the simulated driver.
	Name() string

	// Description is a longer description of the Driver that can be used to pretty-print.
	Description() string

	// NewStream creates a new command stream on the device.
	NewStream() (Stream, error)

	// Finalize releases all the associated resources immediately, and makes the driver invalid.
	Finalize()
}

// Constructor takes a config string (optionally empty) and returns a Driver.
type Constructor func(config string) Driver

var (
	registeredConstructors = make(map[string]Constructor)
	firstRegistered        string
)

// Register driver with the given name, and a default constructor that takes as input
// a configuration string that is passed along to the driver constructor.
//
// To be safe, call Register during initialization of a package.
func Register(name string, constructor Constructor) {
	if len(registeredConstructors) == 0 {
		firstRegistered = name
	}
	registeredConstructors[name] = constructor
}

// DefaultConfig is the driver configuration to use if specified.
//
// See NewWithConfig for the format of the configuration string.
var DefaultConfig string

// EXECGRAPHS_DRIVER is the environment variable with the default driver configuration
// to use.
//
// The format of config is "<driver_name>:<driver_configuration>".
// The "<driver_name>" is the name of a registered driver (e.g.: "sim") and
// "<driver_configuration>" is driver specific.
const EXECGRAPHS_DRIVER = "EXECGRAPHS_DRIVER"

// New returns a new default Driver.
//
// The default is:
//
// 1. The environment EXECGRAPHS_DRIVER is used as a configuration if defined.
// 2. Next the variable DefaultConfig is used as a configuration if defined.
// 3. The first registered driver is used with an empty configuration.
//
// It panics if no driver was registered.
func New() Driver {
	config, found := os.LookupEnv(EXECGRAPHS_DRIVER)
	if found {
		return NewWithConfig(config)
	}
	if DefaultConfig != "" {
		return NewWithConfig(DefaultConfig)
	}
	return NewWithConfig("")
}

// NewWithConfig takes a configuration string formatted as
// "<driver_name>:<driver_configuration>".
// The "<driver_name>" is the name of a registered driver (e.g.: "sim") and
// "<driver_configuration>" is driver specific.
func NewWithConfig(config string) Driver {
	if len(registeredConstructors) == 0 {
		exceptions.Panicf(`no registered drivers for execgraphs -- maybe import the simulated one with import _ "github.com/gomlx/execgraphs/simdriver"?`)
	}
	driverName := firstRegistered
	driverConfig := config
	if idx := strings.Index(config, ":"); idx != -1 {
		driverName = config[:idx]
		driverConfig = config[idx+1:]
	} else if _, found := registeredConstructors[config]; found {
		// A bare driver name selects that driver with an empty configuration.
		driverName = config
		driverConfig = ""
	}
	constructor, found := registeredConstructors[driverName]
	if !found {
		exceptions.Panicf("can't find driver %q for configuration %q given", driverName, config)
	}
	return constructor(driverConfig)
}
