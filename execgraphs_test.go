package execgraphs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver records the configuration it was constructed with.
type fakeDriver struct{ config string }

func (d *fakeDriver) Name() string               { return "fake" }
func (d *fakeDriver) Description() string        { return "Fake Driver" }
func (d *fakeDriver) NewStream() (Stream, error) { return nil, nil }
func (d *fakeDriver) Finalize()                  {}

func TestRegistry(t *testing.T) {
	// No driver registered in this package's tests yet.
	require.Panics(t, func() { NewWithConfig("") })

	Register("fake", func(config string) Driver { return &fakeDriver{config: config} })
	Register("other", func(config string) Driver { return &fakeDriver{config: "other:" + config} })

	// First registered is the fallback.
	driver := NewWithConfig("")
	assert.Equal(t, "", driver.(*fakeDriver).config)

	// "<name>:<config>" selects driver and passes the configuration along.
	driver = NewWithConfig("other:foo")
	assert.Equal(t, "other:foo", driver.(*fakeDriver).config)

	// A bare registered name selects that driver with an empty configuration.
	driver = NewWithConfig("other")
	assert.Equal(t, "other:", driver.(*fakeDriver).config)

	// An unregistered name panics.
	require.Panics(t, func() { NewWithConfig("missing:foo") })

	// New() falls back to DefaultConfig when the environment variable is absent.
	t.Setenv(EXECGRAPHS_DRIVER, "") // Registers the restore; unset below.
	require.NoError(t, os.Unsetenv(EXECGRAPHS_DRIVER))
	DefaultConfig = "fake:from-default"
	defer func() { DefaultConfig = "" }()
	assert.Equal(t, "from-default", New().(*fakeDriver).config)

	// The environment variable takes precedence over DefaultConfig.
	t.Setenv(EXECGRAPHS_DRIVER, "other:from-env")
	assert.Equal(t, "other:from-env", New().(*fakeDriver).config)
}

func TestCaptureModeStrings(t *testing.T) {
	assert.Equal(t, "Global", CaptureModeGlobal.String())
	assert.Equal(t, "ThreadLocal", CaptureModeThreadLocal.String())
	assert.Equal(t, "Relaxed", CaptureModeRelaxed.String())
	mode, err := CaptureModeString("Global")
	require.NoError(t, err)
	assert.Equal(t, CaptureModeGlobal, mode)
}
