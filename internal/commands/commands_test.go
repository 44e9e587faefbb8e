package commands

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopHandler(*flag.FlagSet) error { return nil }

func TestRegister_Basic(t *testing.T) {
	r := New("run")

	fs, err := r.Register("flush", nopHandler)
	require.NoError(t, err)
	require.NotNil(t, fs)

	// The standard --config option is attached before the caller sees the
	// sub-parser.
	require.NotNil(t, fs.Lookup("config"))

	require.NoError(t, fs.Parse([]string{"--config", "/etc/monitor.toml"}))

	entry, ok := r.Lookup("flush")
	require.True(t, ok)
	assert.Equal(t, "/etc/monitor.toml", entry.ConfigPath())
}

func TestRegister_NilHandler(t *testing.T) {
	r := New("run")

	_, err := r.Register("flush", nil)
	require.Error(t, err)

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, "flush", regErr.Name)
	assert.Empty(t, r.Names())
}

func TestRegister_PrimaryNameRejected(t *testing.T) {
	r := New("run")

	_, err := r.Register("run", nopHandler)
	require.Error(t, err)

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Contains(t, regErr.Reason, "primary")
	assert.Empty(t, r.Names())
}

func TestRegister_Duplicate(t *testing.T) {
	r := New("run")

	first, err := r.Register("flush", nopHandler)
	require.NoError(t, err)

	_, err = r.Register("flush", nopHandler)
	require.Error(t, err)

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Contains(t, regErr.Reason, "already registered")

	// The failed call leaves the registry exactly as it was.
	assert.Equal(t, []string{"flush"}, r.Names())
	entry, ok := r.Lookup("flush")
	require.True(t, ok)
	assert.Same(t, first, entry.Flags)
}

func TestRegister_CommandSpecificOptions(t *testing.T) {
	r := New("run")

	fs, err := r.Register("flush", nopHandler)
	require.NoError(t, err)

	force := fs.Bool("force", false, "Discard pending data")
	require.NoError(t, fs.Parse([]string{"--force", "--config", "/tmp/c.toml"}))
	assert.True(t, *force)

	entry, _ := r.Lookup("flush")
	assert.Equal(t, "/tmp/c.toml", entry.ConfigPath())
}

func TestRegister_DescriptionInUsage(t *testing.T) {
	r := New("run")
	var buf bytes.Buffer

	fs, err := r.Register("flush", nopHandler,
		WithDescription("flush buffered samples"),
		WithOutput(&buf))
	require.NoError(t, err)

	fs.Usage()
	assert.Contains(t, buf.String(), "flush buffered samples")
	assert.Contains(t, buf.String(), "config")
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := New("run")

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := r.Register(name, nopHandler)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
	assert.Equal(t, "run", r.Primary())
}

func TestRegistry_LookupMissing(t *testing.T) {
	r := New("run")

	_, ok := r.Lookup("absent")
	assert.False(t, ok)
}
