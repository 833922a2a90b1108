package settings

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.db")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestGeometryRoundTripAcrossReopen(t *testing.T) {
	s, path := openTemp(t)
	want := Geometry{X: 10, Y: 20, Width: 420, Height: 730}
	require.NoError(t, s.SetGeometry("demo/main", want))
	require.NoError(t, s.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Geometry("demo/main")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMissingValue(t *testing.T) {
	s, _ := openTemp(t)
	defer s.Close()

	_, err := s.Geometry("nope")
	assert.True(t, errors.Is(err, ErrNoValue), "got %v", err)

	var v int
	assert.True(t, errors.Is(s.Value("nope", &v), ErrNoValue))
}

func TestValuesAndKeys(t *testing.T) {
	s, _ := openTemp(t)
	defer s.Close()

	require.NoError(t, s.SetValue("theme", "dark"))
	require.NoError(t, s.SetValue("volume", 0.5))

	var theme string
	require.NoError(t, s.Value("theme", &theme))
	assert.Equal(t, "dark", theme)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"theme", "volume"}, keys)

	require.NoError(t, s.DeleteValue("theme"))
	keys, _ = s.Keys()
	assert.Equal(t, []string{"volume"}, keys)
}
