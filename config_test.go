package summary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOpts(t *testing.T) {
	o, err := LoadOpts(strings.NewReader(`
namespace: app
name: request_duration_seconds
help: Request duration.
label_names: [method]
quantiles: [0.5, 0.9, 0.99]
reservoir_size: 64
`))
	require.NoError(t, err)
	require.Equal(t, "app", o.Namespace)
	require.Equal(t, []string{"method"}, o.LabelNames)
	require.Equal(t, []float64{0.5, 0.9, 0.99}, o.Quantiles)
	require.NotNil(t, o.ReservoirSize)
	require.Equal(t, 64, *o.ReservoirSize)

	s, err := NewFromOpts(o)
	require.NoError(t, err)
	require.Equal(t, "app_request_duration_seconds", s.Name())
	require.Equal(t, 64, s.ReservoirSize())
}

func TestLoadOpts_EmptyQuantilesDisableThem(t *testing.T) {
	o, err := LoadOpts(strings.NewReader("name: x\nquantiles: []\n"))
	require.NoError(t, err)
	s, err := NewFromOpts(o)
	require.NoError(t, err)
	require.Empty(t, s.Quantiles())
}

func TestLoadOpts_Errors(t *testing.T) {
	_, err := LoadOpts(strings.NewReader("name: x\nbuckets: [1, 2]\n"))
	require.Error(t, err)

	o, err := LoadOpts(strings.NewReader("name: x\nquantiles: [1.5]\n"))
	require.NoError(t, err)
	_, err = NewFromOpts(o)
	require.ErrorIs(t, err, ErrInvalidQuantile)
}

func TestLoadOpts_Empty(t *testing.T) {
	o, err := LoadOpts(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Opts{}, o)
}

func TestLoadOptsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from_file\n"), 0o600))

	o, err := LoadOptsFile(path)
	require.NoError(t, err)
	require.Equal(t, "from_file", o.Name)

	_, err = LoadOptsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestOpts_Options(t *testing.T) {
	o, err := LoadOpts(strings.NewReader("namespace: app\nname: rpc_seconds\nlabel_names: [method]\nquantiles: []\nreservoir_size: 16\n"))
	require.NoError(t, err)

	p := NewBasicProvider()
	s, err := p.Summary(o.Name, o.Options()...)
	require.NoError(t, err)
	require.Equal(t, "app_rpc_seconds", s.Name())
	require.Equal(t, []string{"method"}, s.LabelNames())
	require.Empty(t, s.Quantiles())
	require.Equal(t, 16, s.ReservoirSize())

	require.Empty(t, Opts{Name: "only_name"}.Options())
}
