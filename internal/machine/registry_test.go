package machine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/magsetup/internal/setup"
)

const machines = `{
	// compute nodes
	"calcul": {"type": "compute", "dns": "calcul.lncmi.local", "cores": 64, "multithreading": true, "queue": "long"},
	"visu": {"name": "visu-01", "type": "visu", "cores": "8"},
	"stub": null,
}`

func TestLookup(t *testing.T) {
	r, err := Parse([]byte(machines))
	require.NoError(t, err)

	assert.Equal(t, []string{"calcul", "visu", "stub"}, r.Names())

	def, err := r.Lookup("calcul")
	require.NoError(t, err)
	assert.Equal(t, "compute", def["type"])
	assert.Equal(t, "long", def["queue"])

	stub, err := r.Lookup("stub")
	require.NoError(t, err)
	assert.Empty(t, stub)
}

func TestLookup_UnknownServer(t *testing.T) {
	r, err := Parse([]byte(machines))
	require.NoError(t, err)

	_, err = r.Lookup("nonexistent")
	require.ErrorIs(t, err, setup.ErrUnknownServer)
	assert.Contains(t, err.Error(), "nonexistent")

	var unknown *setup.UnknownServerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nonexistent", unknown.Name)
}

func TestMachine(t *testing.T) {
	r, err := Parse([]byte(machines))
	require.NoError(t, err)

	m, err := r.Machine("calcul")
	require.NoError(t, err)
	assert.Equal(t, "calcul", m.Name)
	assert.Equal(t, 64, m.Cores)
	assert.True(t, m.Multithreading)
	assert.Equal(t, "long", m.Extra["queue"])

	m, err = r.Machine("visu")
	require.NoError(t, err)
	assert.Equal(t, "visu-01", m.Name)
	assert.Equal(t, 8, m.Cores)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "machines.yaml")
	require.NoError(t, os.WriteFile(path, []byte("calcul:\n  type: compute\n  cores: 32\n"), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	m, err := r.Machine("calcul")
	require.NoError(t, err)
	assert.Equal(t, 32, m.Cores)

	_, err = Load(filepath.Join(dir, DefaultFile))
	assert.Error(t, err)

	_, err = Parse([]byte("[1, 2]"))
	assert.Error(t, err)
}

func TestParse_JSONEscapes(t *testing.T) {
	doc := `{"calcul": {"dns": "calcul.lncmi.local", "simage": "\/home\/singularity\/feelpp.sif"}}`

	r, err := Parse([]byte(doc))
	require.NoError(t, err)

	def, err := r.Lookup("calcul")
	require.NoError(t, err)
	assert.Equal(t, "/home/singularity/feelpp.sif", def["simage"])

	_, err = Parse([]byte(`{"calcul": {}} {"visu": {}}`))
	assert.Error(t, err)
}
