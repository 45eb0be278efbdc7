package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	ExportDir string `json:"export_dir"`
	Warehouse struct {
		Driver string `json:"driver"`
		File   string `json:"file"`
	} `json:"warehouse"`
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, filepath.Join("conf", "harvest.local.json5"), LocalPath(filepath.Join("conf", "harvest.json5")))
	require.Equal(t, "harvest.local.", LocalPath("harvest"))
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "harvest.json5")

	err := os.WriteFile(name, []byte(`{
		// comments are allowed
		export_dir: "./exports",
		warehouse: { driver: "sqlite", file: "questions.db" },
	}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(LocalPath(name), []byte(`{ warehouse: { file: "local.db" } }`), 0600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "./exports", cfg.ExportDir)
	require.Equal(t, "sqlite", cfg.Warehouse.Driver)
	require.Equal(t, "local.db", cfg.Warehouse.File)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "harvest.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	name := filepath.Join(t.TempDir(), "harvest.json5")
	err := os.WriteFile(name, []byte(`{ export_dir: `), 0600)
	require.NoError(t, err)

	_, err = ReadConfig[testConfig](name)
	require.Error(t, err)
	require.False(t, os.IsNotExist(err))
}
