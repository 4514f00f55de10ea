package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stemd-dev/stemd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":7867", cfg.Server.Listen)
	assert.Equal(t, "python3", cfg.Tool.Interpreter)
	assert.Equal(t, "inference.py", cfg.Tool.Script)
	assert.Zero(t, cfg.ToolTimeout())
	assert.Equal(t, "bs_roformer", cfg.Defaults.ModelType)
	assert.Equal(t, "ckpt/bs_rofomer/BS-Rofo-SW-Fixed.yaml", cfg.Defaults.ConfigPath)
	assert.Equal(t, "ckpt/bs_rofomer/BS-Rofo-SW-Fixed.ckpt", cfg.Defaults.StartCheckPoint)
	assert.Equal(t, "audio/", cfg.Defaults.InputFolder)
	assert.Equal(t, "separated/", cfg.Defaults.StoreDir)
	assert.Equal(t, "0", cfg.Defaults.DeviceIDs)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stemd.toml")
	os.WriteFile(path, []byte(`
[server]
listen = ":9000"

[tool]
interpreter = "/opt/venv/bin/python"
script = "/srv/separator/inference.py"
timeout_seconds = 120

[defaults]
store_dir = "/data/out/"
`), 0644)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Listen)
	assert.Equal(t, "/opt/venv/bin/python", cfg.Tool.Interpreter)
	assert.Equal(t, "/srv/separator/inference.py", cfg.Tool.Script)
	assert.Equal(t, 120, cfg.Tool.TimeoutSeconds)
	assert.Equal(t, "/data/out/", cfg.Defaults.StoreDir)
	// Untouched sections keep their defaults.
	assert.Equal(t, "bs_roformer", cfg.Defaults.ModelType)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stemd.toml")
	os.WriteFile(path, []byte(`
[server]
listen = ":9000"
`), 0644)

	t.Setenv("STEMD_LISTEN", ":7000")
	t.Setenv("STEMD_DEFAULT_MODEL_TYPE", "mdx23c")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Listen)
	assert.Equal(t, "mdx23c", cfg.Defaults.ModelType)
}

func TestDefaultsApply(t *testing.T) {
	d := defaults().Defaults

	merged := d.Apply(domain.Request{})
	assert.Equal(t, "bs_roformer", merged.ModelType)
	assert.Equal(t, "audio/", merged.InputFolder)
	assert.Empty(t, merged.InputFile)
	assert.Equal(t, "separated/", merged.StoreDir)
	assert.Equal(t, "0", merged.DeviceIDs)
	assert.False(t, merged.UseTTA)

	// An explicit input file suppresses the folder default.
	merged = d.Apply(domain.Request{InputFile: "audio/sea.wav"})
	assert.Equal(t, "audio/sea.wav", merged.InputFile)
	assert.Empty(t, merged.InputFolder)

	// Caller values win over defaults.
	merged = d.Apply(domain.Request{StoreDir: "elsewhere/"})
	assert.Equal(t, "elsewhere/", merged.StoreDir)
}
