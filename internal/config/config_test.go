package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates name under a fresh temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.DataOnly)
	assert.False(t, cfg.GuessTypes)
	assert.Equal(t, OutputText, cfg.Output)
	assert.NoError(t, cfg.Validate())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, lvl)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "xlkit.yaml", `
data_only: true
guess_types: true
output: yaml
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.DataOnly)
	assert.True(t, cfg.GuessTypes)
	assert.Equal(t, OutputYAML, cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadJSONC(t *testing.T) {
	path := writeFile(t, "xlkit.jsonc", `{
	// cached values only
	"data_only": true,
	"output": "json", /* trailing comma below */
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.DataOnly)
	assert.False(t, cfg.GuessTypes)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, "warning", cfg.LogLevel, "missing keys keep their defaults")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "bad output", file: "xlkit.yml", content: "output: csv\n"},
		{name: "bad level", file: "xlkit.json", content: `{"log_level": "loud"}`},
		{name: "bad yaml", file: "xlkit.yaml", content: "data_only: [\n"},
		{name: "bad json", file: "xlkit.json", content: `{"data_only": }`},
		{name: "unknown extension", file: "xlkit.toml", content: "output = 'json'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "xlkit.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	_, ok := Find(dir)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "xlkit.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xlkit.yml"), []byte(""), 0o644))

	path, ok := Find(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "xlkit.yml"), path, "yml is searched before json")
}
