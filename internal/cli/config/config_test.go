package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, &Config{Indent: 2, Declaration: true}, cfg)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := "schema: people.yaml\nindent: 4\ndeclaration: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xmlbind.yaml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "people.yaml", cfg.Schema)
	assert.Equal(t, 4, cfg.Indent)
	assert.False(t, cfg.Declaration)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XMLBIND_INDENT", "-1")
	t.Setenv("XMLBIND_SCHEMA", "env.yaml")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, -1, cfg.Indent)
	assert.Equal(t, "env.yaml", cfg.Schema)
}
