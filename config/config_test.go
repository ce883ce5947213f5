package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "callcheck", cfg.Pipeline.Name)
	assert.Equal(t, 5, cfg.Windows.Leading)
	assert.Equal(t, 6, cfg.Windows.Trailing)
	assert.Equal(t, 10, cfg.Services.NLP.TimeoutSec)
	assert.Equal(t, []string{"csv", "json"}, cfg.Report.Formats)
}

func TestLoad_GuessedFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_ENV", "prod")
	require.NoError(t, os.MkdirAll(filepath.Join("config", "prod"), 0o755))
	body := "services:\n  nlp:\n    url: http://natasha:9000\nworkers:\n  annotate: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join("config", "prod", "config.yaml"), []byte(body), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://natasha:9000", cfg.Services.NLP.URL)
	assert.Equal(t, 2, cfg.Workers.Annotate)
	assert.Equal(t, 4, cfg.Workers.Dialogues)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CALLCHECK_SERVICES_NLP_URL", "http://env:1")
	t.Setenv("CALLCHECK_WINDOWS_LEADING", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://env:1", cfg.Services.NLP.URL)
	assert.Equal(t, 3, cfg.Windows.Leading)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  formats: [xml]\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestYAML_RoundTrips(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)

	var back Root
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, *cfg, back)
}

func TestDurSeconds(t *testing.T) {
	assert.Equal(t, 3*time.Second, DurSeconds(3))
}
