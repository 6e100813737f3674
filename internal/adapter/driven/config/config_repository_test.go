package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile_TOML(t *testing.T) {
	path := writeFile(t, "report.toml", `
profile = "audit"
region = "eu-west-1"
format = "json"
poll_interval_seconds = 2
max_poll_attempts = 60
sort_policies = false
upload = "s3://reports-bucket/iam"
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "audit", cfg.Profile)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 2, cfg.PollIntervalSeconds)
	assert.Equal(t, 60, cfg.MaxPollAttempts)
	require.NotNil(t, cfg.SortPolicies)
	assert.False(t, *cfg.SortPolicies)
	assert.Equal(t, "s3://reports-bucket/iam", cfg.Upload)
}

func TestLoadConfigFile_YAML(t *testing.T) {
	path := writeFile(t, "report.yml", "format: xml\ndir: ./out\noutput: weekly\n")

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xml", cfg.Format)
	assert.Equal(t, "./out", cfg.Dir)
	assert.Equal(t, "weekly", cfg.Output)
	assert.Nil(t, cfg.SortPolicies)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := writeFile(t, "report.json", `{"profile": "prod", "max_poll_attempts": 10}`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Profile)
	assert.Equal(t, 10, cfg.MaxPollAttempts)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error accessing config file")

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "report.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported config file format: .ini")

	_, err = repo.LoadConfigFile(writeFile(t, "report.yaml", "max_poll_attempts: -1\n"))
	assert.ErrorContains(t, err, "max_poll_attempts must not be negative")
}
