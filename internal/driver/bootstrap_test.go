package driver

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyEnv(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, ".env")
	dst := filepath.Join(dir, "supabase", "docker", ".env")
	require.NoError(t, os.WriteFile(src, []byte("POSTGRES_PASSWORD=secret\n"), 0644))

	require.NoError(t, CopyEnv(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "POSTGRES_PASSWORD=secret\n", string(data))
}

func TestCopyEnvMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyEnv(filepath.Join(dir, "missing"), filepath.Join(dir, "out"))
	require.Error(t, err)
}

var hexKeyPattern = regexp.MustCompile(`secret_key: "[0-9a-f]{64}"`)

func TestSeedSecret(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "settings-base.yml")
	settings := filepath.Join(dir, "settings.yml")
	require.NoError(t, os.WriteFile(base, []byte("server:\n  secret_key: \"ultrasecretkey\"\n"), 0644))

	require.NoError(t, SeedSecret(base, settings))

	data, err := os.ReadFile(settings)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ultrasecretkey")
	assert.Regexp(t, hexKeyPattern, string(data))
}

func TestSeedSecretLeavesSeededFile(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "settings-base.yml")
	settings := filepath.Join(dir, "settings.yml")
	require.NoError(t, os.WriteFile(base, []byte("secret_key: \"ultrasecretkey\"\n"), 0644))

	require.NoError(t, SeedSecret(base, settings))
	first, err := os.ReadFile(settings)
	require.NoError(t, err)

	// A second run must not rotate the key.
	require.NoError(t, SeedSecret(base, settings))
	second, err := os.ReadFile(settings)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestSeedSecretMissingBase(t *testing.T) {
	dir := t.TempDir()
	err := SeedSecret(filepath.Join(dir, "missing.yml"), filepath.Join(dir, "settings.yml"))
	require.Error(t, err)
}
