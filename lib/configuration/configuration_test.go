package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl   string   `json:"base_url"`
	Locations []string `json:"locations"`
	Verbose   bool     `json:"verbose"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestSplitExt(t *testing.T) {
	name, ext := splitExt("syres.json5")
	require.Equal(t, "syres", name)
	require.Equal(t, "json5", ext)

	name, ext = splitExt("noextension")
	require.Equal(t, "noextension", name)
	require.Equal(t, "", ext)
}

func TestReadDefaultOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "syres.json5"), `{
		// comments are allowed
		base_url: "https://example.skedda.com",
		locations: ["A", "B"],
	}`)

	config, err := Read[testConfig](filepath.Join(dir, "syres.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.skedda.com", config.BaseUrl)
	require.Equal(t, []string{"A", "B"}, config.Locations)
}

func TestReadLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "syres.json5"), `{
		base_url: "https://example.skedda.com",
		locations: ["A", "B"],
	}`)
	writeFile(t, filepath.Join(dir, "syres.local.json5"), `{
		base_url: "http://localhost:8080",
		verbose: true,
	}`)

	config, err := Read[testConfig](filepath.Join(dir, "syres.json5"))
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080", config.BaseUrl)
	require.True(t, config.Verbose)
	// keys absent from the local file keep their defaults
	require.Equal(t, []string{"A", "B"}, config.Locations)
}

func TestReadLocalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "syres.local.json5"), `{
		base_url: "http://localhost:8080",
	}`)

	config, err := Read[testConfig](filepath.Join(dir, "syres.json5"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", config.BaseUrl)
}

func TestReadMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := Read[testConfig](filepath.Join(dir, "syres.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "syres.json5"), `{ base_url: `)

	_, err := Read[testConfig](filepath.Join(dir, "syres.json5"))
	require.Error(t, err)
}

func TestReadRecursively(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))
	writeFile(t, filepath.Join(dir, "syres.json5"), `{
		base_url: "https://example.skedda.com",
	}`)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(cwd))
	})

	config, err := ReadRecursively[testConfig]("syres.json5")
	require.NoError(t, err)
	require.Equal(t, "https://example.skedda.com", config.BaseUrl)
}
