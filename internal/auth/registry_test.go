package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTokens(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultTokensFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTokens(t, "sekret alice\nother-token bob\n")

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	username, ok := reg.Lookup("sekret")
	require.True(t, ok)
	assert.Equal(t, "alice", username)

	_, ok = reg.Lookup("unknown")
	assert.False(t, ok)
}

func TestLoadUsernameMayContainSpaces(t *testing.T) {
	// Only the first space separates token from username.
	path := writeTokens(t, "tok alice liddell\n")

	reg, err := Load(path)
	require.NoError(t, err)

	username, ok := reg.Lookup("tok")
	require.True(t, ok)
	assert.Equal(t, "alice liddell", username)
}

func TestLoadMalformedLineIsFatal(t *testing.T) {
	path := writeTokens(t, "sekret alice\ntokenwithoutusername\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":2:")
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTokens(t, "")

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
