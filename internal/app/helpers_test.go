package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(append([]string{root, "fixtures"}, parts...)...)
}

// copyFixture copies a fixture file into a temp dir so tests may write it.
func copyFixture(t *testing.T, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(fixturePath(t, parts...))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), parts[len(parts)-1])
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func vimInputs(t *testing.T, registryPath string) ReconcileInputs {
	t.Helper()
	return ReconcileInputs{
		SchemaPath:   fixturePath(t, "wsdl", "vimService.wsdl"),
		RegistryPath: registryPath,
	}
}
