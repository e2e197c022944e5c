package adapters

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"vmodl-helper/internal/ports"
	"vmodl-helper/internal/types"
)

// RegistryFileAdapter stores the registry as a YAML document.
type RegistryFileAdapter struct{}

func NewRegistryFileAdapter() RegistryFileAdapter {
	return RegistryFileAdapter{}
}

func (a RegistryFileAdapter) Load(path string) (types.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Registry{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("registry file not found: " + path).
			WithCause(err)
	}
	registry := types.NewRegistry()
	if len(bytes.TrimSpace(data)) == 0 {
		return registry, nil
	}
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return types.Registry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid registry format: " + path).
			WithCause(err)
	}
	return registry, nil
}

// Save encodes the registry and replaces path in one rename, keeping the
// existing file mode.  A failed save leaves the previous file in place.
func (a RegistryFileAdapter) Save(path string, registry types.Registry) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode registry").
			WithCause(err)
	}
	if err := encoder.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode registry").
			WithCause(err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return writeError(path, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return writeError(path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return writeError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return writeError(path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return writeError(path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return writeError(path, err)
	}
	return nil
}

func writeError(path string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to write registry file: " + path).
		WithCause(err)
}

var _ ports.RegistryStorePort = RegistryFileAdapter{}
