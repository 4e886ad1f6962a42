package source

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModuleName resolves the module path governing dir by walking up to the
// nearest go.mod and parsing its module declaration.
func ModuleName(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", dir, err)
	}
	for {
		path := filepath.Join(current, "go.mod")
		data, err := os.ReadFile(path)
		if err == nil {
			mod, err := modfile.Parse(path, data, nil)
			if err != nil {
				return "", fmt.Errorf("parse %s: %w", path, err)
			}
			if mod.Module == nil {
				return "", fmt.Errorf("no module declaration in %s", path)
			}
			return mod.Module.Mod.Path, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no go.mod found above %s", dir)
		}
		current = parent
	}
}
