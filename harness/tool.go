package harness

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ResolveTool locates the external analysis executable before any run
// starts. A path containing a separator is checked directly and made
// absolute; a bare name is resolved through PATH.
func ResolveTool(path string) (string, error) {
	if !strings.ContainsRune(path, os.PathSeparator) {
		resolved, err := exec.LookPath(path)
		if err != nil {
			return "", fmt.Errorf("tool %q not found in PATH: %w", path, err)
		}

		return resolved, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve tool path %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", path, err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("tool %s is a directory", abs)
	}

	return abs, nil
}
