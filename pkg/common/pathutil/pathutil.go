package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DataDir validates a store data directory and returns its cleaned absolute form.
// Relative paths are resolved against baseDir.
func DataDir(baseDir, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("data directory is empty")
	}

	cleaned := filepath.Clean(dir)
	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid data directory %q: path traversal not allowed", dir)
	}

	if !filepath.IsAbs(cleaned) {
		cleaned = filepath.Join(baseDir, cleaned)
	}

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for %q: %w", dir, err)
	}

	return abs, nil
}

// EnsureDir creates dir (and parents) with owner-only permissions when missing.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}
