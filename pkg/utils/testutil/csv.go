package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteCSVFile writes a CSV fixture into dir and returns its path.
func WriteCSVFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}
