package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteStringToTempFile returns the file path and a cleanup function.
func WriteStringToTempFile(content string) (string, func(), error) {
	tempFile, err := os.CreateTemp("", "azops-*.yaml")
	if err != nil {
		return "", nil, err
	}

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return "", nil, err
	}

	tempFile.Close()

	cleanup := func() {
		os.Remove(tempFile.Name())
	}

	return tempFile.Name(), cleanup, nil
}

// WriteTestConfig writes an azops config into t's temp dir with logging
// pointed at the same dir, followed by any extra YAML.
func WriteTestConfig(t testing.TB, extra string) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`general:
  log_path: %s
  log_level: debug
%s`, filepath.Join(dir, "azops.log"), extra)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}
