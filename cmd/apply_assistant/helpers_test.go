package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the apply_assistant binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "apply_assistant"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// runBinary runs the CLI against a profile file in a temporary directory.
func runBinary(t *testing.T, profilePath string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinaryPath(t), args...)
	cmd.Env = append(os.Environ(),
		"APPLY_PROFILE_PATH="+profilePath,
		"APPLY_DATABASE_URL=",
		"APPLY_LOG_LEVEL=error",
	)
	output, err := cmd.CombinedOutput()
	return string(output), err
}
