//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedCasemapPath holds the path to a shared casemap binary built once for all tests.
	sharedCasemapPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getCasemapBinary returns the path to the casemap binary, building it once if needed.
func getCasemapBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "casemap-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		casemapPath := filepath.Join(tempDir, "casemap")
		buildCmd := exec.Command("go", "build", "-o", casemapPath, "./cmd/casemap")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build casemap: %v", err))
		}

		sharedCasemapPath = casemapPath
	})

	return sharedCasemapPath
}

// runCasemapCommand runs the shared binary with args and logs output on failure.
func runCasemapCommand(t *testing.T, args ...string) error {
	t.Helper()
	casemapPath := getCasemapBinary()
	cmd := exec.Command(casemapPath, args...)
	cmd.Dir = ".." // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
