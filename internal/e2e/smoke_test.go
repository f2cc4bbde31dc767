package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runSCC(t, binaryPath, home,
		"profile", "add", "local",
		"--base-url", "http://localhost:8000",
		"--username", "admin",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runSCC(t, binaryPath, home, "profile", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "* local")
	assert.Contains(t, stdout, "http://localhost:8000")

	stdout, stderr, err = runSCC(t, binaryPath, home, "session")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Not logged in")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "scc-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/scc")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build scc binary: %s", string(output))
	return binaryPath
}

func runSCC(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
