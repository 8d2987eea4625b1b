//go:build integration

// Package integration contains integration tests for gerritlens.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStubGerritServer serves a fixed set of changes the way Gerrit does,
// including the XSSI magic prefix.
func newStubGerritServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/changes/", func(w http.ResponseWriter, _ *http.Request) {
		body := `[
			{
				"id": "demo~app~I1",
				"project": "demo/app",
				"subject": "Add login flow",
				"status": "MERGED",
				"created": "2026-08-01 10:00:00.000000000",
				"updated": "2026-08-02 16:00:00.000000000",
				"submitted": "2026-08-02 16:00:00.000000000",
				"insertions": 120,
				"deletions": 10,
				"total_comment_count": 6,
				"owner": {"_account_id": 1, "name": "Alice"}
			},
			{
				"id": "demo~app~I2",
				"project": "demo/app",
				"subject": "Fix typo",
				"status": "NEW",
				"created": "2026-08-01 12:00:00.000000000",
				"updated": "2026-08-01 12:30:00.000000000",
				"insertions": 2,
				"deletions": 1,
				"total_comment_count": 0,
				"owner": {"_account_id": 2, "name": "Bob"}
			}
		]`
		fmt.Fprint(w, ")]}'\n"+body)
	})
	return httptest.NewServer(mux)
}

// TestCollectAndReportVerification collects from a stub Gerrit server into a
// SQLite store and verifies the activity report against the served changes.
func TestCollectAndReportVerification(t *testing.T) {
	server := newStubGerritServer()
	defer server.Close()

	binaryPath := getGerritlensBinary()
	dbPath := filepath.Join(t.TempDir(), "points.db")

	baseArgs := []string{
		"--store-backend", "sqlite",
		"--store-db-connect", dbPath,
	}

	// --- 1. Collect two changes from the stub server ---
	collectArgs := append([]string{"collect",
		"--gerrit-url", server.URL,
		"--projects", "demo/app",
		"--start", "2026-08-01T00:00:00Z",
		"--end", "2026-08-03T00:00:00Z",
	}, baseArgs...)
	out := runBinary(t, binaryPath, collectArgs...)
	assert.Contains(t, out, "Collected 2 changes across 1 projects from 2 contributors")

	// --- 2. Verify store status sees the points ---
	statusArgs := append([]string{"store", "status"}, baseArgs...)
	out = runBinary(t, binaryPath, statusArgs...)
	assert.Contains(t, out, "commit_details")
	assert.Contains(t, out, "commits_review")

	// --- 3. Verify the activity report reflects the served changes ---
	reportArgs := append([]string{"report", "activity",
		"--start", "2026-08-01T00:00:00Z",
		"--end", "2026-08-03T00:00:00Z",
		"--output", "csv",
	}, baseArgs...)
	out = runBinary(t, binaryPath, reportArgs...)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "window_start,Commits,Insertions,Deletions", lines[0])

	// Both changes were created on August 1st: 2 commits, 122 insertions, 11 deletions.
	var dayOne string
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "2026-08-01T00:00:00Z") {
			dayOne = line
		}
	}
	require.NotEmpty(t, dayOne, "expected a row for the first collection day")
	assert.Equal(t, "2026-08-01T00:00:00Z,2.0,122.0,11.0", dayOne)
}

// runBinary runs the gerritlens binary and returns combined output.
func runBinary(t *testing.T, binaryPath string, args ...string) string {
	cmd := exec.Command(binaryPath, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %s\nOutput: %s", cmd.String(), buf.String())
	}
	return buf.String()
}
