package cli

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/tcase/internal/judge"
	"github.com/ppiankov/tcase/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const watermelon = `<html><body><div class="problem-statement">
<div class="header"><div class="title">A. Watermelon</div>
<div class="time-limit"><div class="property-title">time limit per test</div>1 second</div></div>
<div class="input"><pre>8</pre></div><div class="output"><pre>YES</pre></div>
</div></body></html>`

// execute runs the root command with args, capturing both output streams
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func codeforcesConfig(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/problemset/problem/4/A", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, watermelon)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf("judges:\n  codeforces:\n    host: %s\n", server.URL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRoot_UnknownJudge(t *testing.T) {
	_, stderr, err := execute(t, "-o", "spoj", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, judge.ErrUnknownJudge))
	assert.Contains(t, stderr, "spoj Not implemented.")
}

func TestRoot_FetchesProblem(t *testing.T) {
	cfgPath := codeforcesConfig(t)
	outDir := t.TempDir()

	stdout, _, err := execute(t, "--config", cfgPath, "-o", "cf", "-d", outDir, "4a")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ 4A: 1 cases -> "+filepath.Join(outDir, "4A"))

	data, err := os.ReadFile(filepath.Join(outDir, "4A", "output", "0.out"))
	require.NoError(t, err)
	assert.Equal(t, "YES\n", string(data))
}

func TestRoot_DefaultsToWorkingDirectory(t *testing.T) {
	cfgPath := codeforcesConfig(t)
	t.Chdir(t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)

	stdout, _, err := execute(t, "--config", cfgPath, "-o", "cf", "-d", "", "4A")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ 4A: 1 cases -> "+filepath.Join(wd, "4A"))
	assert.FileExists(t, filepath.Join(wd, "4A", "info.txt"))
}

func TestRoot_FailureExitsNonZero(t *testing.T) {
	cfgPath := codeforcesConfig(t)
	outDir := t.TempDir()

	_, stderr, err := execute(t, "--config", cfgPath, "-o", "codeforces", "-d", outDir, "9Z", "4A")
	require.Error(t, err)
	assert.Contains(t, stderr, "✗ 9Z")

	// sequential runs stop at the first failure
	assert.NoDirExists(t, filepath.Join(outDir, "4A"))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tcase", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg model.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, model.DefaultConfig().HTTP.UserAgent, cfg.HTTP.UserAgent)
	assert.Equal(t, model.PDFBackendAuto, cfg.PDF.Backend)

	assert.Error(t, writeDefaultConfig(path), "existing config must not be overwritten")
}

func TestJudgesCommand(t *testing.T) {
	stdout, _, err := execute(t, "judges")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cf,codeforces")
	assert.Contains(t, stdout, "uva")
}
