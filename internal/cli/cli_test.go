package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpress/pkg/config"
	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/observability"
)

const testPuzzle = `{
	"title": "Tiny",
	"puzzle": [[1, 2, "#"], [3, 0, 4], ["#", 5, 0]],
	"clues": {
		"Across": [[1, "Feline"], [3, "Short for three"], [5, "Toward"]],
		"Down": [[2, "Lion's home"], [4, "Abbreviation"]]
	}
}`

// runCLI executes the root command with isolated config and cache dirs.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var logs bytes.Buffer
	root := New(&logs, log.InfoLevel).RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return logs.String(), err
}

func writePuzzle(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := writePuzzle(t, dir, "tiny.ipuz", testPuzzle)
	out := filepath.Join(dir, "out", "tiny.pdf")

	if _, err := runCLI(t, "convert", in, out, "--fontSize", "12", "--includeSolution"); err != nil {
		t.Fatalf("convert: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestConvertCommandJSON(t *testing.T) {
	dir := t.TempDir()
	in := writePuzzle(t, dir, "tiny.ipuz", testPuzzle)
	out := filepath.Join(dir, "tiny.json")

	if _, err := runCLI(t, "convert", in, out, "--format", "json", "--no-cache"); err != nil {
		t.Fatalf("convert: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("output is not valid JSON")
	}
}

func TestConvertCommandErrors(t *testing.T) {
	dir := t.TempDir()
	good := writePuzzle(t, dir, "good.ipuz", testPuzzle)
	bad := writePuzzle(t, dir, "bad.ipuz", `{"title": "no grid"}`)
	out := filepath.Join(dir, "out.pdf")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"malformed puzzle", []string{"convert", bad, out}, errors.ErrCodeMalformedPuzzle},
		{"missing input", []string{"convert", filepath.Join(dir, "nope.ipuz"), out}, errors.ErrCodeMalformedPuzzle},
		{"two formats", []string{"convert", good, out, "--format", "pdf,json"}, errors.ErrCodeInvalidFormat},
		{"unknown format", []string{"convert", good, out, "--format", "svg"}, errors.ErrCodeInvalidFormat},
		{"bad columns", []string{"convert", good, out, "--clueColumns", "-2"}, errors.ErrCodeInvalidInput},
		{"missing config", []string{"convert", good, out, "--config", filepath.Join(dir, "none.toml")}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestConvertCommandArgs(t *testing.T) {
	if _, err := runCLI(t, "convert", "only-one.ipuz"); err == nil {
		t.Error("convert with one argument succeeded")
	}
}

func TestBatchCommand(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "pdfs")
	writePuzzle(t, in, "one.ipuz", testPuzzle)
	writePuzzle(t, in, "two.IPUZ", testPuzzle)
	writePuzzle(t, in, "notes.txt", "not a puzzle")

	logs, err := runCLI(t, "batch", in, out, "--workers", "2", "--format", "pdf,json")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	for _, name := range []string{"one.pdf", "one.json", "two.pdf", "two.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "notes.pdf")); err == nil {
		t.Error("non-puzzle file was converted")
	}
	if !strings.Contains(logs, "Processed 2 puzzles") {
		t.Errorf("logs missing summary:\n%s", logs)
	}
}

func TestBatchCommandPartialFailure(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePuzzle(t, in, "good.ipuz", testPuzzle)
	writePuzzle(t, in, "broken.ipuz", `{"puzzle": [[1, 2], [3]]}`)

	_, err := runCLI(t, "batch", in, out)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Fatalf("batch err = %v, want partial failure", err)
	}
	if _, err := os.Stat(filepath.Join(out, "good.pdf")); err != nil {
		t.Errorf("good puzzle not rendered after a failure: %v", err)
	}
}

func TestBatchCommandMissingDir(t *testing.T) {
	_, err := runCLI(t, "batch", filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestConfigFileDefaults(t *testing.T) {
	dir := t.TempDir()
	in := writePuzzle(t, dir, "tiny.ipuz", testPuzzle)
	out := filepath.Join(dir, "tiny.json")
	cfg := filepath.Join(dir, "gridpress.toml")
	if err := os.WriteFile(cfg, []byte("[render]\npaper_size = \"legal\"\n\n[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "--config", cfg, "convert", in, out, "--format", "json"); err != nil {
		t.Fatalf("convert: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"height": 1008`)) {
		t.Errorf("config paper size not applied:\n%s", data)
	}
}

func TestRunnerKeyPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "puzzle:abc"},
		{"staging:", "staging:puzzle:abc"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			c := New(&bytes.Buffer{}, log.InfoLevel)
			c.cfg.Cache.Backend = config.BackendNone
			c.cfg.Cache.Prefix = tt.prefix

			r, err := c.newRunner(context.Background(), false)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			if got := r.Keyer.PuzzleKey("abc"); got != tt.want {
				t.Errorf("PuzzleKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	in := writePuzzle(t, dir, "tiny.ipuz", testPuzzle)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Cleanup(observability.Reset)

	exec := func(args ...string) error {
		root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
		root.SetArgs(args)
		return root.ExecuteContext(context.Background())
	}

	if err := exec("convert", in, filepath.Join(dir, "tiny.pdf")); err != nil {
		t.Fatalf("convert: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(cacheHome, appName))
	if err != nil || len(entries) == 0 {
		t.Fatalf("cache dir empty after convert: %v", err)
	}

	if err := exec("cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ = os.ReadDir(filepath.Join(cacheHome, appName))
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after clear", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	for shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			if _, err := runCLI(t, "completion", shell); err != nil {
				t.Errorf("completion %s: %v", shell, err)
			}
		})
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded")
	}
}

func TestVersionFlag(t *testing.T) {
	if _, err := runCLI(t, "--version"); err != nil {
		t.Errorf("--version: %v", err)
	}
}
