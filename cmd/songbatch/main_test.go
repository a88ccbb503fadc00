package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"songbatch/internal/batch"
	"songbatch/internal/ledger"
	"songbatch/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	ledgerPath string
	capture    string
	server     *httptest.Server
}

// newCLITestEnv stands up a fake catalog API, a stub importer script, and a
// config file pointing at both.
func newCLITestEnv(t *testing.T, songList string, results map[string][]map[string]any) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"idToken": "test-token"})
	})
	mux.HandleFunc("/song/list", func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("searchTerm")
		songs := results[term]
		if songs == nil {
			songs = []map[string]any{}
		}
		json.NewEncoder(w).Encode(songs)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	capture := filepath.Join(base, "imported.txt")
	script := filepath.Join(base, "add-song.sh")
	body := "#!/bin/sh\necho \"$1\" >> " + capture + "\nexit 0\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub importer: %v", err)
	}

	listPath := testsupport.WriteSongList(t, filepath.Join(base, "SONGS_TO_ADD.md"), songList)

	ledgerPath := filepath.Join(base, ".song_progress.json")
	configPath := filepath.Join(base, "config.toml")
	configBody := fmt.Sprintf(`
[api]
base_url = %q
auth_url = %q
api_key = "test-key"

[paths]
song_list = %q
ledger = %q
candidates = %q
log_dir = %q

[importer]
command = %q
`, server.URL, server.URL+"/auth", listPath, ledgerPath,
		filepath.Join(base, ".song_candidates.json"), filepath.Join(base, "logs"), script)
	if err := os.WriteFile(configPath, []byte(configBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		baseDir:    base,
		configPath: configPath,
		ledgerPath: ledgerPath,
		capture:    capture,
		server:     server,
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func (env *cliTestEnv) loadLedger(t *testing.T) *ledger.Ledger {
	t.Helper()

	store, err := ledger.Open(env.ledgerPath)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer store.Close()
	led, err := store.Load()
	if err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	return led
}

func (env *cliTestEnv) importedIDs(t *testing.T) []string {
	t.Helper()

	data, err := os.ReadFile(env.capture)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read capture: %v", err)
	}
	return strings.Fields(string(data))
}

func TestRunImportsAndIsResumable(t *testing.T) {
	env := newCLITestEnv(t, "# Songs\n- Blue — X\n- Red — Y\n", map[string][]map[string]any{
		"Blue": {{"id": "b1", "title": "Blue", "artist": "X", "popularityScore": 5.0}},
		"Red":  {{"id": "r1", "title": "Red", "artist": "Y", "popularityScore": 3.0}},
	})

	out, err := runCLI(t, "--config", env.configPath, "run", "1")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if got := env.importedIDs(t); len(got) != 1 || got[0] != "b1" {
		t.Fatalf("imported = %v", got)
	}

	// Second invocation picks up where the first stopped.
	out, err = runCLI(t, "--config", env.configPath, "run", "1")
	if err != nil {
		t.Fatalf("second run: %v\n%s", err, out)
	}
	if got := env.importedIDs(t); len(got) != 2 || got[1] != "r1" {
		t.Fatalf("imported = %v", got)
	}

	led := env.loadLedger(t)
	if len(led.Added) != 2 || len(led.Processed) != 2 {
		t.Fatalf("ledger = %+v", led)
	}
}

func TestRunDryRunLeavesNoImportTrace(t *testing.T) {
	env := newCLITestEnv(t, "- Blue — X\n", map[string][]map[string]any{
		"Blue": {{"id": "b1", "title": "Blue", "artist": "X", "popularityScore": 5.0}},
	})

	out, err := runCLI(t, "--config", env.configPath, "run", "1", "--dry-run")
	if err != nil {
		t.Fatalf("run --dry-run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Dry run") {
		t.Fatalf("output: %s", out)
	}
	if got := env.importedIDs(t); len(got) != 0 {
		t.Fatalf("importer invoked: %v", got)
	}
	led := env.loadLedger(t)
	if len(led.Processed) != 0 {
		t.Fatalf("dry run wrote outcomes: %+v", led)
	}
}

func TestSearchThenCommit(t *testing.T) {
	env := newCLITestEnv(t, "- Blue — X\n", map[string][]map[string]any{
		"Blue": {
			{"id": "b1", "title": "Blue", "artist": "X", "popularityScore": 5.0},
			{"id": "b2", "title": "Blue (remix)", "artist": "Z", "popularityScore": 9.0},
		},
	})
	candidatesPath := filepath.Join(env.baseDir, ".song_candidates.json")

	out, err := runCLI(t, "--config", env.configPath, "search", "1")
	if err != nil {
		t.Fatalf("search: %v\n%s", err, out)
	}
	if got := env.importedIDs(t); len(got) != 0 {
		t.Fatalf("search imported: %v", got)
	}

	entries, err := batch.Load(candidatesPath)
	if err != nil {
		t.Fatalf("load candidates: %v", err)
	}
	if len(entries) != 1 || len(entries[0].Candidates) != 2 {
		t.Fatalf("entries = %+v", entries)
	}

	selected := "b1"
	entries[0].SelectedID = &selected
	if err := batch.Save(candidatesPath, entries); err != nil {
		t.Fatalf("save candidates: %v", err)
	}

	out, err = runCLI(t, "--config", env.configPath, "commit", candidatesPath)
	if err != nil {
		t.Fatalf("commit: %v\n%s", err, out)
	}
	if got := env.importedIDs(t); len(got) != 1 || got[0] != "b1" {
		t.Fatalf("imported = %v", got)
	}
	led := env.loadLedger(t)
	if len(led.Added) != 1 || led.Added[0].SongID != "b1" {
		t.Fatalf("ledger = %+v", led)
	}
}

func TestStatusAndPreview(t *testing.T) {
	env := newCLITestEnv(t, "- Blue — X\n- Red — Y\n", nil)

	out, err := runCLI(t, "--config", env.configPath, "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Next up:") || !strings.Contains(out, "Blue — X") {
		t.Fatalf("status output:\n%s", out)
	}

	out, err = runCLI(t, "--config", env.configPath, "preview", "1")
	if err != nil {
		t.Fatalf("preview: %v\n%s", err, out)
	}
	if !strings.Contains(out, `1. "Blue"`) {
		t.Fatalf("preview output:\n%s", out)
	}
}

func TestResetRemovesLedger(t *testing.T) {
	env := newCLITestEnv(t, "- Blue — X\n", map[string][]map[string]any{
		"Blue": {{"id": "b1", "title": "Blue", "artist": "X", "popularityScore": 1.0}},
	})

	if out, err := runCLI(t, "--config", env.configPath, "run", "1"); err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if _, err := os.Stat(env.ledgerPath); err != nil {
		t.Fatalf("ledger missing after run: %v", err)
	}

	out, err := runCLI(t, "--config", env.configPath, "reset")
	if err != nil {
		t.Fatalf("reset: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Progress reset.") {
		t.Fatalf("reset output: %s", out)
	}
	if _, err := os.Stat(env.ledgerPath); !os.IsNotExist(err) {
		t.Fatalf("ledger still present: %v", err)
	}

	out, err = runCLI(t, "--config", env.configPath, "reset")
	if err != nil {
		t.Fatalf("second reset: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No progress file to reset.") {
		t.Fatalf("second reset output: %s", out)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("init output: %s", out)
	}

	if out, err = runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatalf("second init without --overwrite succeeded:\n%s", out)
	}

	out, err = runCLI(t, "--config", target, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, out)
	}
	if !strings.Contains(out, "api.base_url") || !strings.Contains(out, "(unset)") {
		t.Fatalf("show output:\n%s", out)
	}
}
