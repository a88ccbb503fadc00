package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// WriteSongList writes a song list file and returns its path.
func WriteSongList(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// StubImporter writes an executable shell script that records each
// invocation's song ID to a capture file and exits with the given code.
// It returns the script path and the capture file path.
func StubImporter(t testing.TB, dir string, exitCode int) (string, string) {
	t.Helper()

	capture := filepath.Join(dir, "imported.txt")
	script := filepath.Join(dir, "add-song.sh")
	body := "#!/bin/sh\necho \"$1\" >> " + capture + "\nexit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub importer: %v", err)
	}
	return script, capture
}
