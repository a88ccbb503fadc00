// Package importer shells out to the external add-song script that performs
// the actual catalog import. The script is a black box: a zero exit status
// means the song was added, anything else carries a failure message on
// stderr/stdout. Retrying across candidates is the runner's job, not ours.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"songbatch/internal/services"
)

// tokenEnvVar is the environment variable the add-song script reads its
// bearer token from.
const tokenEnvVar = "RHYTHM_PLUS_TOKEN"

// Importer performs a single import attempt for a remote song ID.
type Importer interface {
	Import(ctx context.Context, songID, token string) error
}

// Script invokes a local executable with the song ID as its argument.
type Script struct {
	command string
	timeout time.Duration
}

// NewScript builds a script-backed importer. A timeout of zero disables the
// per-invocation deadline.
func NewScript(command string, timeout time.Duration) (*Script, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, services.Wrap(services.ErrConfiguration, "importer", "command is required", nil)
	}
	return &Script{command: command, timeout: timeout}, nil
}

// Import runs the add-song script once. Overwrite prompts are auto-confirmed
// via stdin so an existing catalog entry does not stall the batch.
func (s *Script) Import(ctx context.Context, songID, token string) error {
	if strings.TrimSpace(songID) == "" {
		return services.Wrap(services.ErrExternalTool, "importer", "song id is empty", nil)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, s.command, songID)
	cmd.Env = append(os.Environ(), tokenEnvVar+"="+token)
	cmd.Stdin = strings.NewReader("y\n")
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(output.String())
		if detail == "" {
			detail = err.Error()
		}
		return services.Wrap(services.ErrExternalTool, "importer",
			fmt.Sprintf("add song %s", songID), fmt.Errorf("%s", detail))
	}
	return nil
}
