package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuth marks a failure to obtain an auth token. Fatal to the run.
	ErrAuth = errors.New("authentication failure")
	// ErrExternalTool marks a failure reported by the importer script.
	// Recoverable: the runner falls back to the next candidate.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks an unusable configuration value.
	ErrConfiguration = errors.New("configuration error")
	// ErrMalformedArtifact marks an unreadable candidate batch document.
	// Fatal to the invocation; the ledger is left untouched.
	ErrMalformedArtifact = errors.New("malformed artifact")
)

// Wrap tags an error with one of the sentinel markers above while including
// component and operation context in the message.
func Wrap(marker error, component, operation string, err error) error {
	detail := buildDetail(component, operation)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation string) string {
	parts := make([]string, 0, 2)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
