// Package songlist parses the curated markdown list of songs to import.
// Entries look like "- Title — Artist (optional note)"; numbered lists are
// accepted and canonicalized to bullet form. The canonical line doubles as
// the song's identity in the progress ledger, so it must stay stable across
// runs.
package songlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Item is one requested song from the curated list. Key is the canonical
// source line and the ledger identity: two entries with the same title and
// artist but different surrounding text are distinct requests.
type Item struct {
	Title  string
	Artist string
	Key    string
}

var (
	emDashEntry = regexp.MustCompile(`^- (.+?) — (.+?)(?:\s*\(|$)`)
	hyphenEntry = regexp.MustCompile(`^- (.+?) - (.+?)(?:\s*\(|$)`)
	numbered    = regexp.MustCompile(`^\d+\.\s+(.*)$`)
)

// Parse reads the curated list, skipping blanks and comment headings.
func Parse(r io.Reader) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		canonical := raw
		if !strings.HasPrefix(raw, "- ") {
			match := numbered.FindStringSubmatch(raw)
			if match == nil {
				continue
			}
			canonical = "- " + strings.TrimSpace(match[1])
		}

		title, artist := splitEntry(canonical)
		if title == "" || artist == "" {
			continue
		}
		items = append(items, Item{Title: title, Artist: artist, Key: canonical})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read song list: %w", err)
	}
	return items, nil
}

// LoadFile parses the curated list at path.
func LoadFile(path string) ([]Item, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open song list: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// splitEntry extracts title and artist from a canonical bullet line. The
// em-dash separator is preferred; a plain hyphen is accepted as fallback.
func splitEntry(line string) (title, artist string) {
	for _, pattern := range []*regexp.Regexp{emDashEntry, hyphenEntry} {
		if match := pattern.FindStringSubmatch(line); match != nil {
			return strings.TrimSpace(match[1]), strings.TrimSpace(match[2])
		}
	}
	return "", ""
}
