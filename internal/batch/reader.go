package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// maxLineSize bounds a single batch line.
const maxLineSize = 64 * 1024

// Entry is one sentence of a batch file.
type Entry struct {
	Line      int
	Sentence  string
	Intensity dialect.Intensity
}

// ReadBatchFile reads sentences from a file. Entries without an intensity
// prefix get def.
func ReadBatchFile(filename string, def dialect.Intensity) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f, def)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file %s: %w", filename, err)
	}
	return entries, nil
}

// Parse reads batch entries from r.
func Parse(r io.Reader, def dialect.Intensity) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		intensity, sentence := splitIntensity(line, def)
		if sentence == "" {
			continue
		}
		entries = append(entries, Entry{Line: lineNo, Sentence: sentence, Intensity: intensity})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// splitIntensity strips a leading "low:", "medium:" or "high:" prefix.
// Any other text before a colon belongs to the sentence.
func splitIntensity(line string, def dialect.Intensity) (dialect.Intensity, string) {
	prefix, rest, ok := strings.Cut(line, ":")
	if !ok {
		return def, line
	}
	intensity, err := dialect.ParseIntensity(prefix)
	if err != nil {
		return def, line
	}
	return intensity, strings.TrimSpace(rest)
}
