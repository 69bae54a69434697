package reply

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// ExtractJSON returns the JSON document embedded in a model reply. Code
// fences and prose around the outermost array or object are dropped.
func ExtractJSON(content string) (string, error) {
	s := strings.TrimSpace(content)
	if s == "" {
		return "", dialect.ErrEmptyResponse
	}

	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		rest = strings.TrimPrefix(rest, "JSON")
		if j := strings.Index(rest, "```"); j >= 0 {
			s = strings.TrimSpace(rest[:j])
		}
	}

	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return "", mismatch("no JSON document in reply: %s", abbreviate(s, 200))
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end < start {
		return "", mismatch("unterminated JSON document in reply: %s", abbreviate(s, 200))
	}
	return s[start : end+1], nil
}

func mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", dialect.ErrSchemaMismatch, fmt.Sprintf(format, args...))
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
