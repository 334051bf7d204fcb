package app

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

// A run of four or more placeholders, as the roster and metagame searches build for IN lists.
var placeholderRun = regexp.MustCompile(`\(\$(\d+)(?:, ?\$\d+){2,}, ?\$(\d+)\)`)

// formatDBQueryForTrace is the otelsql query formatter: one line, IN lists folded to their
// first and last placeholder, and a length cap.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	normalized = placeholderRun.ReplaceAllStringFunc(normalized, func(run string) string {
		m := placeholderRun.FindStringSubmatch(run)
		return fmt.Sprintf("($%s..$%s)", m[1], m[2])
	})

	if len(normalized) > maxTracedQueryLength {
		return normalized[:maxTracedQueryLength] + "..."
	}
	return normalized
}
