package content

import (
	"regexp"
	"strings"

	"github.com/Abraxas-365/resumegpt/assistant/generation"
)

var (
	// 1. / 1) / 1: / Q1: / Question 1:
	numberedItem = regexp.MustCompile(`(?i)^(?:q(?:uestion)?\s*)?\d+\s*[.):-]\s*(.*)$`)
	bulletItem   = regexp.MustCompile(`^[-*•+]\s+(.*)$`)

	boldStars   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnders  = regexp.MustCompile(`__(.+?)__`)
	italicStars = regexp.MustCompile(`\*(\S(?:[^*]*\S)?)\*`)
	codeTicks   = regexp.MustCompile("`([^`]+)`")

	// **Technical Questions** / __Behavioral__ on a line of their own
	emphasisOnly = regexp.MustCompile(`^(?:\*\*[^*]+\*\*|__[^_]+__):?$`)
)

// ParseNumberedList pulls the first n items out of a model's list answer.
// Numbered items win over bullets; lines that follow an item without a
// marker are joined to it unless they look like a section heading. Fewer
// than n items is a malformed response.
func ParseNumberedList(text string, n int) ([]string, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	items := collect(lines, numberedItem, bulletItem)
	if len(items) < n {
		if bullets := collect(lines, bulletItem, numberedItem); len(bullets) > len(items) {
			items = bullets
		}
	}

	if len(items) < n {
		return nil, generation.ErrMalformedResponse().
			WithDetail("expected", n).
			WithDetail("found", len(items))
	}
	return items[:n], nil
}

// collect gathers items started by marker. Lines matching skip are ignored,
// a blank line or a heading ends the current item. A marker with no text
// takes the next non-blank line as its item.
func collect(lines []string, marker, skip *regexp.Regexp) []string {
	var (
		items   []string
		current []string
		open    bool
	)
	flush := func() {
		if item := strings.TrimSpace(strings.Join(current, " ")); item != "" {
			items = append(items, item)
		}
		current = nil
		open = false
	}

	for _, raw := range lines {
		line := cleanLine(raw)
		switch {
		case line == "":
			if open && len(current) > 0 {
				flush()
			}
		case marker.MatchString(line):
			if open {
				flush()
			}
			if text := strings.TrimSpace(marker.FindStringSubmatch(line)[1]); text != "" {
				current = append(current, text)
			}
			open = true
		case isHeading(raw, line):
			if open {
				flush()
			}
		case skip.MatchString(line):
		case open:
			current = append(current, line)
		}
	}
	if open {
		flush()
	}
	return items
}

// isHeading reports whether a marker-less line labels a section rather than
// continuing an item
func isHeading(raw, clean string) bool {
	raw = strings.TrimSpace(raw)
	return strings.HasPrefix(raw, "#") ||
		emphasisOnly.MatchString(raw) ||
		strings.HasSuffix(clean, ":")
}

// cleanLine drops headings, markdown emphasis and surrounding whitespace
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#")
	s = boldStars.ReplaceAllString(s, "$1")
	s = boldUnders.ReplaceAllString(s, "$1")
	s = italicStars.ReplaceAllString(s, "$1")
	s = codeTicks.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
