package calendar

import (
	"regexp"
	"strings"
)

// Title/tag extraction rules, applied in fixed priority order. Exactly one
// rule fires; the first match wins.
var (
	leadingPrefixRe   = regexp.MustCompile(`^([A-Za-z0-9_-]+):\s*(.+)$`)
	embeddedTagRe     = regexp.MustCompile(`(?i)\bcategory:\s*(\S+)`)
	embeddedTagStrip  = regexp.MustCompile(`(?i)\s*\bcategory:\s*\S+`)
	bracketTagRe      = regexp.MustCompile(`\[([^\]]+)\]`)
	bracketTagStripRe = regexp.MustCompile(`\s*\[[^\]]+\]`)
)

// ParseTitle extracts an optional category tag from an event title.
//
// Supported formats, in priority order:
//   - "CATEGORY: Event description"        -> ("CATEGORY", "Event description")
//   - "Event description category: tag"    -> ("tag", "Event description")
//   - "Event description [category]"       -> ("category", "Event description")
//   - "Event description"                  -> ("", "Event description")
//
// An empty title yields ("", "No title").
func ParseTitle(title string) (category, clean string) {
	if title == "" {
		return "", "No title"
	}

	if m := leadingPrefixRe.FindStringSubmatch(title); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}

	if m := embeddedTagRe.FindStringSubmatch(title); m != nil {
		clean = strings.TrimSpace(embeddedTagStrip.ReplaceAllString(title, ""))
		return m[1], clean
	}

	if m := bracketTagRe.FindStringSubmatch(title); m != nil {
		clean = strings.TrimSpace(bracketTagStripRe.ReplaceAllString(title, ""))
		return m[1], clean
	}

	return "", title
}
