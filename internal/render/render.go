// Package render turns raw analysis text from the model into safe HTML
// fragments and formats video metadata for display.
package render

import (
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"
)

var (
	boldPattern      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern    = regexp.MustCompile(`\*(.+?)\*`)
	timestampPattern = regexp.MustCompile(`\((\d{1,2}:\d{2})\)`)
)

// Analysis converts the markdown-lite analysis body into HTML. The text is
// escaped first; the substitutions then run in a fixed order: bold, italic,
// line breaks, timestamp highlighting. The order is load-bearing: the
// italic pass must not see the double asterisks the bold pass consumes, and
// timestamp spans must wrap plain text, not tag innards.
func Analysis(text string) template.HTML {
	s := html.EscapeString(text)

	s = boldPattern.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicPattern.ReplaceAllString(s, "<em>$1</em>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = timestampPattern.ReplaceAllString(s, `<span class="timestamp">($1)</span>`)

	return template.HTML(s)
}

// Duration formats a duration in seconds as H:MM:SS, or M:SS below one hour.
// Zero or negative durations come back as "Unknown", meaning the metadata
// fetch failed or the field was absent.
func Duration(seconds int) string {
	if seconds <= 0 {
		return "Unknown"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// YesNo renders a boolean flag the way the result panel shows it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
