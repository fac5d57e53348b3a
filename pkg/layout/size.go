package layout

import (
	"regexp"
	"strings"
)

var (
	brTagRe   = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

var entityReplacer = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">")

// EstimateNodeSize derives a reasonable width and height for a shape from
// its label text. HTML breaks become newlines and remaining tags are
// stripped, then the widest line and line count drive the estimate, clamped
// between the defaults and a 280x200 ceiling.
func EstimateNodeSize(label string, defaultW, defaultH float64) (float64, float64) {
	text := brTagRe.ReplaceAllString(label, "\n")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = entityReplacer.Replace(text)

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		t := strings.TrimSpace(text)
		if t == "" {
			t = "X"
		}
		lines = []string{t}
	}

	maxChars := 0
	for _, l := range lines {
		if len(l) > maxChars {
			maxChars = len(l)
		}
	}

	w := max(defaultW, min(280, float64(maxChars)*8+20))
	h := max(defaultH, min(200, float64(len(lines))*22+16))
	return w, h
}
