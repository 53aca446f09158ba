package scan

import "strings"

const titleMaxRunes = 50

// DeriveTitle builds the short history label from solution text: first
// non-blank line, markdown emphasis and header markers stripped, cut to
// 50 runes, trailing ellipsis. Text with no usable line falls back to
// UntitledTitle.
func DeriveTitle(solution string) string {
	line := stripMarkers(firstLine(solution))
	if line == "" {
		return UntitledTitle
	}
	r := []rune(line)
	if len(r) > titleMaxRunes {
		r = r[:titleMaxRunes]
	}
	return strings.TrimSpace(string(r)) + "..."
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func stripMarkers(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#")
	line = strings.ReplaceAll(line, "*", "")
	line = strings.ReplaceAll(line, "_", "")
	return strings.TrimSpace(line)
}
