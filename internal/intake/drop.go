package intake

import (
	"net/url"
	"runtime"
	"strings"
)

// NormalizeDroppedPath turns text pasted by a terminal drag and drop into a
// file path. Terminals quote the path, escape spaces with backslashes or
// paste a file:// URI; multi-file drops keep only the first path.
func NormalizeDroppedPath(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if line, _, found := strings.Cut(text, "\n"); found {
		text = strings.TrimSpace(line)
	}

	if strings.HasPrefix(text, "file://") {
		if u, err := url.Parse(text); err == nil && u.Path != "" {
			return u.Path
		}
	}

	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '\'' || first == '"') && last == first {
			return text[1 : len(text)-1]
		}
	}

	if runtime.GOOS == "windows" {
		return text
	}
	return unescapeSpaces(text)
}

// unescapeSpaces drops the backslash from shell-escaped characters and stops
// at the first unescaped space.
func unescapeSpaces(text string) string {
	var b strings.Builder
	escaped := false
	for _, r := range text {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ' ':
			return b.String()
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
