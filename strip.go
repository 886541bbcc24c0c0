package fstream

import (
	"strings"

	"golang.org/x/net/html"
)

// stripTags removes markup tags, comments and doctypes from line and keeps
// the remaining text byte for byte. Entities are not decoded. The line
// terminator is always kept, even after an unterminated tag.
func stripTags(line string) string {
	if !strings.ContainsRune(line, '<') {
		return line
	}

	body, eol := splitTerminator(line)

	var b strings.Builder
	b.Grow(len(line))

	z := html.NewTokenizer(strings.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			b.WriteString(eol)
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		}
	}
}

// splitTerminator separates a trailing "\n" or "\r\n" from line.
func splitTerminator(line string) (body, eol string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}
