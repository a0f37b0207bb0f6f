// Package sanitize is the ingestion-time trust boundary for untrusted text.
// Every user-supplied string field is passed through Clean before it is
// stored; render-time escaping in the handlers is a separate, independent
// defense and neither relies on the other.
package sanitize

import (
	"strings"
	"unicode"
)

const maxEntityLen = 32

// Clean turns an untrusted string into text that is safe to store and later
// embed in an HTML rendering context. It is pure, total and deterministic:
// invalid UTF-8 sequences are dropped, control characters (except \n, \t,
// \r) are stripped, and markup-significant characters are entity-encoded.
// Ampersands that already begin a character entity are left alone, so Clean
// is a fixed point: Clean(Clean(s)) == Clean(s).
func Clean(raw string) string {
	s := strings.ToValidUTF8(raw, "")
	s = stripControl(s)
	return escapeMarkup(s)
}

func stripControl(s string) string {
	// Fast path: most input has no control characters at all.
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func escapeMarkup(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		case '&':
			if startsEntity(s[i:]) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// startsEntity reports whether s begins with a complete character entity
// such as "&amp;", "&#34;" or "&#x27;". Only those ampersands are kept
// verbatim; everything else gets encoded.
func startsEntity(s string) bool {
	if len(s) < 3 || s[0] != '&' {
		return false
	}
	limit := len(s)
	if limit > maxEntityLen {
		limit = maxEntityLen
	}
	i := 1
	if s[i] == '#' {
		i++
		if i < limit && (s[i] == 'x' || s[i] == 'X') {
			i++
			start := i
			for i < limit && isHexDigit(s[i]) {
				i++
			}
			return i > start && i < limit && s[i] == ';'
		}
		start := i
		for i < limit && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i > start && i < limit && s[i] == ';'
	}
	start := i
	for i < limit && isAlphaNum(s[i]) {
		i++
	}
	return i > start && i < limit && s[i] == ';'
}

func isAlphaNum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
