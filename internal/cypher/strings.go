package cypher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// EncodeKey returns name unchanged when it is a valid bare identifier and
// otherwise wraps it in backticks, doubling any backticks it contains.
func (e *Encoder) EncodeKey(name string) (string, error) {
	if name == "" {
		return "", &EmptyIdentifierError{}
	}
	if isIdentifier(name) {
		return name, nil
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`", nil
}

func isIdentifier(name string) bool {
	for i, r := range name {
		if r == utf8.RuneError {
			return false
		}
		if i == 0 {
			if !isIdentifierStart(r) {
				return false
			}
		} else if !isIdentifierPart(r) {
			return false
		}
	}
	return true
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.In(r, unicode.L, unicode.Nl)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Sc)
}

// EncodeString renders s as a quoted string literal. With the automatic
// quote preference, whichever quote character occurs less often in s is
// used, single quotes winning a tie.
func (e *Encoder) EncodeString(s string) (string, error) {
	quote := e.quoteFor(s)
	if s == "" {
		return string([]byte{quote, quote}), nil
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(quote)
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				writeUnicodeEscape(&b, rune(s[i]))
				continue
			}
		}
		switch {
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		case r == '\\':
			b.WriteString(`\\`)
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		case r == '\b':
			b.WriteString(`\b`)
		case r == '\f':
			b.WriteString(`\f`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			writeUnicodeEscape(&b, r)
		}
	}
	b.WriteByte(quote)
	return b.String(), nil
}

func (e *Encoder) quoteFor(s string) byte {
	switch e.config.Quote {
	case QuoteSingle:
		return '\''
	case QuoteDouble:
		return '"'
	}
	if strings.Count(s, "'") <= strings.Count(s, `"`) {
		return '\''
	}
	return '"'
}

// writeUnicodeEscape writes r as \uXXXX, or \UXXXXXXXX outside the basic
// multilingual plane.
func writeUnicodeEscape(b *strings.Builder, r rune) {
	width := 4
	if r > 0xffff {
		b.WriteString(`\U`)
		width = 8
	} else {
		b.WriteString(`\u`)
	}
	for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(r>>uint(shift))&0xf])
	}
}
