package executor

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokInt
	tokFloat
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) is(punct string) bool {
	return t.kind == tokPunct && t.text == punct
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of query"
	case tokString:
		return "string literal"
	default:
		return "'" + t.text + "'"
	}
}

const punctuation = "().,[]=:|&~"

// lex splits a query string into tokens. String literals come back unquoted
// with escapes resolved.
func lex(src string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case strings.IndexByte(punctuation, c) >= 0:
			tokens = append(tokens, token{kind: tokPunct, text: string(c), pos: i})
			i++

		case c == '\'' || c == '"':
			s, next, err := lexString(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, text: s, pos: i})
			i = next

		case isDigit(c) || (c == '-' && i+1 < len(src) && isDigit(src[i+1])):
			start := i
			i++
			kind := tokInt
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				if src[i] == '.' {
					if kind == tokFloat || i+1 >= len(src) || !isDigit(src[i+1]) {
						break
					}
					kind = tokFloat
				}
				i++
			}
			tokens = append(tokens, token{kind: kind, text: src[start:i], pos: start})

		case c == '_' || isLetter(c):
			start := i
			for i < len(src) && (src[i] == '_' || isLetter(src[i]) || isDigit(src[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: src[start:i], pos: start})

		default:
			r := []rune(src[i:])[0]
			if unicode.IsPrint(r) {
				return nil, reject(rejectSyntax, "unexpected character %q at position %d", r, i)
			}
			return nil, reject(rejectSyntax, "unexpected character %U at position %d", r, i)
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(src)})
	return tokens, nil
}

func lexString(src string, start int) (string, int, error) {
	quote := src[start]
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\' && i+1 < len(src):
			next := src[i+1]
			if next == '\\' || next == '\'' || next == '"' {
				b.WriteByte(next)
			} else {
				b.WriteByte(c)
				b.WriteByte(next)
			}
			i += 2
		case c == '\n':
			return "", 0, reject(rejectSyntax, "unterminated string at position %d", start)
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, reject(rejectSyntax, "unterminated string at position %d", start)
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
