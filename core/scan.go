package core

import (
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokSymbol tokenKind = iota
	tokNumber
	tokString
	tokPunct
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) is(text string) bool {
	return t.kind == tokPunct && t.text == text
}

func isSymbolStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSymbolChar(c byte) bool {
	return isSymbolStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// tokenize splits schema text into tokens, stripping // comments and
// remembering the 1-based source line of every token.
func tokenize(text string) ([]token, error) {
	var toks []token

	for lineno, line := range strings.Split(text, "\n") {
		n := lineno + 1

		for i := 0; i < len(line); {
			c := line[i]
			switch {
			case c == ' ' || c == '\t' || c == '\r':
				i++
			case c == '/' && i+1 < len(line) && line[i+1] == '/':
				// comment to end of line; quoted strings are consumed
				// whole below, so a // inside a label survives
				i = len(line)
			case isSymbolStart(c):
				j := i + 1
				for j < len(line) && isSymbolChar(line[j]) {
					j++
				}
				toks = append(toks, token{kind: tokSymbol, text: line[i:j], line: n})
				i = j
			case isDigit(c):
				j := i + 1
				for j < len(line) && (isSymbolChar(line[j])) {
					j++
				}
				toks = append(toks, token{kind: tokNumber, text: line[i:j], line: n})
				i = j
			case c == '"':
				j := strings.IndexByte(line[i+1:], '"')
				if j < 0 {
					return nil, NewSyntaxError(n, "unterminated string")
				}
				toks = append(toks, token{kind: tokString, text: line[i+1 : i+1+j], line: n})
				i += j + 2
			case strings.IndexByte("{}[]:;,#", c) >= 0:
				toks = append(toks, token{kind: tokPunct, text: string(c), line: n})
				i++
			default:
				return nil, NewSyntaxError(n, "unexpected character %q", string(c))
			}
		}
	}

	return toks, nil
}

// parseCount parses a decimal or 0x-prefixed array count / directive value.
func parseCount(t token) (int, error) {
	v, err := strconv.ParseInt(t.text, 0, 64)
	if err != nil {
		return 0, NewSyntaxError(t.line, "invalid number %q", t.text)
	}
	return int(v), nil
}
