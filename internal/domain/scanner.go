package domain

import "strings"

// The helpers below form a small recursive-descent scanner over balanced
// delimiters. It understands string literals and comments well enough to
// skip them, and nothing else of the analyzed language.

var closerFor = map[byte]byte{'(': ')', '[': ']', '{': '}'}

func isQuote(c byte) bool {
	return c == '\'' || c == '"' || c == '`'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func commentStart(s string, i int) bool {
	return i+1 < len(s) && s[i] == '/' && (s[i+1] == '/' || s[i+1] == '*')
}

// skipComment returns the index just past the comment starting at i.
func skipComment(s string, i int) int {
	if s[i+1] == '/' {
		end := strings.IndexByte(s[i:], '\n')
		if end < 0 {
			return len(s)
		}

		return i + end + 1
	}

	end := strings.Index(s[i+2:], "*/")
	if end < 0 {
		return len(s)
	}

	return i + 2 + end + 2
}

// skipString returns the index just past the string literal opened at i.
// An unterminated literal runs to the end of the text.
func skipString(s string, i int) int {
	quote := s[i]

	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			if quote != '`' {
				return j + 1
			}
		}
	}

	return len(s)
}

// skipTrivia skips whitespace and comments starting at i.
func skipTrivia(s string, i int) int {
	for i < len(s) {
		switch {
		case isSpace(s[i]):
			i++
		case commentStart(s, i):
			i = skipComment(s, i)
		default:
			return i
		}
	}

	return i
}

func scanIdent(s string, i int) int {
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}

	return i
}

// matchBalanced returns the index of the delimiter closing the one at open.
// It fails on a mismatched closer or when the text ends first.
func matchBalanced(s string, open int) (int, bool) {
	stack := []byte{closerFor[s[open]]}

	for i := open + 1; i < len(s); {
		c := s[i]

		switch {
		case commentStart(s, i):
			i = skipComment(s, i)
		case isQuote(c):
			i = skipString(s, i)
		case closerFor[c] != 0:
			stack = append(stack, closerFor[c])
			i++
		case c == ')' || c == ']' || c == '}':
			if stack[len(stack)-1] != c {
				return 0, false
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}

			i++
		default:
			i++
		}
	}

	return 0, false
}

// indexCode finds keyword in s outside comments and string literals.
func indexCode(s, keyword string, from int) int {
	for i := from; i < len(s); {
		switch {
		case commentStart(s, i):
			i = skipComment(s, i)
		case isQuote(s[i]):
			i = skipString(s, i)
		case strings.HasPrefix(s[i:], keyword):
			return i
		default:
			i++
		}
	}

	return -1
}

// splitTopLevel splits a list body at commas that are not nested in any
// delimiter, string or comment. Empty elements are dropped.
func splitTopLevel(s string) []string {
	var (
		parts []string
		start int
	)

	flush := func(end int) {
		part := strings.TrimSpace(s[start:end])
		if part != "" {
			parts = append(parts, part)
		}
	}

	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case commentStart(s, i):
			i = skipComment(s, i)
		case isQuote(c):
			i = skipString(s, i)
		case closerFor[c] != 0:
			end, ok := matchBalanced(s, i)
			if !ok {
				flush(len(s))
				return parts
			}

			i = end + 1
		case c == ',':
			flush(i)
			i++
			start = i
		default:
			i++
		}
	}

	flush(len(s))

	return parts
}

// topLevelProperties returns `key: value` pairs at depth zero of an object
// body, keyed by the first occurrence of each key. Values are raw text.
func topLevelProperties(body string) map[string]string {
	props := make(map[string]string)

	for _, element := range splitTopLevel(body) {
		i := skipTrivia(element, 0)
		if i >= len(element) || !isIdentStart(element[i]) {
			continue
		}

		end := scanIdent(element, i)
		key := element[i:end]

		colon := skipTrivia(element, end)
		if colon >= len(element) || element[colon] != ':' {
			continue
		}

		if _, seen := props[key]; !seen {
			props[key] = strings.TrimSpace(element[colon+1:])
		}
	}

	return props
}

// topLevelLists returns the bodies of `key: [ ... ]` lists at depth zero of
// an object body, keyed by the first occurrence of each key.
func topLevelLists(body string) map[string]string {
	lists := make(map[string]string)

	for i := 0; i < len(body); {
		c := body[i]

		switch {
		case commentStart(body, i):
			i = skipComment(body, i)
		case isQuote(c):
			i = skipString(body, i)
		case closerFor[c] != 0:
			end, ok := matchBalanced(body, i)
			if !ok {
				return lists
			}

			i = end + 1
		case isIdentStart(c):
			end := scanIdent(body, i)
			key := body[i:end]
			i = end

			colon := skipTrivia(body, end)
			if colon >= len(body) || body[colon] != ':' {
				continue
			}

			open := skipTrivia(body, colon+1)
			if open >= len(body) || body[open] != '[' {
				continue
			}

			closing, ok := matchBalanced(body, open)
			if !ok {
				return lists
			}

			if _, seen := lists[key]; !seen {
				lists[key] = body[open+1 : closing]
			}

			i = closing + 1
		default:
			i++
		}
	}

	return lists
}

// identifiers lists identifier-shaped words of s in order. Comments are
// ignored; a string literal counts when its whole content is one identifier.
func identifiers(s string) []string {
	var out []string

	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case commentStart(s, i):
			i = skipComment(s, i)
		case isQuote(c):
			end := skipString(s, i)
			if content, ok := stringIdent(s[i:end]); ok {
				out = append(out, content)
			}

			i = end
		case isIdentPart(c):
			end := scanIdent(s, i)
			out = append(out, s[i:end])
			i = end
		default:
			i++
		}
	}

	return out
}

// stringIdent unwraps a quoted literal whose content is a single identifier.
func stringIdent(literal string) (string, bool) {
	if len(literal) < 2 || literal[len(literal)-1] != literal[0] {
		return "", false
	}

	content := literal[1 : len(literal)-1]
	if content == "" || !isIdentStart(content[0]) || scanIdent(content, 0) != len(content) {
		return "", false
	}

	return content, true
}

// valueIdent returns the identifier a property value names: a bare
// identifier or an identifier-shaped string literal.
func valueIdent(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if isQuote(value[0]) {
		content, _ := stringIdent(value)
		return content
	}

	if !isIdentStart(value[0]) || scanIdent(value, 0) != len(value) {
		return ""
	}

	return value
}
