// Package scanner extracts lexical units from a single mcfunction line.
//
// Every function takes the full line and a byte offset and returns the unit
// starting exactly at that offset. Nothing here ever fails: unterminated
// quotes and unbalanced brackets simply extend the token to the end of the
// line.
package scanner

// Token is a lexically scanned substring of a line.
type Token struct {
	Text  string
	Start int // byte offset of the first character, never the cursor
}

// End returns the offset one past the last character of the token
func (t Token) End() int {
	return t.Start + len(t.Text)
}

// Closed reports whether the token is a bracket group that was terminated by ']'
func (t Token) Closed() bool {
	n := len(t.Text)
	return n > 0 && t.Text[n-1] == ']'
}

// SkipSpaces advances cursor across literal space characters (tabs are not skipped)
func SkipSpaces(line string, cursor int) int {
	for cursor >= 0 && cursor < len(line) && line[cursor] == ' ' {
		cursor++
	}
	return cursor
}

// NextWord returns the bare word or quoted string starting at cursor.
// A quoted string extends to one past the last unescaped closing quote on the
// line, or to the end of the line when no closing quote exists.
func NextWord(line string, cursor int) (Token, bool) {
	if !inBounds(line, cursor) {
		return Token{}, false
	}

	if line[cursor] == '"' {
		end := -1
		for i := cursor + 1; i < len(line); i++ {
			if line[i] != '"' || line[i-1] == '\\' {
				continue
			}
			end = i + 1
		}
		if end == -1 {
			end = len(line)
		}
		return Token{Text: line[cursor:end], Start: cursor}, true
	}

	end := cursor
	for end < len(line) && line[end] != ' ' {
		end++
	}
	if end == cursor {
		return Token{}, false
	}

	return Token{Text: line[cursor:end], Start: cursor}, true
}

// NextSelector returns the selector token starting at cursor: '@', the
// lowercase selector kind and, when immediately followed by '[', the whole
// balanced argument group.
func NextSelector(line string, cursor int) (Token, bool) {
	if !inBounds(line, cursor) || line[cursor] != '@' {
		return Token{}, false
	}

	end := cursor + 1
	for end < len(line) && isLower(line[end]) {
		end++
	}

	if end == cursor+1 || end >= len(line) || line[end] != '[' {
		return Token{Text: line[cursor:end], Start: cursor}, true
	}

	end = scanBracketGroup(line, end)
	return Token{Text: line[cursor:end], Start: cursor}, true
}

// NextBlockState returns the balanced '[...]' group starting at cursor
func NextBlockState(line string, cursor int) (Token, bool) {
	if !inBounds(line, cursor) || line[cursor] != '[' {
		return Token{}, false
	}

	end := scanBracketGroup(line, cursor)
	return Token{Text: line[cursor:end], Start: cursor}, true
}

// NextSelectorArgumentKey returns the run of lowercase letters and
// underscores starting at cursor
func NextSelectorArgumentKey(line string, cursor int) (Token, bool) {
	if !inBounds(line, cursor) {
		return Token{}, false
	}

	end := cursor
	for end < len(line) && (isLower(line[end]) || line[end] == '_') {
		end++
	}
	if end == cursor {
		return Token{}, false
	}

	return Token{Text: line[cursor:end], Start: cursor}, true
}

// Selector argument operators. These are the only two recognised.
const (
	OperatorEquals    = "="
	OperatorNotEquals = "=!"
)

// NextSelectorOperator recognises "=!" or "=" at cursor
func NextSelectorOperator(line string, cursor int) (Token, bool) {
	if !inBounds(line, cursor) || line[cursor] != '=' {
		return Token{}, false
	}

	if cursor+1 < len(line) && line[cursor+1] == '!' {
		return Token{Text: OperatorNotEquals, Start: cursor}, true
	}

	return Token{Text: OperatorEquals, Start: cursor}, true
}

// NextSelectorValue returns the selector argument value starting at cursor.
// Quoted values stop at the first unescaped closing quote so that a value
// never swallows the following key=value pairs.
func NextSelectorValue(line string, cursor int) (Token, bool) {
	if !inBounds(line, cursor) {
		return Token{}, false
	}

	if line[cursor] == '"' {
		end := len(line)
		for i := cursor + 1; i < len(line); i++ {
			if line[i] == '"' && line[i-1] != '\\' {
				end = i + 1
				break
			}
		}
		return Token{Text: line[cursor:end], Start: cursor}, true
	}

	end := cursor
	for end < len(line) && isValueChar(line[end]) {
		end++
	}
	if end == cursor {
		return Token{}, false
	}

	return Token{Text: line[cursor:end], Start: cursor}, true
}

// scanBracketGroup returns the offset one past the ']' balancing the '[' at
// open, ignoring brackets inside quoted strings. Unbalanced groups run to the
// end of the line.
func scanBracketGroup(line string, open int) int {
	depth := 1
	inString := false

	for i := open + 1; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"':
			if !inString {
				inString = true
			} else if line[i-1] != '\\' {
				inString = false
			}
		case inString:
			continue
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}

	return len(line)
}

func inBounds(line string, cursor int) bool {
	return cursor >= 0 && cursor < len(line)
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isValueChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == ':', c == '.', c == '-', c == '~', c == '^':
		return true
	}
	return false
}
