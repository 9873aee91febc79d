package dispatchers

import (
	"strconv"
	"strings"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

const (
	separator = ' '
	quote     = '"'
	escape    = '\\'
)

// StringReader is a cursor over an immutable input string. Every read
// advances the cursor; errors report the cursor position they occurred at.
type StringReader struct {
	input  string
	cursor int
}

// NewStringReader returns a reader positioned at the start of input.
func NewStringReader(input string) *StringReader {
	return &StringReader{input: input}
}

// Input returns the full underlying string.
func (r *StringReader) Input() string { return r.input }

// Cursor returns the current read offset.
func (r *StringReader) Cursor() int { return r.cursor }

// SetCursor moves the cursor; values are clamped to the input bounds.
func (r *StringReader) SetCursor(cursor int) {
	r.cursor = max(0, min(cursor, len(r.input)))
}

// Remaining returns the unread part of the input.
func (r *StringReader) Remaining() string { return r.input[r.cursor:] }

// Read returns the consumed part of the input.
func (r *StringReader) Read() string { return r.input[:r.cursor] }

// CanRead reports whether at least n more bytes are available.
func (r *StringReader) CanRead(n int) bool { return r.cursor+n <= len(r.input) }

// AtEnd reports whether the input is exhausted.
func (r *StringReader) AtEnd() bool { return r.cursor >= len(r.input) }

// Peek returns the byte at the cursor without advancing.
func (r *StringReader) Peek() (byte, error) {
	if r.AtEnd() {
		return 0, usage.EndOfInput(r.input, r.cursor)
	}
	return r.input[r.cursor], nil
}

// Skip advances the cursor by one byte.
func (r *StringReader) Skip() {
	if !r.AtEnd() {
		r.cursor++
	}
}

// SkipWhitespace advances past any run of separators.
func (r *StringReader) SkipWhitespace() {
	for !r.AtEnd() && r.input[r.cursor] == separator {
		r.cursor++
	}
}

// ExpectSeparator consumes exactly one separator.
func (r *StringReader) ExpectSeparator() error {
	if r.AtEnd() || r.input[r.cursor] != separator {
		return usage.ExpectedSeparator(r.input, r.cursor)
	}
	r.cursor++
	return nil
}

// peekToken returns the run of non-separator bytes at the cursor without
// consuming it.
func (r *StringReader) peekToken() string {
	rest := r.Remaining()
	if i := strings.IndexByte(rest, separator); i >= 0 {
		return rest[:i]
	}
	return rest
}

// ReadUnquotedString consumes a maximal run of non-separator bytes.
// It may return an empty string.
func (r *StringReader) ReadUnquotedString() string {
	tok := r.peekToken()
	r.cursor += len(tok)
	return tok
}

// ReadQuotedString consumes a double-quoted span and returns its content
// with escapes resolved. Only \" and \\ are valid escapes.
func (r *StringReader) ReadQuotedString() (string, error) {
	start := r.cursor
	ch, err := r.Peek()
	if err != nil {
		return "", err
	}
	if ch != quote {
		return "", usage.ExpectedQuote(r.input, start)
	}
	r.cursor++

	var b strings.Builder
	escaped := false
	for !r.AtEnd() {
		c := r.input[r.cursor]
		r.cursor++
		switch {
		case escaped:
			if c != quote && c != escape {
				r.cursor--
				return "", usage.InvalidEscape(r.input, r.cursor, c)
			}
			b.WriteByte(c)
			escaped = false
		case c == escape:
			escaped = true
		case c == quote:
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}

	r.cursor = start
	return "", usage.UnterminatedQuote(r.input, len(r.input))
}

// ReadString reads a quoted string if the next byte is a quote, otherwise
// an unquoted one.
func (r *StringReader) ReadString() (string, error) {
	if ch, err := r.Peek(); err == nil && ch == quote {
		return r.ReadQuotedString()
	}
	return r.ReadUnquotedString(), nil
}

// ReadInt reads a base-10 integer token. On failure the cursor is restored.
func (r *StringReader) ReadInt() (int, error) {
	start := r.cursor
	tok := r.ReadUnquotedString()
	n, err := strconv.Atoi(tok)
	if err != nil {
		r.cursor = start
		return 0, usage.InvalidInteger(r.input, start, tok)
	}
	return n, nil
}

// ReadBool reads "true" or "false". On failure the cursor is restored.
func (r *StringReader) ReadBool() (bool, error) {
	start := r.cursor
	tok := r.ReadUnquotedString()
	switch tok {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	r.cursor = start
	return false, usage.InvalidBool(r.input, start, tok)
}
