package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdtree/internal/usage"
)

func TestStringReader_Peek(t *testing.T) {
	r := NewStringReader("ab")

	ch, err := r.Peek()
	require.NoError(t, err)
	require.Equal(t, byte('a'), ch)
	require.Equal(t, 0, r.Cursor(), "peek must not advance")

	r.Skip()
	r.Skip()
	_, err = r.Peek()
	require.Error(t, err)
	require.Equal(t, usage.ErrEndOfInput, usage.KindOf(err))
}

func TestStringReader_ReadUnquotedString(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		wantCursor int
	}{
		{name: "single word", input: "hello", want: "hello", wantCursor: 5},
		{name: "stops at separator", input: "hello world", want: "hello", wantCursor: 5},
		{name: "empty at separator", input: " hello", want: "", wantCursor: 0},
		{name: "empty input", input: "", want: "", wantCursor: 0},
		{name: "keeps punctuation", input: "@s rest", want: "@s", wantCursor: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewStringReader(tt.input)
			require.Equal(t, tt.want, r.ReadUnquotedString())
			require.Equal(t, tt.wantCursor, r.Cursor())
		})
	}
}

func TestStringReader_ReadQuotedString(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		wantCursor int
		wantKind   usage.ErrorKind
	}{
		{name: "simple", input: `"hello world"`, want: "hello world", wantCursor: 13},
		{name: "empty", input: `""`, want: "", wantCursor: 2},
		{name: "trailing input", input: `"a b" c`, want: "a b", wantCursor: 5},
		{name: "escaped quote", input: `"say \"hi\""`, want: `say "hi"`, wantCursor: 12},
		{name: "escaped backslash", input: `"a\\b"`, want: `a\b`, wantCursor: 6},
		{name: "unterminated", input: `"hello`, wantKind: usage.ErrUnterminatedQuote},
		{name: "dangling escape", input: `"hello\`, wantKind: usage.ErrUnterminatedQuote},
		{name: "invalid escape", input: `"a\nb"`, wantKind: usage.ErrInvalidEscape},
		{name: "not quoted", input: `hello`, wantKind: usage.ErrExpectedQuote},
		{name: "empty input", input: ``, wantKind: usage.ErrEndOfInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewStringReader(tt.input)
			got, err := r.ReadQuotedString()
			if tt.wantKind != usage.ErrUnknown {
				require.Error(t, err)
				require.Equal(t, tt.wantKind, usage.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.wantCursor, r.Cursor())
		})
	}
}

func TestStringReader_UnterminatedQuoteReportsEnd(t *testing.T) {
	r := NewStringReader(`tell2 "oops`)
	r.SetCursor(6)

	_, err := r.ReadQuotedString()
	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, len(`tell2 "oops`), ue.Cursor)
	require.Equal(t, 6, r.Cursor(), "cursor is restored on failure")
}

func TestStringReader_ReadString(t *testing.T) {
	r := NewStringReader(`"quoted words" bare`)

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "quoted words", s)

	require.NoError(t, r.ExpectSeparator())

	s, err = r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "bare", s)
	require.True(t, r.AtEnd())
}

func TestStringReader_ReadInt(t *testing.T) {
	r := NewStringReader("42 -7 x")

	n, err := r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, 42, n)

	r.Skip()
	n, err = r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, -7, n)

	r.Skip()
	_, err = r.ReadInt()
	require.Equal(t, usage.ErrInvalidInteger, usage.KindOf(err))
	require.Equal(t, 6, r.Cursor(), "cursor is restored on failure")
}

func TestStringReader_ReadBool(t *testing.T) {
	r := NewStringReader("true false maybe")

	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	r.Skip()
	b, err = r.ReadBool()
	require.NoError(t, err)
	require.False(t, b)

	r.Skip()
	_, err = r.ReadBool()
	require.Equal(t, usage.ErrInvalidBool, usage.KindOf(err))
}

func TestStringReader_Whitespace(t *testing.T) {
	r := NewStringReader("a   b")
	r.Skip()

	require.NoError(t, r.ExpectSeparator())
	require.Equal(t, 2, r.Cursor(), "exactly one separator is consumed")

	r.SkipWhitespace()
	require.Equal(t, 4, r.Cursor())

	err := r.ExpectSeparator()
	require.Equal(t, usage.ErrExpectedSeparator, usage.KindOf(err))
}

func TestStringReader_SetCursorClamps(t *testing.T) {
	r := NewStringReader("abc")

	r.SetCursor(10)
	require.Equal(t, 3, r.Cursor())
	require.Equal(t, "", r.Remaining())

	r.SetCursor(-1)
	require.Equal(t, 0, r.Cursor())
	require.Equal(t, "abc", r.Remaining())
	require.True(t, r.CanRead(3))
	require.False(t, r.CanRead(4))
}
