package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf)

	_, err := w.Printf("%s x%d\n", "speed", 2)
	require.NoError(t, err)
	_, err = w.Println("done")
	require.NoError(t, err)

	require.Equal(t, "speed x2\ndone\n", buf.String())
}

func TestWriter_PagerWritesDirectlyWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, WithEnvGetter(func(string) string { return "less" }))

	w.Pager("kill2 [<target>]\n")
	require.Equal(t, "kill2 [<target>]\n", buf.String())
}

func TestWriter_PagerDisabled(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, WithPagerDisabled())

	w.Pager("help\n")
	require.Equal(t, "help\n", buf.String())
}

func TestWriter_RunPagerCmdBypassesCat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf)

	w.runPagerCmd("cat", "content")
	require.Equal(t, "content", buf.String())

	buf.Reset()
	w.runPagerCmd("   ", "blank")
	require.Equal(t, "blank", buf.String())
}
