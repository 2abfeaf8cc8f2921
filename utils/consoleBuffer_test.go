package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleBufferAppendAndReplay(t *testing.T) {
	buf := NewConsoleBuffer(10)
	buf.Append("server starting")
	buf.Append("world loaded\r\n")
	buf.Append("")

	lines := buf.Lines()
	assert.Equal(t, []string{"server starting", "world loaded"}, lines)
}

func TestConsoleBufferTrimsToCap(t *testing.T) {
	buf := NewConsoleBuffer(3)
	for i := 1; i <= 5; i++ {
		buf.Append(fmt.Sprintf("line %d", i))
	}

	lines := buf.Lines()
	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, lines)
}

func TestConsoleBufferLinesReturnsCopy(t *testing.T) {
	buf := NewConsoleBuffer(5)
	buf.Append("one")

	lines := buf.Lines()
	lines[0] = "mutated"

	assert.Equal(t, []string{"one"}, buf.Lines())
}

func TestConsoleBufferForReusesPerServer(t *testing.T) {
	a := ConsoleBufferFor("srv-a")
	b := ConsoleBufferFor("srv-a")
	c := ConsoleBufferFor("srv-b")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
