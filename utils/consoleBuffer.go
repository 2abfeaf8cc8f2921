package utils

import (
	"strings"
	"sync"
)

// ConsoleBuffer keeps the last max console lines for a server so a fresh
// stream subscriber gets a replay without hitting the panel again. This is the
// only server-side state in the panel proxy.
type ConsoleBuffer struct {
	lines []string
	max   int
	mu    sync.Mutex
}

func NewConsoleBuffer(max int) *ConsoleBuffer {
	return &ConsoleBuffer{max: max}
}

func (b *ConsoleBuffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	b.lines = append(b.lines, line)
	if len(b.lines) > b.max {
		b.lines = b.lines[len(b.lines)-b.max:]
	}
}

func (b *ConsoleBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

var (
	consoleBuffers   = map[string]*ConsoleBuffer{}
	consoleBuffersMu sync.Mutex
)

// ConsoleBufferFor returns the shared buffer for a panel server id.
func ConsoleBufferFor(panelID string) *ConsoleBuffer {
	consoleBuffersMu.Lock()
	defer consoleBuffersMu.Unlock()
	buf, ok := consoleBuffers[panelID]
	if !ok {
		buf = NewConsoleBuffer(500)
		consoleBuffers[panelID] = buf
	}
	return buf
}
