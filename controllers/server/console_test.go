package serverController

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConsoleTailFirstPoll(t *testing.T) {
	cur := []string{"a", "b", "c"}
	assert.Equal(t, cur, NewConsoleTail(nil, cur))
}

func TestNewConsoleTailFullOverlap(t *testing.T) {
	prev := []string{"a", "b", "c"}
	cur := []string{"a", "b", "c"}
	assert.Empty(t, NewConsoleTail(prev, cur))
}

func TestNewConsoleTailPartialOverlap(t *testing.T) {
	prev := []string{"a", "b", "c"}
	cur := []string{"b", "c", "d", "e"}
	assert.Equal(t, []string{"d", "e"}, NewConsoleTail(prev, cur))
}

// When the panel window scrolled past everything we saw, every line is fresh.
func TestNewConsoleTailNoOverlap(t *testing.T) {
	prev := []string{"a", "b"}
	cur := []string{"x", "y", "z"}
	assert.Equal(t, cur, NewConsoleTail(prev, cur))
}

// Prefers the longest overlap so repeated lines inside the window do not get
// re-emitted.
func TestNewConsoleTailRepeatedLines(t *testing.T) {
	prev := []string{"tick", "tick", "tick"}
	cur := []string{"tick", "tick", "tick", "done"}
	assert.Equal(t, []string{"done"}, NewConsoleTail(prev, cur))
}

func TestNewConsoleTailShrunkenWindow(t *testing.T) {
	prev := []string{"a", "b", "c", "d"}
	cur := []string{"d"}
	assert.Empty(t, NewConsoleTail(prev, cur))
}
