package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchPriorityOrder(t *testing.T) {
	tree := NewTree()
	var calls []string

	tree.RegisterCommand("cmd", func(tx *Tx, payload any) bool {
		calls = append(calls, "low")
		return false
	}, 1)
	tree.RegisterCommand("cmd", func(tx *Tx, payload any) bool {
		calls = append(calls, "high")
		return false
	}, 3)
	tree.RegisterCommand("cmd", func(tx *Tx, payload any) bool {
		calls = append(calls, "normal")
		return false
	}, 2)

	handled := tree.Dispatch("cmd", nil)
	assert.False(t, handled)
	assert.Equal(t, []string{"high", "normal", "low"}, calls)
}

func TestDispatchStopsAtFirstHandled(t *testing.T) {
	tree := NewTree()
	var calls []string

	tree.RegisterCommand("cmd", func(tx *Tx, payload any) bool {
		calls = append(calls, "first")
		return true
	}, 2)
	tree.RegisterCommand("cmd", func(tx *Tx, payload any) bool {
		calls = append(calls, "second")
		return true
	}, 1)

	handled := tree.Dispatch("cmd", nil)
	assert.True(t, handled)
	assert.Equal(t, []string{"first"}, calls)
}

func TestDispatchUnknownCommand(t *testing.T) {
	tree := NewTree()
	assert.False(t, tree.Dispatch("nope", nil))
}

func TestDispatchPayloadPassthrough(t *testing.T) {
	tree := NewTree()
	var got any
	tree.RegisterCommand("cmd", func(tx *Tx, payload any) bool {
		got = payload
		return true
	}, 2)

	assert.True(t, tree.Dispatch("cmd", 42))
	assert.Equal(t, 42, got)
}
