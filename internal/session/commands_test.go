package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarlind/sideline/internal/game"
)

func TestCommandManagerTruncatesRedoTail(t *testing.T) {
	state := game.NewGameState()
	m := NewCommandManager()

	set := func(n int) Command {
		return newCommand(state, "set", func() error {
			state.GameLengthSeconds = n
			return nil
		})
	}

	require.NoError(t, m.Execute(set(100)))
	require.NoError(t, m.Execute(set(200)))
	require.True(t, m.Undo())
	assert.True(t, m.CanRedo())

	// A fresh command drops the redo branch.
	require.NoError(t, m.Execute(set(300)))
	assert.False(t, m.CanRedo())
	assert.Equal(t, 300, state.GameLengthSeconds)
	assert.Len(t, m.History(), 2)
}

func TestCommandManagerBoundsHistory(t *testing.T) {
	state := game.NewGameState()
	m := NewCommandManager()
	m.maxHistory = 3

	for i := 0; i < 5; i++ {
		require.NoError(t, m.Execute(newCommand(state, "noop", func() error { return nil })))
	}
	assert.Len(t, m.History(), 3)

	for i := 0; i < 3; i++ {
		assert.True(t, m.Undo())
	}
	assert.False(t, m.CanUndo(), "history beyond the bound is gone")
}
