package session

import (
	"errors"

	"github.com/oskarlind/sideline/internal/game"
)

var errNothingCaptured = errors.New("command has no captured state to restore")

// Command is one undoable coach action.
type Command interface {
	Execute() error
	Undo() error
	Description() string
}

// snapshotCommand implements Command by capturing a full state snapshot
// before applying the action. Game state is small (one roster, a handful of
// timing fields), so whole-state snapshots are cheaper than per-command
// inverse logic and can never drift from it.
type snapshotCommand struct {
	state  *game.GameState
	apply  func() error
	desc   string
	before *game.GameState
}

func newCommand(state *game.GameState, desc string, apply func() error) Command {
	return &snapshotCommand{state: state, apply: apply, desc: desc}
}

func (c *snapshotCommand) Execute() error {
	c.before = c.state.Clone()
	if err := c.apply(); err != nil {
		c.before = nil
		return err
	}
	return nil
}

func (c *snapshotCommand) Undo() error {
	if c.before == nil {
		return errNothingCaptured
	}
	c.state.RestoreFrom(c.before)
	return nil
}

func (c *snapshotCommand) Description() string {
	return c.desc
}

// CommandManager tracks executed commands for undo/redo. New commands
// truncate the redo tail; history is bounded.
type CommandManager struct {
	maxHistory int
	history    []Command
	current    int
}

const defaultMaxHistory = 50

// NewCommandManager returns a manager with the default history bound.
func NewCommandManager() *CommandManager {
	return &CommandManager{maxHistory: defaultMaxHistory, current: -1}
}

// Execute runs the command and, on success, records it.
func (m *CommandManager) Execute(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	m.history = append(m.history[:m.current+1], cmd)
	m.current++
	if len(m.history) > m.maxHistory {
		m.history = m.history[1:]
		m.current--
	}
	return nil
}

// Undo reverts the most recent command. Returns false when there is
// nothing to undo.
func (m *CommandManager) Undo() bool {
	if !m.CanUndo() {
		return false
	}
	if err := m.history[m.current].Undo(); err != nil {
		return false
	}
	m.current--
	return true
}

// Redo re-executes the next command after an undo.
func (m *CommandManager) Redo() bool {
	if !m.CanRedo() {
		return false
	}
	if err := m.history[m.current+1].Execute(); err != nil {
		return false
	}
	m.current++
	return true
}

// CanUndo reports whether an undo is available.
func (m *CommandManager) CanUndo() bool {
	return m.current >= 0
}

// CanRedo reports whether a redo is available.
func (m *CommandManager) CanRedo() bool {
	return m.current < len(m.history)-1
}

// History lists descriptions of all recorded commands, oldest first.
func (m *CommandManager) History() []string {
	out := make([]string, len(m.history))
	for i, cmd := range m.history {
		out[i] = cmd.Description()
	}
	return out
}

// Clear drops all history, e.g. after a roster replace or a load.
func (m *CommandManager) Clear() {
	m.history = nil
	m.current = -1
}
