package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jumping-task/internal/core"
)

// KeyMapper translates Bubble Tea key messages to environment actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	withLeft bool
}

// NewKeyMapper creates a key mapper. withLeft enables the bindings for
// the left action.
func NewKeyMapper(withLeft bool) *KeyMapper {
	return &KeyMapper{withLeft: withLeft}
}

// MapKey translates a key message to an environment action. The second
// return is false when the key is not bound to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	switch msg.String() {
	case "right", "l", "d":
		return core.ActionRight, true
	case "up", " ", "k", "w":
		return core.ActionJump, true
	case "left", "h", "a":
		if km.withLeft {
			return core.ActionLeft, true
		}
	}
	return 0, false
}

// IsQuit reports whether the key is a quit request.
func (km *KeyMapper) IsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return true
	}
	return false
}

// IsRestart reports whether the key requests a fresh episode.
func (km *KeyMapper) IsRestart(msg tea.KeyMsg) bool {
	return msg.String() == "r"
}
