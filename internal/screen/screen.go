package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/yuchen/rootdrill/internal/ui/layout"
)

// Screen is one view in the navigation stack.
type Screen interface {
	// Init returns the command to run when the screen first appears.
	Init() tea.Cmd

	// Update reacts to a message and returns the replacement screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content region between header and footer.
	View(width, height int) string

	// Title is shown in the header bar.
	Title() string
}

// KeyHintProvider lets a screen contribute its own footer key hints in
// addition to the global ones.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
