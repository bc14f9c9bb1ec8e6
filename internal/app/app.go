package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yuchen/rootdrill/internal/router"
	"github.com/yuchen/rootdrill/internal/screen"
	"github.com/yuchen/rootdrill/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	state  *State
	router *router.Router
	width  int
	height int
}

func newAppModel(state *State, initial screen.Screen) AppModel {
	return AppModel{
		state:  state,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "ctrl+b":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.HomeScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()

	header := layout.RenderHeader(
		active.Title(),
		m.state.MasteredCount(),
		m.state.ReviewedToday(context.Background()),
		m.state.Settings.DailyGoal,
		m.width,
	)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if m.router.Depth() > 1 {
		footerHints = append([]layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+B", Description: "Browse"},
		}, footerHints...)
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(provider.KeyHints(), footerHints...)
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program over the given state with the
// given root screen. The root screen is the browse view: navigating
// anywhere unknown lands back on it.
func Run(state *State, initial screen.Screen) error {
	p := tea.NewProgram(newAppModel(state, initial))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
