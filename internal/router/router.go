// Package router owns the screen stack. Browse sits at the bottom and
// is never popped, so unwinding any navigation chain lands there.
package router

import (
	"github.com/yuchen/rootdrill/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg stacks a new screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// ReplaceScreenMsg swaps the top screen for another without growing the
// stack. Used when hopping between sibling training views.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the screen below the current one.
type PopScreenMsg struct{}

// HomeScreenMsg unwinds the whole stack back to browse.
type HomeScreenMsg struct{}

// Router is the screen stack.
type Router struct {
	stack []screen.Screen
}

// New creates a Router with root as its permanent bottom screen.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push stacks s and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s and runs its Init. On a bare root
// stack it behaves like Push, so the root screen itself is never lost.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) <= 1 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Pop drops the top screen. The bottom screen stays put.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
	return nil
}

// Home drops everything above the bottom screen.
func (r *Router) Home() tea.Cmd {
	r.stack = r.stack[:1]
	return nil
}

// Active returns the screen currently shown.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth reports how many screens are stacked.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages itself and forwards everything
// else to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case HomeScreenMsg:
		return r.Home()
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen at the given content size.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
