package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sorubot/internal/screen"
	"github.com/abhisek/sorubot/internal/workflow"
)

// Router shows the screen registered for the current workflow screen.
type Router struct {
	screens map[workflow.Screen]screen.Screen
	current workflow.Screen
	started bool
}

// New creates a Router over the given screens.
func New(screens map[workflow.Screen]screen.Screen) *Router {
	return &Router{screens: screens}
}

// Sync activates the screen for st.Screen, running its Init when the
// workflow has moved to a different screen.
func (r *Router) Sync(st workflow.State) tea.Cmd {
	if r.started && st.Screen == r.current {
		return nil
	}
	r.started = true
	r.current = st.Screen
	if s := r.Active(); s != nil {
		return s.Init(st)
	}
	return nil
}

// Current returns the workflow screen being shown.
func (r *Router) Current() workflow.Screen {
	return r.current
}

// Active returns the active screen, or nil if none is registered.
func (r *Router) Active() screen.Screen {
	return r.screens[r.current]
}

// Update forwards a message to the active screen.
func (r *Router) Update(msg tea.Msg, st workflow.State) tea.Cmd {
	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg, st)
	r.screens[r.current] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(st workflow.State, width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(st, width, height)
}
