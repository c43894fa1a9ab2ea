// Package watch provides the live deck view: a full-screen render of the
// working snapshot that refreshes whenever another invocation mutates it.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/outbreak/internal/deck/application"
	"github.com/zjrosen/outbreak/internal/ui/deckview"
	"github.com/zjrosen/outbreak/internal/ui/styles"
)

// stateLoadedMsg carries a freshly rendered snapshot, or the load failure.
type stateLoadedMsg struct {
	view string
	err  error
}

// fileChangedMsg signals a coalesced change to the watched file.
type fileChangedMsg struct{}

// Model holds the watch view state.
type Model struct {
	store     application.SnapshotStore
	changes   <-chan struct{}
	statePath string
	clipboard Clipboard

	width     int
	height    int
	viewport  viewport.Model
	content   string
	loadErr   error
	updatedAt time.Time
	notice    string
}

// New creates a watch view reading the snapshot at statePath. Values arriving
// on changes trigger a reload.
func New(store application.SnapshotStore, changes <-chan struct{}, statePath string) Model {
	return Model{
		store:     store,
		changes:   changes,
		statePath: statePath,
		clipboard: SystemClipboard{},
		viewport:  viewport.New(0, 0),
	}
}

// Init loads the snapshot and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(reloadState(m.store, m.statePath), waitForChange(m.changes))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(m.width-2, 1)
		m.viewport.Height = max(m.height-2, 1)
		m.viewport.SetContent(m.bodyContent())
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, reloadState(m.store, m.statePath)
		case "c":
			if err := m.clipboard.Copy(ansi.Strip(m.content)); err != nil {
				m.notice = "copy failed"
			} else {
				m.notice = "copied"
			}
			return m, nil
		}

	case fileChangedMsg:
		return m, tea.Batch(reloadState(m.store, m.statePath), waitForChange(m.changes))

	case stateLoadedMsg:
		m.loadErr = msg.err
		m.notice = ""
		if msg.err == nil {
			m.content = msg.view
			m.updatedAt = time.Now()
		}
		m.viewport.SetContent(m.bodyContent())
		return m, nil
	}

	// Remaining keys drive viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the bordered deck view.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	note := "q quit · r reload · c copy"
	if m.notice != "" {
		note = m.notice
	} else if !m.updatedAt.IsZero() {
		note += " · " + m.updatedAt.Format("15:04:05")
	}

	title := "outbreak · " + filepath.Base(m.statePath)
	return styles.RenderTitledBorder(m.viewport.View(), title, note, m.width, m.height)
}

// bodyContent is the viewport content: the rendered state, prefixed with the
// load failure when the snapshot is unreadable. Stale content stays visible
// under the error so the table state is not lost to a half-written file.
func (m Model) bodyContent() string {
	if m.loadErr != nil {
		return styles.ErrorStyle.Render("snapshot unreadable: "+m.loadErr.Error()) + "\n\n" + m.content
	}
	return m.content
}

// SetSize updates the view dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-2, 1)
	m.viewport.Height = max(height-2, 1)
	return m
}

// reloadState re-reads and re-renders the snapshot off the UI loop.
func reloadState(store application.SnapshotStore, path string) tea.Cmd {
	return func() tea.Msg {
		state, err := store.Load(context.Background(), path)
		if err != nil {
			return stateLoadedMsg{err: err}
		}
		return stateLoadedMsg{view: deckview.Render(state)}
	}
}

// waitForChange blocks until the watcher reports a change, then re-arms.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Run blocks in the alternate screen until the user quits the watch view.
func Run(store application.SnapshotStore, statePath string, debounce time.Duration) error {
	watcher, err := NewWatcher(statePath, debounce)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	p := tea.NewProgram(New(store, watcher.Events(), statePath), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
