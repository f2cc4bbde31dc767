package feed

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/sc-console-cli/internal/application"
	"github.com/bnema/sc-console-cli/internal/domain"
)

const toastLifetime = 4 * time.Second

type snapshotMsg struct {
	snapshot application.FeedSnapshot
}

type toastMsg struct {
	event domain.Event
}

type toastExpiredMsg struct {
	id int64
}

type model struct {
	center    *application.NotifyCenter
	snapshots <-chan application.FeedSnapshot
	toasts    <-chan domain.Event

	snapshot application.FeedSnapshot
	toast    *domain.Event
	styles   styles
}

func newModel(center *application.NotifyCenter, snapshots <-chan application.FeedSnapshot, toasts <-chan domain.Event) model {
	return model{
		center:    center,
		snapshots: snapshots,
		toasts:    toasts,
		snapshot:  center.Snapshot(),
		styles:    newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.snapshots), waitForToast(m.toasts))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snapshot = msg.snapshot
		return m, waitForSnapshot(m.snapshots)

	case toastMsg:
		event := msg.event
		m.toast = &event
		return m, tea.Batch(waitForToast(m.toasts), expireToast(event.ID))

	case toastExpiredMsg:
		if m.toast != nil && m.toast.ID == msg.id {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "v", "enter":
			m.center.MarkViewed()
			return m, nil
		case "c":
			m.center.ClearAll()
			return m, nil
		}
	}

	return m, nil
}

func (m model) View() string {
	return renderView(m.snapshot, m.toast, time.Now(), m.styles)
}

func waitForSnapshot(snapshots <-chan application.FeedSnapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-snapshots
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg{snapshot: snapshot}
	}
}

func waitForToast(toasts <-chan domain.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-toasts
		if !ok {
			return tea.Quit()
		}
		return toastMsg{event: event}
	}
}

func expireToast(id int64) tea.Cmd {
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Run drives the live feed until the user quits. The snapshot channel carries
// feed updates and the toast channel carries transient alerts; closing either
// ends the program.
func Run(center *application.NotifyCenter, snapshots <-chan application.FeedSnapshot, toasts <-chan domain.Event) error {
	p := tea.NewProgram(newModel(center, snapshots, toasts))

	_, err := p.Run()
	return err
}
