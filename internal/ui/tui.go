// Package ui provides the terminal interface. It renders the application
// state on every store change and drives the store through commands.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/choretracker-go/internal/command"
	"github.com/nibzard/choretracker-go/internal/due"
	"github.com/nibzard/choretracker-go/internal/state"
	"github.com/nibzard/choretracker-go/internal/store"
	"github.com/nibzard/choretracker-go/internal/task"
)

// Options configures the TUI.
type Options struct {
	Store    *store.Store[state.State]
	Commands *command.Commands
	// Interval is the time reference refresh period.
	Interval time.Duration
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		_ = opts.Store.Run(ctx, opts.Commands.TickTimeReference(opts.Interval))
	}()

	model := NewModel(ctx, opts)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// Model is the bubbletea model. It keeps the latest state snapshot.
type Model struct {
	ctx      context.Context
	store    *store.Store[state.State]
	cmds     *command.Commands
	interval time.Duration

	updates     <-chan state.State
	unsubscribe func()

	snapshot state.State
	cursor   int
	showHelp bool
	lastErr  error
}

type stateMsg state.State

type errMsg struct{ err error }

// NewModel subscribes a model to the store. Close releases the
// subscription.
func NewModel(ctx context.Context, opts Options) *Model {
	interval := opts.Interval
	if interval <= 0 {
		interval = command.DefaultTickInterval
	}
	updates, unsubscribe := subscribe(opts.Store)
	return &Model{
		ctx:         ctx,
		store:       opts.Store,
		cmds:        opts.Commands,
		interval:    interval,
		updates:     updates,
		unsubscribe: unsubscribe,
		snapshot:    opts.Store.State(),
	}
}

// Close unsubscribes from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// subscribe forwards store changes to a channel that always holds the
// latest snapshot only.
func subscribe(s *store.Store[state.State]) (<-chan state.State, func()) {
	ch := make(chan state.State, 1)
	unsubscribe := s.Subscribe(func(st state.State) {
		for {
			select {
			case ch <- st:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch, unsubscribe
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForState(), m.run(m.cmds.FetchAllTasks()))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case stateMsg:
		m.snapshot = state.State(msg)
		m.clampCursor()
		return m, m.waitForState()
	case errMsg:
		m.lastErr = msg.err
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "r", "f5":
		m.lastErr = nil
		return m.run(m.cmds.FetchAllTasks())
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "x", "delete":
		if t, ok := m.Selected(); ok {
			return m.run(m.cmds.DeleteTask(t.ID))
		}
	case "d":
		if len(m.snapshot.Notifications) > 0 {
			return m.run(m.cmds.Dismiss(m.snapshot.Notifications[0].ID))
		}
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

// Selected returns the task under the cursor.
func (m *Model) Selected() (task.Task, bool) {
	tasks := state.OrderedTasks(m.snapshot)
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.snapshot.TasksOrderedByDue)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) waitForState() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		select {
		case st := <-ch:
			return stateMsg(st)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// run executes a command off the update loop.
func (m *Model) run(t command.Thunk) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.Run(m.ctx, t); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.interval)
		return b.String()
	}

	writeNotifications(&b, m.snapshot)
	writeSummary(&b, m.snapshot)
	writeTasks(&b, m.snapshot, m.cursor)
	writeSelected(&b, m)
	if m.lastErr != nil {
		b.WriteString(faintStyle.Render("Last error: "+m.lastErr.Error()) + "\n\n")
	}
	writeFooter(&b, m.interval)
	return b.String()
}

func writeTitle(b *strings.Builder) {
	title := "Chore Tracker"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeNotifications(b *strings.Builder, s state.State) {
	if len(s.Notifications) == 0 {
		return
	}
	for _, n := range s.Notifications {
		b.WriteString(notificationStyles[n.Level].Render(n.Message) + "\n")
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, s state.State) {
	counts := state.CountByCategory(s)
	parts := make([]string, 0, len(due.Categories()))
	for _, c := range due.Categories() {
		parts = append(parts, categoryStyles[c].Render(fmt.Sprintf("%s: %d", categoryTitle(c), counts[c])))
	}
	b.WriteString("  " + strings.Join(parts, "  ") + "\n\n")
}

func writeTasks(b *strings.Builder, s state.State, cursor int) {
	if len(s.TasksOrderedByDue) == 0 {
		b.WriteString("  No tasks.\n\n")
		return
	}
	groups := state.GroupByCategory(s)
	index := 0
	for _, c := range due.Categories() {
		tasks := groups[c]
		if len(tasks) == 0 {
			continue
		}
		b.WriteString(headerStyle.Render(categoryTitle(c)) + "\n")
		for _, t := range tasks {
			line := formatTask(t, s.TimeReference)
			if index == cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + categoryStyles[c].Render(line)
			}
			b.WriteString(line + "\n")
			index++
		}
		b.WriteString("\n")
	}
}

func writeSelected(b *strings.Builder, m *Model) {
	t, ok := m.Selected()
	if !ok {
		return
	}
	paragraphs := t.Paragraphs()
	if len(paragraphs) == 0 {
		return
	}
	for _, p := range paragraphs {
		b.WriteString("  " + faintStyle.Render(p) + "\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload tasks\n")
	b.WriteString("  j, down      Next task\n")
	b.WriteString("  k, up        Previous task\n")
	b.WriteString("  x            Delete selected task\n")
	b.WriteString("  d            Dismiss newest notification\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(faintStyle.Render(fmt.Sprintf("Press h for help | q to quit | Due classes refresh every %s", interval)) + "\n")
}

func formatTask(t task.Task, reference int64) string {
	return fmt.Sprintf("[%s] %s  (%s, %s)", t.ID, t.Name, task.FormatDue(t.Due), Relative(t.Due, reference))
}

// Relative describes due relative to reference in whole days.
func Relative(dueAt, reference int64) string {
	const day = 24 * 60 * 60
	diff := dueAt - reference
	switch {
	case diff < 0:
		days := -diff / day
		if days == 0 {
			return "overdue"
		}
		return fmt.Sprintf("%d %s overdue", days, plural(days, "day"))
	case diff < day:
		return "due today"
	default:
		days := diff / day
		return fmt.Sprintf("in %d %s", days, plural(days, "day"))
	}
}

func plural(n int64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
