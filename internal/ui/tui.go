// Package ui provides the interactive terminal board.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/pm-go/internal/board"
	"github.com/nibzard/pm-go/internal/task"
)

// Loader loads a fresh copy of the store. The board calls it on start,
// on every refresh and on every tick.
type Loader func() (*task.Store, error)

// Option configures the board behavior.
type Option func(*boardConfig)

// boardConfig holds board configuration.
type boardConfig struct {
	showArchived bool
	interval     time.Duration
}

// WithShowArchived includes archived tasks in the columns.
func WithShowArchived(enabled bool) Option {
	return func(c *boardConfig) {
		c.showArchived = enabled
	}
}

// WithRefreshInterval sets how often the board reloads from disk.
// Zero disables periodic reloads.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *boardConfig) {
		c.interval = d
	}
}

// Run starts the board viewer and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, load Loader, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("board requires a TTY")
	}
	model := newModel(load, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type model struct {
	load         Loader
	interval     time.Duration
	showArchived bool

	project  string
	columns  []task.Column
	loadErr  error
	loaded   bool
	col      int
	row      int
	filter   task.Status
	showHelp bool
	detail   bool
	width    int
}

type tickMsg time.Time

func newModel(load Loader, opts ...Option) *model {
	c := &boardConfig{interval: 2 * time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return &model{
		load:         load,
		interval:     c.interval,
		showArchived: c.showArchived,
	}
}

func (m *model) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.interval)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "a":
			m.showArchived = !m.showArchived
			m.refresh()
		case "enter", " ":
			m.detail = !m.detail
		case "esc":
			m.detail = false
			m.showHelp = false
		case "left", "shift+tab":
			m.moveColumn(-1)
		case "right", "tab":
			m.moveColumn(1)
		case "up", "k":
			m.moveRow(-1)
		case "down", "j":
			m.moveRow(1)
		case "1":
			m.setFilter(task.StatusTodo)
		case "2":
			m.setFilter(task.StatusDoing)
		case "3":
			m.setFilter(task.StatusDone)
		case "0":
			m.setFilter("")
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.interval)
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	writeTitle(&b, m.project)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}
	if m.loadErr != nil {
		b.WriteString("Error loading tasks:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}
	if !m.loaded {
		b.WriteString("Loading...\n\n")
		writeFooter(&b)
		return b.String()
	}

	writeOverview(&b, m.columns)
	if m.filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}
	b.WriteString(m.renderColumns())
	b.WriteString("\n\n")

	if m.detail {
		if t := m.selected(); t != nil {
			var detail strings.Builder
			_ = board.New(&detail, board.ColorNever).Detail(t)
			b.WriteString(detail.String())
			b.WriteString("\n")
		}
	}
	writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reloads the store and keeps the cursor on the same task
// when it is still visible.
func (m *model) refresh() {
	current := m.selected()
	store, err := m.load()
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil
	m.loaded = true
	m.project = store.Project.Name
	m.columns = store.Board(m.showArchived)

	if current != nil {
		for ci, col := range m.visibleColumns() {
			for ri, t := range col.Tasks {
				if t.ID == current.ID {
					m.col, m.row = ci, ri
					return
				}
			}
		}
	}
	m.clampCursor()
}

func (m *model) setFilter(status task.Status) {
	current := m.selected()
	m.filter = status
	m.col, m.row = 0, 0
	if current != nil && (status == "" || current.Status == status) {
		for ci, col := range m.visibleColumns() {
			for ri, t := range col.Tasks {
				if t.ID == current.ID {
					m.col, m.row = ci, ri
				}
			}
		}
	}
	m.clampCursor()
}

// visibleColumns returns the columns that pass the status filter.
func (m *model) visibleColumns() []task.Column {
	if m.filter == "" {
		return m.columns
	}
	for _, col := range m.columns {
		if col.Status == m.filter {
			return []task.Column{col}
		}
	}
	return nil
}

func (m *model) moveColumn(delta int) {
	cols := m.visibleColumns()
	if len(cols) == 0 {
		return
	}
	m.col = (m.col + delta + len(cols)) % len(cols)
	m.clampCursor()
}

func (m *model) moveRow(delta int) {
	m.row += delta
	m.clampCursor()
}

func (m *model) clampCursor() {
	cols := m.visibleColumns()
	if len(cols) == 0 {
		m.col, m.row = 0, 0
		return
	}
	if m.col >= len(cols) {
		m.col = len(cols) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	n := len(cols[m.col].Tasks)
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// selected returns the task under the cursor, or nil.
func (m *model) selected() *task.Task {
	cols := m.visibleColumns()
	if m.col < 0 || m.col >= len(cols) {
		return nil
	}
	tasks := cols[m.col].Tasks
	if m.row < 0 || m.row >= len(tasks) {
		return nil
	}
	return tasks[m.row]
}

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	activeColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("12"))
	headingStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	archivedStyle = lipgloss.NewStyle().Faint(true)
)

func (m *model) renderColumns() string {
	cols := m.visibleColumns()
	width := 30
	if m.width > 0 && len(cols) > 0 {
		// Border and padding take four cells per column.
		if w := m.width/len(cols) - 4; w > 10 {
			width = w
		}
	}

	rendered := make([]string, 0, len(cols))
	for ci, col := range cols {
		var b strings.Builder
		b.WriteString(headingStyle.Render(fmt.Sprintf("%s (%d)", col.Status, len(col.Tasks))))
		b.WriteString("\n")
		if len(col.Tasks) == 0 {
			b.WriteString("  no tasks")
		}
		for ri, t := range col.Tasks {
			if ri > 0 {
				b.WriteString("\n")
			}
			b.WriteString(formatRow(t, ci == m.col && ri == m.row, width))
		}
		style := columnStyle
		if ci == m.col {
			style = activeColumnStyle
		}
		rendered = append(rendered, style.Width(width).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func formatRow(t *task.Task, selected bool, width int) string {
	title := t.Title
	// Leave room for the cursor and the id prefix.
	if limit := width - 7; limit > 3 && len([]rune(title)) > limit {
		title = string([]rune(title)[:limit-3]) + "..."
	}
	line := fmt.Sprintf("%03d %s", t.ID, title)
	if t.Archived {
		line = archivedStyle.Render(line)
	}
	if selected {
		return cursorStyle.Render(">") + " " + line
	}
	return "  " + line
}

func writeTitle(b *strings.Builder, project string) {
	title := "pm board"
	if project != "" {
		title += ": " + project
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")
}

func writeOverview(b *strings.Builder, columns []task.Column) {
	counts := make(map[task.Status]int, len(columns))
	for _, col := range columns {
		counts[col.Status] = len(col.Tasks)
	}
	b.WriteString(fmt.Sprintf("  Todo: %d  Doing: %d  Done: %d\n\n",
		counts[task.StatusTodo],
		counts[task.StatusDoing],
		counts[task.StatusDone],
	))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c      Quit\n")
	b.WriteString("  r, F5          Reload from disk\n")
	b.WriteString("  h, ?           Toggle this help screen\n")
	b.WriteString("  left, right    Move between columns\n")
	b.WriteString("  up/k, down/j   Move between tasks\n")
	b.WriteString("  enter, space   Toggle task details\n")
	b.WriteString("  a              Toggle archived tasks\n")
	b.WriteString("  1, 2, 3        Show only Todo, Doing or Done\n")
	b.WriteString("  0              Clear filter\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press h for help | q to quit\n")
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
