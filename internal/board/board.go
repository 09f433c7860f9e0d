// Package board renders the task board and task details as plain text.
package board

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nibzard/pm-go/internal/task"
)

// Color modes accepted by New.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	separator  = "----------"
	emptyLine  = "... no tasks found"
	timeLayout = "2006-01-02 15:04"
)

// Printer writes boards and task details to a writer.
type Printer struct {
	w      io.Writer
	styles styles
}

type styles struct {
	enabled  bool
	heading  lipgloss.Style
	id       lipgloss.Style
	labels   lipgloss.Style
	since    lipgloss.Style
	archived lipgloss.Style
	status   map[task.Status]lipgloss.Style
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return style.Render(text)
}

// New creates a Printer. mode is one of ColorAuto, ColorAlways or
// ColorNever; auto enables color only when w is a color terminal.
func New(w io.Writer, mode string) *Printer {
	r := lipgloss.NewRenderer(w)
	enabled := false
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
		enabled = true
	case ColorNever:
	default:
		enabled = r.ColorProfile() != termenv.Ascii
	}

	return &Printer{
		w: w,
		styles: styles{
			enabled:  enabled,
			heading:  r.NewStyle().Bold(true),
			id:       r.NewStyle().Foreground(lipgloss.Color("8")),
			labels:   r.NewStyle().Foreground(lipgloss.Color("14")),
			since:    r.NewStyle().Foreground(lipgloss.Color("8")),
			archived: r.NewStyle().Faint(true),
			status: map[task.Status]lipgloss.Style{
				task.StatusTodo:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
				task.StatusDoing: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
				task.StatusDone:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
			},
		},
	}
}

// Board writes every column with a separator and a status heading.
// Empty columns print a placeholder line.
func (p *Printer) Board(columns []task.Column) error {
	var b strings.Builder
	for _, col := range columns {
		b.WriteString(separator + "\n")
		b.WriteString(p.styles.render(p.styles.status[col.Status], string(col.Status)) + "\n")
		if len(col.Tasks) == 0 {
			b.WriteString(emptyLine + "\n")
		}
		for _, t := range col.Tasks {
			b.WriteString(p.line(t) + "\n")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// line formats one board row: "001: title", then labels and the time
// the task entered its status.
func (p *Printer) line(t *task.Task) string {
	var b strings.Builder
	b.WriteString(p.styles.render(p.styles.id, fmt.Sprintf("%03d:", t.ID)))
	b.WriteString(" ")
	title := t.Title
	if t.Archived {
		title = p.styles.render(p.styles.archived, title+" (archived)")
	}
	b.WriteString(title)
	if len(t.Labels) > 0 {
		b.WriteString("\t\t")
		b.WriteString(p.styles.render(p.styles.labels, FormatLabels(t.Labels)))
	}
	if since, ok := t.Since(); ok {
		b.WriteString("\t")
		b.WriteString(p.styles.render(p.styles.since, "since "+FormatTime(since)))
	}
	return b.String()
}

// Detail writes one task: title with an underline, description,
// labels and the status history.
func (p *Printer) Detail(t *task.Task) error {
	var b strings.Builder
	title := strings.TrimSpace(t.Title)
	b.WriteString(p.styles.render(p.styles.heading, title) + "\n")
	b.WriteString(strings.Repeat("-", utf8.RuneCountInString(title)) + "\n")

	if desc := strings.TrimSpace(t.Description); desc != "" {
		b.WriteString(desc + "\n")
	}
	b.WriteString("\n")

	status := p.styles.render(p.styles.status[t.Status], string(t.Status))
	if t.Archived {
		status += " " + p.styles.render(p.styles.archived, "(archived)")
	}
	fmt.Fprintf(&b, "id:     %03d\n", t.ID)
	fmt.Fprintf(&b, "status: %s\n", status)
	if len(t.Labels) > 0 {
		fmt.Fprintf(&b, "labels: %s\n", p.styles.render(p.styles.labels, FormatLabels(t.Labels)))
	}
	if len(t.Changes) > 0 {
		b.WriteString("history:\n")
		for _, c := range t.Changes {
			fmt.Fprintf(&b, "  %s  %s -> %s\n", p.styles.render(p.styles.since, FormatTime(c.On)), c.From, c.To)
		}
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// FormatLabels renders labels in entry syntax, e.g. ":bug ui:".
func FormatLabels(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return ":" + strings.Join(labels, " ") + ":"
}

// FormatTime renders a ledger timestamp in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout) + " UTC"
}
