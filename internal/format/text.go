package format

import (
	"fmt"
	"io"
	"strings"

	"organizer/internal/model"
	"organizer/internal/views"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const boardColumnWidth = 30

var (
	textMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d"))
	textDoneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d")).Strikethrough(true)
	textIDStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f9fb0"))
)

// WriteText renders v for humans. The {"data": ...} envelope is unwrapped;
// types without a text form fall back to pretty JSON.
func WriteText(w io.Writer, v any) error {
	if m, ok := v.(map[string]any); ok {
		if d, ok := m["data"]; ok {
			v = d
		}
	}

	var s string
	switch x := v.(type) {
	case []views.Group:
		s = Board(x)
	case []model.Task:
		s = TaskList(x)
	case model.Task:
		s = taskLine(x)
	case []model.Project:
		s = ProjectList(x)
	case model.Project:
		s = projectLine(x)
	case string:
		s = x
	case fmt.Stringer:
		s = x.String()
	default:
		return WriteJSON(w, v, true)
	}
	_, err := io.WriteString(w, strings.TrimRight(s, "\n")+"\n")
	return err
}

func checkbox(t model.Task) string {
	if t.Completed() {
		return "[x]"
	}
	return "[ ]"
}

func taskTitle(t model.Task) string {
	if t.Completed() {
		return textDoneStyle.Render(t.Title)
	}
	return t.Title
}

func taskLine(t model.Task) string {
	return fmt.Sprintf("%s %s %s %s", textIDStyle.Render(t.ID), checkbox(t), taskTitle(t), textMutedStyle.Render("("+t.GroupID.String()+")"))
}

// TaskList renders one task per line in sequence order.
func TaskList(tasks []model.Task) string {
	if len(tasks) == 0 {
		return textMutedStyle.Render("no tasks")
	}
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(taskLine(t))
		b.WriteByte('\n')
	}
	return b.String()
}

func swatch(color string) lipgloss.Style {
	if strings.TrimSpace(color) == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func projectLine(p model.Project) string {
	return fmt.Sprintf("%s %s %s", textIDStyle.Render(p.ID), swatch(p.Color).Bold(true).Render(p.Name), textMutedStyle.Render(p.Color))
}

// ProjectList renders one project per line in registry order.
func ProjectList(projects []model.Project) string {
	if len(projects) == 0 {
		return textMutedStyle.Render("no projects")
	}
	var b strings.Builder
	for _, p := range projects {
		b.WriteString(projectLine(p))
		b.WriteByte('\n')
	}
	return b.String()
}

// Board renders one bordered column per group, side by side.
func Board(groups []views.Group) string {
	cols := make([]string, 0, len(groups))
	for _, g := range groups {
		cols = append(cols, boardColumn(g))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func boardColumn(g views.Group) string {
	var b strings.Builder
	head := swatch(g.Project.Color).Bold(true).Render(g.Project.Name)
	b.WriteString(head + " " + textMutedStyle.Render(fmt.Sprintf("(%d)", len(g.Tasks))))
	if len(g.Tasks) == 0 {
		b.WriteString("\n" + textMutedStyle.Render("empty"))
	}
	for _, t := range g.Tasks {
		t.Title = xansi.Truncate(t.Title, boardColumnWidth-6, "…")
		b.WriteString("\n" + checkbox(t) + " " + taskTitle(t))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(boardColumnWidth)
	if c := strings.TrimSpace(g.Project.Color); c != "" {
		border = border.BorderForeground(lipgloss.Color(c))
	}
	return border.Render(b.String())
}
