package tui

import (
	"fmt"
	"strings"

	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/ui/style"
)

const lastBuildLayout = "15:04:05"

// View renders the dev server screen.
func (m *Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(style.Title.Render("nativedev") + " " + style.Muted.Render(m.server.Config().Name)))
	b.WriteString("\n\n")
	b.WriteString(m.platformRow())
	b.WriteString("\n\n")
	b.WriteString(m.statusBlock())
	if m.Notice != "" {
		b.WriteString("\n")
		b.WriteString(style.Building.Render(style.Warning + " " + m.Notice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help())
	b.WriteString("\n")

	return b.String()
}

func (m *Model) platformRow() string {
	cfg := m.server.Config()
	items := make([]string, 0, len(domain.Platforms()))
	for _, p := range domain.Platforms() {
		label := fmt.Sprintf("[%s] %s", p.Key(), p.DisplayName())
		switch {
		case p == m.Target:
			items = append(items, style.Selected.Render(style.Arrow+" "+label))
		case cfg.Targets(p):
			items = append(items, style.Label.Render("  "+label))
		default:
			items = append(items, style.Muted.Faint(true).Render("  "+label))
		}
	}
	return style.Label.Render("Platform:") + " " + strings.Join(items, " ")
}

func (m *Model) statusBlock() string {
	s := m.Status
	var lines []string

	switch {
	case s.InProgress:
		lines = append(lines, style.Building.Render(style.Dot+" Status: Building..."))
	case s.Failed():
		lines = append(lines,
			style.Failed.Render(style.Cross+" Status: Error"),
			style.Failed.Render("Error: ")+s.Error,
		)
	case s.Built():
		lines = append(lines, style.Ready.Render(style.Check+" Status: Ready")+
			style.Muted.Render(" (last build "+s.LastBuild.Format(lastBuildLayout)+")"))
	default:
		lines = append(lines, style.Muted.Render(style.Circle+" Status: Waiting for first build"))
	}

	if s.Progress != nil {
		lines = append(lines, progressLine(s))
	}

	return strings.Join(lines, "\n")
}

func progressLine(s domain.BuildStatus) string {
	line := fmt.Sprintf("[%d/%d]", s.Progress.Current, s.Progress.Total)
	if s.Message != "" {
		line += " " + s.Message
	}
	return style.Label.Render(line)
}

func (m *Model) help() string {
	bindings := []struct{ key, desc string }{
		{"r", "rebuild"},
		{"s", "restart"},
		{"1-4", "platform"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		parts = append(parts, style.Key.Render(kb.key)+" "+style.Muted.Render(kb.desc))
	}
	return strings.Join(parts, style.Muted.Render(" • "))
}
