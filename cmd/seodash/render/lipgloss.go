package render

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

const currentMarker = "● "

type LipglossRenderer struct {
	width int
	now   func() time.Time
	r     *lipgloss.Renderer

	nameStyle     lipgloss.Style
	domainStyle   lipgloss.Style
	timeStyle     lipgloss.Style
	inactiveStyle lipgloss.Style
	currentStyle  lipgloss.Style
	footerStyle   lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:         width,
		now:           time.Now,
		r:             r,
		nameStyle:     r.NewStyle().Bold(true),
		domainStyle:   r.NewStyle().Faint(true),
		timeStyle:     r.NewStyle().Faint(true),
		inactiveStyle: r.NewStyle().Faint(true),
		currentStyle:  r.NewStyle().Foreground(lipgloss.Color("10")),
		footerStyle:   r.NewStyle().Faint(true),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) WithClock(now func() time.Time) *LipglossRenderer {
	r.now = now
	return r
}

func (r *LipglossRenderer) RenderProjectList(view ProjectListView) string {
	if view.IsEmpty() {
		return "No projects found.\n"
	}

	now := r.now()
	var sb strings.Builder
	for i, item := range view.Items {
		last := i == len(view.Items)-1
		sb.WriteString(r.renderItem(item, now, last))
	}
	sb.WriteString("\n")
	if view.Footer != "" {
		sb.WriteString("\n")
		sb.WriteString(r.footerStyle.Render(view.Footer))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *LipglossRenderer) renderItem(item ProjectListItem, now time.Time, last bool) string {
	nameStyle := r.nameStyle
	domainStyle := r.domainStyle
	timeStyle := r.timeStyle
	if item.Status != "" && item.Status != "active" {
		nameStyle = r.inactiveStyle.Bold(true)
		domainStyle = r.inactiveStyle
		timeStyle = r.inactiveStyle
	}

	marker := "  "
	if item.Current {
		marker = r.currentStyle.Render(currentMarker)
	}

	name := marker + nameStyle.Render(item.Name)
	timeEl := timeStyle.Render(r.formatTime(item.Timestamp, now))

	padding := max(1, r.width-lipgloss.Width(name)-lipgloss.Width(timeEl))
	headerLine := name + strings.Repeat(" ", padding) + timeEl

	detail := item.Domain
	if item.Status != "" && item.Status != "active" {
		detail += " (" + item.Status + ")"
	}

	lines := []string{headerLine, domainStyle.Render("    " + detail)}
	if !last {
		lines = append(lines, "", "")
	}

	return strings.Join(lines, "\n")
}

func (r *LipglossRenderer) formatTime(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	loc := now.Location()
	t = t.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	target := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	days := int(today.Sub(target).Hours() / 24)

	timeStr := t.Format("15:04")

	switch {
	case days == 0:
		return timeStr
	case days == 1:
		return "Yesterday " + timeStr
	case days < 7:
		return t.Format("Mon") + " " + timeStr
	case t.Year() == now.Year():
		return t.Format("Jan 2") + " " + timeStr
	default:
		return t.Format("Jan 2 '06") + " " + timeStr
	}
}
