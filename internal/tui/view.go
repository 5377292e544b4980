package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/lazyfeed/internal/errors"
	"github.com/Iron-Ham/lazyfeed/internal/scroll"
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Starting lazyfeed..."
	}

	st := m.ctrl.State()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(st),
		m.renderBody(st),
		m.renderStatus(st),
		m.renderHelp(),
	)
}

func (m Model) renderHeader(st scroll.State) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("lazyfeed"))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d items  %s", len(m.items.Items()), st.Target)))
	if st.Scrollable {
		b.WriteString("  ")
		b.WriteString(m.styles.Indicator.Render("scrollable"))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

func (m Model) renderBody(st scroll.State) string {
	id := m.renderer.target()
	height := m.panes.Height(id)
	lines := m.panes.VisibleLines(id)
	for len(lines) < height {
		lines = append(lines, "")
	}
	content := strings.Join(lines, "\n")

	if st.Target.Kind == scroll.TargetDocument {
		return m.styles.Document.
			MaxWidth(m.width).
			Render(content)
	}
	inner := max(1, m.width-PaneBorderWidth)
	return m.styles.Pane.
		Width(inner).
		MaxWidth(m.width).
		Render(lipgloss.NewStyle().MaxWidth(inner).Render(content))
}

func (m Model) renderStatus(st scroll.State) string {
	var line string
	switch {
	case st.Loading:
		line = m.spinner.View() + " " + m.styles.Muted.Render("loading more...")
	case errors.Is(st.Err, errors.ErrFeedExhausted):
		line = m.styles.Muted.Render("end of feed")
	case st.Err != nil:
		line = m.renderError(st.Err)
	case m.items.Exhausted():
		line = m.styles.Muted.Render("end of feed")
	case !st.Scrollable:
		line = m.styles.Hint.Render("content fits the screen, press m to load more")
	default:
		id := m.renderer.target()
		line = m.styles.Muted.Render(fmt.Sprintf("row %d of %d", m.panes.Offset(id)+1, m.panes.LineCount(id)))
	}
	return m.styles.StatusBar.MaxWidth(m.width).Render(line)
}

// renderError hides the text of failures not meant for the user and only
// offers a retry when another attempt can succeed.
func (m Model) renderError(err error) string {
	msg := "could not load more items"
	if errors.IsUserFacing(err) {
		msg = err.Error()
	}
	style := m.styles.ErrorMsg
	if errors.GetSeverity(err) < errors.SeverityError {
		style = m.styles.Muted
	}
	line := style.Render(msg)
	if errors.IsRetryable(err) {
		line += "  " + m.styles.Hint.Render("press r to retry")
	}
	return line
}

func (m Model) renderHelp() string {
	if !m.opts.ShowHelp {
		return ""
	}
	return m.help.View(m.keys)
}
