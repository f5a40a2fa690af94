package render

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/technige/n4/internal/driver"
)

// Summary is the closing line printed after a result.
type Summary struct {
	Records int
	Elapsed time.Duration
	Server  driver.ServerAddress
}

func (s Summary) String() string {
	plural := "s"
	if s.Records == 1 {
		plural = ""
	}
	return fmt.Sprintf("(%d record%s from %s in %.3fs)", s.Records, plural, s.Server, s.Elapsed.Seconds())
}

// Styles colours status output. Colours are dropped automatically when the
// destination is not a terminal.
type Styles struct {
	Summary lipgloss.Style
	Notice  lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Special lipgloss.Style
	Prompt  lipgloss.Style
	Counter lipgloss.Style
}

// NewStyles returns the styles for output written to w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Summary: r.NewStyle().Foreground(lipgloss.Color("6")),
		Notice:  r.NewStyle().Foreground(lipgloss.Color("6")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		Danger:  r.NewStyle().Foreground(lipgloss.Color("1")),
		Special: r.NewStyle().Foreground(lipgloss.Color("5")),
		Prompt:  r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		Counter: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

type summaryWriter struct {
	status io.Writer
	style  lipgloss.Style
}

func newSummaryWriter(status io.Writer) summaryWriter {
	return summaryWriter{status: status, style: NewStyles(status).Summary}
}

func (w summaryWriter) WriteSummary(s Summary) error {
	_, err := fmt.Fprintln(w.status, w.style.Render(s.String()))
	return err
}
