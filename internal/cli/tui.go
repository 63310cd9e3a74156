package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/connline/pkg/connector"
	"github.com/matzehuels/connline/pkg/curve"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/scene"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// InspectModel - Interactive connector browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a laid-out scene.
type InspectModel struct {
	Title  string
	Laid   []scene.Laid
	Cursor int
	Height int
	Offset int

	// Chosen is the connector selected with enter, if any.
	Chosen *scene.Laid
}

// NewInspectModel creates a new inspector over laid.
func NewInspectModel(title string, laid []scene.Laid) InspectModel {
	return InspectModel{Title: title, Laid: laid, Height: 12}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Laid)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Laid)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "enter":
			if len(m.Laid) > 0 {
				l := m.Laid[m.Cursor]
				m.Chosen = &l
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, help line and detail pane.
		m.Height = max(msg.Height-18, 3)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ preview  q quit"))
	b.WriteString("\n\n")

	if len(m.Laid) == 0 {
		b.WriteString(listDimStyle.Render("  no connectors"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Laid))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		l := m.Laid[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			l.Connector.ID,
			l.Connector.From.String(),
			l.Connector.To.String(),
			fmt.Sprintf("%s→%s", l.Result.FromDirection, l.Result.ToDirection),
			curve.FormatCoord(math.Round(l.Result.Curve.Length()*10) / 10),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Connector", "From", "To", "Sides", "Length").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(detailBoxStyle.Render(connectorDetail(m.Laid[m.Cursor])))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Laid))))

	return b.String()
}

// connectorDetail renders the geometry of one connector as key/value lines.
func connectorDetail(l scene.Laid) string {
	r := l.Result
	lines := [][2]string{
		{"frame", formatRect(r.Frame)},
		{"from anchor", formatPoint(r.ToFrame(r.FromAnchor))},
		{"to anchor", formatPoint(r.ToFrame(r.ToAnchor))},
		{"padding", curve.FormatCoord(l.Connector.Options.Padding)},
		{"path", r.Path()},
		{"start", formatPlacement(l.Connector.Glyphs.Start, l.Markers.Start)},
		{"end", formatPlacement(l.Connector.Glyphs.End, l.Markers.End)},
		{"mid", formatPlacement(l.Connector.Glyphs.Mid, l.Markers.Mid)},
	}
	var b strings.Builder
	for i, kv := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(detailKeyStyle.Render(kv[0]))
		b.WriteString(StyleValue.Render(kv[1]))
	}
	return b.String()
}

func formatRect(r geom.Rect) string {
	return fmt.Sprintf("%s,%s %s×%s",
		curve.FormatCoord(r.Left), curve.FormatCoord(r.Top),
		curve.FormatCoord(r.Width), curve.FormatCoord(r.Height))
}

func formatPoint(p geom.Point) string {
	return curve.FormatCoord(p.X) + "," + curve.FormatCoord(p.Y)
}

func formatPlacement(glyph string, p connector.Placement) string {
	if glyph == "" {
		return "—"
	}
	return fmt.Sprintf("%s at %s rot %.2frad", glyph, formatPoint(p.Position), p.Rotation)
}
