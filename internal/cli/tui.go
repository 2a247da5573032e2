package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/eggsposition/eggsposition/pkg/hypergraph"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SampleListModel - Interactive sample selection
// =============================================================================

// SampleListModel is the bubbletea model for interactive sample selection.
type SampleListModel struct {
	Samples  []hypergraph.Sample
	Cursor   int
	Selected *hypergraph.Sample
	Height   int
	Offset   int
}

// NewSampleListModel creates a new sample list model.
func NewSampleListModel(samples []hypergraph.Sample) SampleListModel {
	return SampleListModel{
		Samples: samples,
		Height:  15,
	}
}

func (m SampleListModel) Init() tea.Cmd {
	return nil
}

func (m SampleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Samples)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Samples) == 0 {
				return m, nil
			}
			s := m.Samples[m.Cursor]
			m.Selected = &s
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m SampleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Sample Hypergraph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Samples) {
		end = len(m.Samples)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Samples[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			s.Name,
			strconv.Itoa(len(s.Data.Nodes)),
			strconv.Itoa(len(s.Data.Hyperedges)),
			s.Description,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Sample", "Nodes", "Edges", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorDim)
			}
			if m.Offset+row == m.Cursor {
				if col == 4 {
					return base.Foreground(colorGray).Bold(true)
				}
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Samples))))

	return b.String()
}
