package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lineage/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGold)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Generation Rows
// =============================================================================

// generationRow is one row of the chart as shown by inspect.
type generationRow struct {
	Generation int
	People     []personCell
}

// personCell is one placed node of a row.
type personCell struct {
	ID      string
	Label   string
	Chapter string
	X, Y    float64
	Link    bool
}

// generationRows groups the layout's nodes by generation, left to right.
func generationRows(l graph.Layout) []generationRow {
	byGen := make(map[int][]personCell)
	for _, n := range l.Nodes {
		p, ok := l.Positions[n.ID]
		if !ok {
			continue
		}
		byGen[n.Generation] = append(byGen[n.Generation], personCell{
			ID:      n.ID,
			Label:   n.Label,
			Chapter: n.Chapter,
			X:       p.X,
			Y:       p.Y,
			Link:    n.IsLinkNode(),
		})
	}

	rows := make([]generationRow, 0, len(byGen))
	for g, cells := range byGen {
		slices.SortStableFunc(cells, func(a, b personCell) int {
			return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.ID, b.ID))
		})
		rows = append(rows, generationRow{Generation: g, People: cells})
	}
	slices.SortFunc(rows, func(a, b generationRow) int { return cmp.Compare(a.Generation, b.Generation) })
	return rows
}

// names joins the labels of a row's people, link nodes excluded.
func (r generationRow) names() string {
	var names []string
	for _, p := range r.People {
		if !p.Link {
			names = append(names, p.Label)
		}
	}
	return strings.Join(names, ", ")
}

// chapters lists the distinct chapters of a row in order of appearance.
func (r generationRow) chapters() string {
	var out []string
	for _, p := range r.People {
		if p.Chapter != "" && !slices.Contains(out, p.Chapter) {
			out = append(out, p.Chapter)
		}
	}
	if len(out) == 0 {
		return "—"
	}
	return strings.Join(out, ", ")
}

// =============================================================================
// GenerationModel - Interactive generation browser
// =============================================================================

// GenerationModel is the bubbletea model for browsing a chart row by row.
type GenerationModel struct {
	Title  string
	Rows   []generationRow
	Cursor int
	Height int // people rows shown for the selected generation
}

// NewGenerationModel creates a browser over the rows of l.
func NewGenerationModel(title string, l graph.Layout) GenerationModel {
	return GenerationModel{
		Title:  title,
		Rows:   generationRows(l),
		Height: 15,
	}
}

func (m GenerationModel) Init() tea.Cmd {
	return nil
}

func (m GenerationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Rows)-1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m GenerationModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ generation  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty chart)"))
		return b.String()
	}

	for i, r := range m.Rows {
		line := fmt.Sprintf("Generation %-3d %3d people", r.Generation, len(r.People))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	row := m.Rows[m.Cursor]
	shown := min(m.Height, len(row.People))

	rows := make([][]string, 0, shown)
	for _, p := range row.People[:shown] {
		kind := "person"
		if p.Link {
			kind = "link"
		}
		rows = append(rows, []string{p.ID, p.Label, kind, fmt.Sprintf("%.0f", p.X), fmt.Sprintf("%.0f", p.Y), p.Chapter})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Kind", "X", "Y", "Chapter").
		Rows(rows...).
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == -1 {
				return tableHeaderStyle
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	if len(row.People) > shown {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  showing %d of %d", shown, len(row.People))))
	}
	b.WriteString("\n")

	return b.String()
}
