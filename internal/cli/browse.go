package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/archpadhq/archpad/pkg/catalog"
	"github.com/archpadhq/archpad/pkg/palette"
)

// browseCommand creates the browse command for exploring the catalog interactively.
func (c *CLI) browseCommand() *cobra.Command {
	var descriptions string

	cmd := &cobra.Command{
		Use:   "browse [catalog.json]",
		Short: "Explore the tool catalog in an interactive tree",
		Long: `Explore the tool catalog in an interactive tree.

Platforms, categories, and types start collapsed; enter or space expands the
group under the cursor. With a descriptions file, the selected tool's
description is shown below the tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taxonomy, err := catalog.LoadTaxonomy(args[0])
			if err != nil {
				return err
			}

			var index catalog.Index
			if descriptions != "" {
				index, err = catalog.LoadIndex(descriptions)
				if err != nil {
					return err
				}
			}

			model := newBrowseModel(taxonomy, index)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&descriptions, "descriptions", "", "descriptions file for tool detail display")

	return cmd
}

// =============================================================================
// browseModel - Interactive taxonomy tree
// =============================================================================

// rowKind distinguishes the tree levels a cursor row can sit on.
type rowKind int

const (
	rowPlatform rowKind = iota
	rowCategory
	rowType
	rowTool
)

// browseRow is one visible line of the tree.
type browseRow struct {
	kind  rowKind
	key   string // collapse key; empty for tool rows
	label string
	depth int
	count int // children for group rows
}

// browseModel is the bubbletea model for catalog browsing. Visible rows are
// recomputed from the collapse state after every toggle.
type browseModel struct {
	taxonomy catalog.Taxonomy
	index    catalog.Index
	state    *palette.CollapseState

	rows   []browseRow
	cursor int
	height int
	offset int
}

func newBrowseModel(taxonomy catalog.Taxonomy, index catalog.Index) browseModel {
	m := browseModel{
		taxonomy: taxonomy,
		index:    index,
		state:    palette.New(),
		height:   20,
	}
	m.rows = m.visibleRows()
	return m
}

// visibleRows flattens the taxonomy into the rows the collapse state exposes.
func (m browseModel) visibleRows() []browseRow {
	var rows []browseRow
	for _, p := range m.taxonomy.Platforms {
		pKey := palette.PlatformKey(string(p.Platform))
		rows = append(rows, browseRow{
			kind: rowPlatform, key: pKey, label: string(p.Platform), count: len(p.Categories),
		})
		if m.state.Collapsed(pKey) {
			continue
		}
		for _, cat := range p.Categories {
			cKey := palette.CategoryKey(string(p.Platform), cat.Name)
			rows = append(rows, browseRow{
				kind: rowCategory, key: cKey, label: cat.Name, depth: 1, count: len(cat.Types),
			})
			if m.state.Collapsed(cKey) {
				continue
			}
			for _, typ := range cat.Types {
				tKey := palette.TypeKey(string(p.Platform), cat.Name, typ.Name)
				rows = append(rows, browseRow{
					kind: rowType, key: tKey, label: typ.Name, depth: 2, count: len(typ.Tools),
				})
				if m.state.Collapsed(tKey) {
					continue
				}
				for _, tool := range typ.Tools {
					rows = append(rows, browseRow{kind: rowTool, label: tool, depth: 3})
				}
			}
		}
	}
	return rows
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ", "space":
			if len(m.rows) == 0 {
				break
			}
			row := m.rows[m.cursor]
			if row.key != "" {
				m.state.Toggle(row.key)
				m.rows = m.visibleRows()
				if m.cursor >= len(m.rows) {
					m.cursor = len(m.rows) - 1
				}
			}
		case "r":
			m.state.Reset()
			m.rows = m.visibleRows()
			m.cursor = 0
			m.offset = 0
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tool Catalog"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ expand/collapse  r reset  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := cursor + strings.Repeat("  ", row.depth)
		if row.key != "" {
			marker := "▸"
			if !m.state.Collapsed(row.key) {
				marker = "▾"
			}
			line += marker + " " + row.label + StyleDim.Render(fmt.Sprintf(" (%d)", row.count))
		} else {
			line += row.label
		}

		switch {
		case i == m.cursor:
			b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(line))
		case row.kind == rowTool:
			b.WriteString(StyleValue.Render(line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.rows) > 0 {
		b.WriteString("\n")
		current := m.rows[m.cursor]
		if current.kind == rowTool {
			if desc := m.index.Describe(current.label); desc != "" {
				b.WriteString(StyleDim.Render("  " + desc))
				b.WriteString("\n")
			}
		}
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	}

	return b.String()
}
