package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/openpra/pdag/pkg/pdag"
	"github.com/openpra/pdag/pkg/pipeline"
)

// browseOpts holds the command-line flags for the browse command.
type browseOpts struct {
	incorporateCCF bool
	noCache        bool
	skipPreprocess bool
}

// browseCommand creates the "browse" command, an interactive gate
// viewer over a built (and by default preprocessed) PDAG.
func (c *CLI) browseCommand() *cobra.Command {
	opts := browseOpts{incorporateCCF: true}

	cmd := &cobra.Command{
		Use:   "browse <model-file>",
		Short: "Interactively browse a PDAG's gates",
		Long: `Browse builds a PDAG from a fault-tree model, preprocesses it to its
local-rewrite fixed point, and opens an interactive list of every
reachable gate, with each gate's collapse state colored.

Use "-" to read the model from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.incorporateCCF, "ccf", opts.incorporateCCF, "substitute common-cause-failure groups during construction")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the construction-outcome cache")
	cmd.Flags().BoolVar(&opts.skipPreprocess, "no-preprocess", false, "browse the graph as built, without reducing to its fixed point")

	return cmd
}

func (c *CLI) runBrowse(cmd *cobra.Command, path string, opts *browseOpts) error {
	logger := loggerFromContext(cmd.Context())

	src, err := readSource(path)
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, _, err := runner.BuildWithCacheInfo(cmd.Context(), pipeline.Options{
		Source:         src,
		IncorporateCCF: opts.incorporateCCF,
		Logger:         logger,
	})
	if err != nil {
		printError("Build failed: %v", err)
		return err
	}
	if !opts.skipPreprocess {
		pipeline.Preprocess(cmd.Context(), g)
	}

	if g.Root() == nil {
		printInfo("Graph has no root gate to browse")
		return nil
	}

	p := tea.NewProgram(newGateBrowserModel(g))
	_, err = p.Run()
	return err
}

// =============================================================================
// gateBrowserModel - Interactive gate list
// =============================================================================

// gateRow is a single printable row of the gate browser's table.
type gateRow struct {
	index   int
	op      string
	state   pdag.State
	args    string
}

// gateBrowserModel is the bubbletea model for browsing a PDAG's gates.
type gateBrowserModel struct {
	graph  *pdag.Graph
	rows   []gateRow
	cursor int
	height int
	offset int
}

// newGateBrowserModel builds a gateBrowserModel from every gate
// reachable from g's root, in the order [pdag.Graph.Gates] returns them.
func newGateBrowserModel(g *pdag.Graph) gateBrowserModel {
	gates := g.Gates()
	rows := make([]gateRow, 0, len(gates))
	for _, gt := range gates {
		rows = append(rows, gateRow{
			index: gt.Index(),
			op:    gt.Operator.String(),
			state: gt.State(),
			args:  formatArgs(g, gt),
		})
	}
	return gateBrowserModel{graph: g, rows: rows, height: 15}
}

// formatArgs renders a gate's signed argument list as comma-separated
// names, resolving variable indices to their bound source basic
// event's string form where the graph has one (see argName).
func formatArgs(g *pdag.Graph, gt *pdag.Gate) string {
	parts := make([]string, 0, gt.ArgCount())
	for _, signed := range gt.Args() {
		abs := signed
		neg := abs < 0
		if neg {
			abs = -abs
		}
		name := argName(g, abs)
		if neg {
			name = "!" + name
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, ", ")
}

// argName resolves an absolute argument index to a display name: the
// bound source basic event's string form for a variable, "T" for the
// constant, or "g<index>" for a sub-gate.
func argName(g *pdag.Graph, abs int) string {
	if abs == g.Constant().Index() {
		return "T"
	}
	if src, ok := g.BasicEvent(abs); ok {
		if s, ok := src.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("v%d", abs)
	}
	return fmt.Sprintf("g%d", abs)
}

func (m gateBrowserModel) Init() tea.Cmd {
	return nil
}

func (m gateBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// stateColor returns the color used to render a gate's collapse state.
func stateColor(s pdag.State) lipgloss.Color {
	switch s {
	case pdag.NullState:
		return colorRed
	case pdag.UnityState:
		return colorGreen
	default:
		return colorWhite
	}
}

func (m gateBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Gates"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, fmt.Sprintf("g%d", r.index), r.op, r.state.String(), r.args})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Gate", "Op", "State", "Args").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.offset + row
			if actualIdx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(stateColor(m.rows[actualIdx].state))
			}
			if actualIdx == m.cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}
