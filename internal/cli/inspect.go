package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/pipeline"
)

// maxNamesWidth truncates the names column of the generation table.
const maxNamesWidth = 60

// inspectCommand creates the inspect command, which shows how a chart was
// split into generations.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags       layoutFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [chart.json|chart.toml]",
		Short: "Show the generation rows of a family chart",
		Long: `Show the generation rows of a family chart.

Prints one line per generation with the people placed in it, followed by the
chapter bands and any constraint the chart breaks. With --interactive the
rows can be browsed one at a time with their positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			flags.apply(cmd.Flags(), &opts)
			return c.runInspect(cmd.Context(), args[0], flags.noCache, interactive, opts)
		},
	}

	flags.bind(cmd.Flags())
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse generations interactively")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, noCache, interactive bool, opts pipeline.Options) error {
	data, err := graph.ReadChartFile(input)
	if err != nil {
		return fmt.Errorf("load chart %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, data, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	title := filepath.Base(input)
	if interactive {
		p := tea.NewProgram(NewGenerationModel(title, l), tea.WithContext(ctx), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	fmt.Println(StyleTitle.Render(title))
	printStats(len(l.Nodes), l.Generations, cacheHit)
	printNewline()
	writeGenerationTable(os.Stdout, l)
	if len(l.Chapters) > 0 {
		printNewline()
		for _, band := range l.Chapters {
			printKeyValue(band.ID, fmt.Sprintf("%s  y %.0f–%.0f", band.Title, band.Top, band.Bottom))
		}
	}
	printDiagnostics(l)
	return nil
}

// writeGenerationTable renders one table row per generation.
func writeGenerationTable(w io.Writer, l graph.Layout) {
	gens := generationRows(l)
	rows := make([][]string, 0, len(gens))
	for _, r := range gens {
		rows = append(rows, []string{
			strconv.Itoa(r.Generation),
			strconv.Itoa(len(r.People)),
			truncate(r.names(), maxNamesWidth),
			r.chapters(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Gen", "Nodes", "People", "Chapters").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return tableHeaderStyle
			case col <= 1:
				return lipgloss.NewStyle().Foreground(colorGold)
			case col == 3:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
