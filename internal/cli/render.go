package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/pipeline"
)

// renderCommand creates the render command, which goes from a chart to
// rendered artifacts in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [chart.json|chart.toml]",
		Short: "Lay out a family chart and render it",
		Long: `Lay out a family chart and render it.

People are drawn as ellipses at their computed positions; marriages as gold
lines, siblings as dashed grey lines, children as arrows and skipped
generations as dashed arrows with their label. Link nodes to other family
charts are drawn as small boxes next to their descendant.

Formats: svg (default), png, pdf, dot, json. PNG and PDF need rsvg-convert.

This is a shortcut for 'layout' followed by 'visualize'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			lf.apply(cmd.Flags(), &opts)
			if err := rf.apply(cmd.Flags(), &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], rf.output, lf.noCache, opts)
		},
	}

	lf.bind(cmd.Flags())
	rf.bind(cmd.Flags())

	return cmd
}

// runRender loads the chart, runs the full pipeline and writes artifacts.
func (c *CLI) runRender(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	data, err := graph.ReadChartFile(input)
	if err != nil {
		return fmt.Errorf("load chart %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering chart...")
	spinner.Start()

	result, err := runner.Execute(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := writeArtifacts(result.Artifacts, opts.Formats, outputBase(output, input), output); err != nil {
		return err
	}
	printStats(result.Stats.People, result.Stats.Generations, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	printDiagnostics(result.Layout)
	return nil
}

// writeArtifacts writes each rendered format. A single format goes to
// output when one was given; otherwise every format goes next to base.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) error {
	paths := make([]string, len(formats))
	for i, format := range formats {
		paths[i] = artifactPath(base, output, format, len(formats))
		if dir := filepath.Dir(paths[i]); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(paths[i], artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[i], err)
		}
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// artifactPath names the file for one format. JSON artifacts are layouts
// and take the .layout.json suffix so they never overwrite a JSON chart.
func artifactPath(base, output, format string, n int) string {
	if n == 1 && output != "" {
		return output
	}
	if format == graph.FormatJSON {
		return base + ".layout.json"
	}
	return base + "." + format
}

// layoutPath returns the layout file written next to a chart.
func layoutPath(chart string) string {
	return artifactPath(outputBase("", chart), "", graph.FormatJSON, 1)
}
