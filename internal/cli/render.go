package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eggsposition/eggsposition/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input    inputFlags
	output   string // output file (single format) or base path (multiple)
	formats  string // comma-separated formats
	engine   string // Graphviz layout engine
	detailed bool   // include e-class type and node details in labels
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an e-graph or hypergraph to DOT, SVG or PNG",
		Long: `Render converts the input and writes one file per requested format.

With a single format, -o names the output file. With several, -o is a base
path and each format adds its own extension (graph.svg, graph.png, ...).`,
		Example: `  eggsposition render fibonacci.json
  eggsposition render fibonacci.json -f svg,png,dot -o out/fib
  eggsposition render team.yaml --engine neato --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := render.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, &opts)
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", string(render.FormatSVG), "output format(s): json, forcegraph, dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "layout engine: fdp, neato, sfdp, dot, circo, twopi (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show e-class types and node details in labels")

	return cmd
}

// runRender converts the input, renders every requested format and writes
// the results next to the input or under the -o base path.
func (c *CLI) runRender(ctx context.Context, input string, formats []render.Format, opts *renderOpts) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.input.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.options(opts.input, input, data)
	popts.Formats = formatNames(formats)
	if opts.engine != "" {
		popts.Engine = opts.engine
	}
	if opts.detailed {
		popts.Detailed = true
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(popts.Formats, ", ")+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, data, popts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	paths := outputPaths(opts.output, input, formats)
	for _, f := range formats {
		if filepath.Clean(paths[f]) == filepath.Clean(input) {
			return fmt.Errorf("refusing to overwrite input %s; pass -o", input)
		}
	}
	for _, f := range formats {
		if err := writeOutput(paths[f], result.Artifacts[string(f)]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ConvertHit && result.CacheInfo.RenderHit)
	printDiagnostics(result.Diagnostics)
	for _, f := range formats {
		printFile(paths[f])
	}
	return nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit -o writes exactly there.
func outputPaths(output, input string, formats []render.Format) map[render.Format]string {
	paths := make(map[render.Format]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + f.Ext()
	}
	return paths
}

func formatNames(formats []render.Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
