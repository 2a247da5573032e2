package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/eggsposition/eggsposition/pkg/convert"
	"github.com/eggsposition/eggsposition/pkg/hypergraph"
	"github.com/eggsposition/eggsposition/pkg/pipeline"
	"github.com/eggsposition/eggsposition/pkg/render"
)

// inputFlags are the flags shared by commands that read a graph file.
type inputFlags struct {
	kind    string // "egraph", "hypergraph" or empty to detect
	format  string // hypergraph input format, empty to detect
	members string // hyperedge member policy
	strict  bool   // shorthand for --members strict
	noCache bool
	refresh bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "", "input kind: egraph, hypergraph (default: detect)")
	cmd.Flags().StringVar(&f.format, "input-format", "", "hypergraph input format: json, yaml (default: from extension)")
	cmd.Flags().StringVar(&f.members, "members", "", "hyperedge member policy: pass-through, strict (default from config)")
	cmd.Flags().BoolVar(&f.strict, "strict-members", false, "fail when a hyperedge names an unknown node")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and recompute")
}

// options builds pipeline options for the file at path.
func (c *CLI) options(f inputFlags, path string, data []byte) pipeline.Options {
	opts := pipeline.Options{
		Kind:         f.kind,
		Refresh:      f.refresh,
		MemberPolicy: f.members,
		Engine:       c.Config.Render.Engine,
		Detailed:     c.Config.Render.Detailed,
		Logger:       c.Logger,
	}
	if f.strict {
		opts.MemberPolicy = convert.MembersStrict.String()
	}
	if opts.Kind == "" {
		opts.Kind = detectKind(f.format, path, data)
	}
	if opts.Kind == pipeline.KindHypergraph {
		opts.InputFormat = inputFormat(f.format, path, data)
		if opts.MemberPolicy == "" && c.Config.Convert.StrictMembers {
			opts.MemberPolicy = convert.MembersStrict.String()
		}
	}
	return opts
}

// inputFormat picks the hypergraph format: the flag when set, the file
// extension otherwise. Stdin that is not JSON is read as YAML.
func inputFormat(flag, path string, data []byte) hypergraph.Format {
	if flag != "" {
		return hypergraph.Format(strings.ToLower(flag))
	}
	if path == "-" && !gjson.ValidBytes(data) {
		return hypergraph.FormatYAML
	}
	return hypergraph.FormatFromPath(path)
}

// detectKind treats YAML input (by --input-format or extension) and JSON
// documents with a top-level "hyperedges" field as hypergraphs, everything
// else as e-graphs. Stdin that is not JSON stays an e-graph so syntax errors
// read as JSON errors.
func detectKind(flag, path string, data []byte) string {
	if strings.EqualFold(flag, string(hypergraph.FormatYAML)) || hypergraph.FormatFromPath(path) == hypergraph.FormatYAML {
		return pipeline.KindHypergraph
	}
	if gjson.ValidBytes(data) && gjson.GetBytes(data, "hyperedges").Exists() {
		return pipeline.KindHypergraph
	}
	return pipeline.KindEGraph
}

// convertCommand creates the convert command, which writes the flattened
// graph as JSON.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		in     inputFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Flatten an e-graph or hypergraph into graph JSON",
		Long: `Convert reads an e-graph (egraph-serialize JSON) or a hypergraph (JSON or
YAML) and writes the flattened node/edge graph. Use "-" to read from stdin.`,
		Example: `  eggsposition convert fibonacci.json
  eggsposition convert team.yaml --format forcegraph -o team.forcegraph.json
  cat egraph.json | eggsposition convert - --kind egraph`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			if f != render.FormatJSON && f != render.FormatForceGraph {
				return fmt.Errorf("convert writes json or forcegraph; use render for %s", f)
			}
			return c.runConvert(cmd, args[0], in, f, output)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", string(render.FormatJSON), "output format: json, forcegraph")

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, path string, in inputFlags, format render.Format, output string) error {
	ctx := cmd.Context()
	data, err := readInput(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, in.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := c.options(in, path, data)
	opts.Formats = []string{string(format)}
	result, err := runner.Execute(ctx, data, opts)
	if err != nil {
		return err
	}

	for _, d := range result.Diagnostics {
		c.Logger.Warn(d.String())
	}

	artifact := result.Artifacts[string(format)]
	if output == "" {
		_, err := cmd.OutOrStdout().Write(artifact)
		return err
	}
	if err := writeOutput(output, artifact); err != nil {
		return err
	}
	printSuccess("Converted %s", filepath.Base(path))
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ConvertHit)
	printFile(output)
	return nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// Known format extensions are stripped from output; without output the input
// path minus its extension is used.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "graph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, f := range render.Formats() {
		if f == render.FormatJSON {
			continue
		}
		if strings.HasSuffix(output, f.Ext()) {
			return strings.TrimSuffix(output, f.Ext())
		}
	}
	return strings.TrimSuffix(output, render.FormatJSON.Ext())
}
