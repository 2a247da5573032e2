package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/eggsposition/eggsposition/pkg/hypergraph"
	"github.com/eggsposition/eggsposition/pkg/pipeline"
)

// samplesCommand creates the samples command for the built-in hypergraphs.
func (c *CLI) samplesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Browse the built-in sample hypergraphs",
	}

	cmd.AddCommand(c.samplesListCommand())
	cmd.AddCommand(c.samplesShowCommand())
	cmd.AddCommand(c.samplesPickCommand())

	return cmd
}

func (c *CLI) samplesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the sample hypergraphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			samples := hypergraph.Samples()
			rows := make([][]string, len(samples))
			for i, s := range samples {
				rows[i] = []string{
					s.Slug,
					s.Name,
					strconv.Itoa(len(s.Data.Nodes)),
					strconv.Itoa(len(s.Data.Hyperedges)),
				}
			}
			printTable([]string{"Slug", "Name", "Nodes", "Edges"}, rows)
			printNextStep("Export one", appName+" samples show "+hypergraph.DefaultSample+" -o sample.yaml")
			return nil
		},
	}
}

func (c *CLI) samplesShowCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "show [slug]",
		Short: "Print a sample hypergraph as JSON or YAML",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			var slugs []string
			for _, s := range hypergraph.Samples() {
				slugs = append(slugs, s.Slug)
			}
			return slugs, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := hypergraph.DefaultSample
			if len(args) == 1 {
				slug = args[0]
			}
			s, err := hypergraph.Lookup(slug)
			if err != nil {
				return err
			}

			f := hypergraph.Format(format)
			if f == "" {
				f = hypergraph.FormatJSON
				if output != "" {
					f = hypergraph.FormatFromPath(output)
				}
			}
			if output == "" {
				return hypergraph.Write(cmd.OutOrStdout(), s.Data, f)
			}

			var buf bytes.Buffer
			if err := hypergraph.Write(&buf, s.Data, f); err != nil {
				return err
			}
			if err := writeOutput(output, buf.Bytes()); err != nil {
				return err
			}
			printSuccess("Exported %s", s.Name)
			printFile(output)
			printNextStep("Render it", appName+" render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "", "output format: json, yaml (default from -o extension, else json)")

	return cmd
}

func (c *CLI) samplesPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a sample interactively and summarize it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			final, err := tea.NewProgram(NewSampleListModel(hypergraph.Samples()), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			m, ok := final.(SampleListModel)
			if !ok || m.Selected == nil {
				printInfo("No sample selected")
				return nil
			}
			return c.summarizeSample(cmd.Context(), *m.Selected)
		},
	}
}

// summarizeSample converts s and prints its graph statistics.
func (c *CLI) summarizeSample(ctx context.Context, s hypergraph.Sample) error {
	data, err := json.Marshal(s.Data)
	if err != nil {
		return fmt.Errorf("encode sample: %w", err)
	}
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	conv, err := runner.Convert(ctx, data, pipeline.Options{Kind: pipeline.KindHypergraph, Logger: c.Logger})
	if err != nil {
		return err
	}
	stats := conv.Graph.Stats()

	printSuccess("%s", s.Name)
	printDetail("%s", s.Description)
	printNewline()
	printKeyValue("Nodes", strconv.Itoa(len(s.Data.Nodes)))
	printKeyValue("Hyperedges", strconv.Itoa(len(s.Data.Hyperedges)))
	printKeyValue("Incidence", strconv.Itoa(s.Data.Incidence()))
	printKeyValue("Graph", fmt.Sprintf("%d nodes, %d edges", stats.Nodes, stats.Edges))
	printNewline()
	printNextStep("Export it", appName+" samples show "+s.Slug+" -o "+s.Slug+".yaml")
	return nil
}
