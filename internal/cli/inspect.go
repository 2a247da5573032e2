package cli

import (
	"context"
	"strings"

	"github.com/eggsposition/eggsposition/pkg/convert"
)

// runInspect loads an e-graph file, flattens it and prints a summary.
func (c *CLI) runInspect(ctx context.Context, path string) error {
	printInfo("Loading e-graph from: %s", path)
	data, err := readInput(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	printInfo("Parsing e-graph...")
	eg, err := runner.ParseEGraph(ctx, data)
	if err != nil {
		return err
	}
	stats := eg.Stats()
	printSuccess("Parsed e-graph with %d nodes", stats.Nodes)
	if len(eg.RootEClasses) > 0 {
		printSuccess("Root e-classes: %s", strings.Join(eg.RootEClasses, ", "))
	}

	printNewline()
	printInfo("Converting to visualization format...")
	g := convert.EGraph(eg)
	printSuccess("Graph has %d nodes and %d edges", len(g.Nodes), len(g.Edges))
	printSuccess("E-graph contains %d e-classes", stats.EClasses)

	printDone("E-graph loaded successfully!")
	printNextStep("Render it", appName+" render "+path+" -f svg")
	return nil
}
