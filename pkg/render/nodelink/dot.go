package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/eggsposition/eggsposition/pkg/errors"
	"github.com/eggsposition/eggsposition/pkg/graph"
)

// Engine names a Graphviz layout engine.
type Engine string

const (
	EngineFDP   Engine = "fdp"
	EngineNeato Engine = "neato"
	EngineSFDP  Engine = "sfdp"
	EngineDot   Engine = "dot"
	EngineCirco Engine = "circo"
	EngineTwopi Engine = "twopi"
)

// DefaultEngine is the force-directed spring model.
const DefaultEngine = EngineFDP

var engines = map[Engine]graphviz.Layout{
	EngineFDP:   graphviz.FDP,
	EngineNeato: graphviz.NEATO,
	EngineSFDP:  graphviz.SFDP,
	EngineDot:   graphviz.DOT,
	EngineCirco: graphviz.CIRCO,
	EngineTwopi: graphviz.TWOPI,
}

// Engines lists the supported engines, default first.
func Engines() []Engine {
	return []Engine{EngineFDP, EngineNeato, EngineSFDP, EngineDot, EngineCirco, EngineTwopi}
}

// ValidateEngine resolves an engine name. An empty name selects [DefaultEngine].
func ValidateEngine(name string) (Engine, error) {
	if name == "" {
		return DefaultEngine, nil
	}
	e := Engine(strings.ToLower(name))
	if _, ok := engines[e]; !ok {
		return "", errors.New(errors.ErrCodeInvalidEngine, "unknown layout engine: %s (valid: fdp, neato, sfdp, dot, circo, twopi)", name)
	}
	return e, nil
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node id and kind under each label.
	Detailed bool
}

const (
	// sizeScale maps graph node sizes to Graphviz inches.
	sizeScale   = 0.04
	fontColor   = "#0f172a"
	edgeColor   = "#94a3b8"
	borderColor = "#1e293b"
)

// ToDOT converts a graph to Graphviz DOT.
//
// Aggregate nodes (e-classes, hyperedges) are circles; primary nodes are
// rounded boxes. Root nodes get a doubled bold border. Edges carry no
// arrowheads so the picture reads like an undirected force layout.
func ToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fontsize=12, fontcolor=%q, color=%q, margin=\"0.15,0.06\"];\n", fontColor, borderColor)
	fmt.Fprintf(&buf, "  edge [arrowhead=none, color=%q, fontsize=10, fontcolor=%q];\n", edgeColor, fontColor)
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Source, e.Target, e.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}
	return label + "\n" + fmt.Sprintf("id: %s\nkind: %s", n.ID, n.Kind)
}

func fmtAttrs(n graph.Node, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", n.DisplayFill()),
	}
	if n.IsAggregate() {
		w := strconv.FormatFloat(n.DisplaySize()*sizeScale, 'f', 2, 64)
		attrs = append(attrs, "shape=circle", "style=filled", "width="+w)
	}
	if n.Root {
		attrs = append(attrs, "peripheries=2", "penwidth=2")
	}
	return attrs
}

// RenderSVG lays out a DOT graph with engine and renders it to SVG.
func RenderSVG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	out, err := render(ctx, dot, engine, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out a DOT graph with engine and renders it to PNG.
func RenderPNG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	return render(ctx, dot, engine, graphviz.PNG)
}

func render(ctx context.Context, dot string, engine Engine, format graphviz.Format) ([]byte, error) {
	layout, ok := engines[engine]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidEngine, "unknown layout engine: %s", engine)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
