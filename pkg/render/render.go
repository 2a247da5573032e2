package render

import (
	"context"
	"strings"

	"github.com/eggsposition/eggsposition/pkg/errors"
	"github.com/eggsposition/eggsposition/pkg/graph"
	"github.com/eggsposition/eggsposition/pkg/render/nodelink"
)

// Format is an output artifact format.
type Format string

const (
	FormatJSON       Format = "json"
	FormatForceGraph Format = "forcegraph"
	FormatDOT        Format = "dot"
	FormatSVG        Format = "svg"
	FormatPNG        Format = "png"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatForceGraph, FormatDOT, FormatSVG, FormatPNG}
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FormatJSON, FormatForceGraph, FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s (valid: json, forcegraph, dot, svg, png)", name)
	}
}

// ParseFormats resolves a comma-separated list, dropping duplicates.
func ParseFormats(list string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatForceGraph:
		return ".forcegraph.json"
	case FormatDOT:
		return ".dot"
	case FormatSVG:
		return ".svg"
	case FormatPNG:
		return ".png"
	default:
		return ".json"
	}
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

// Binary reports whether f produces non-text output.
func (f Format) Binary() bool { return f == FormatPNG }

// Options configures layout-based formats.
type Options struct {
	Engine   nodelink.Engine
	Detailed bool
}

// Graph renders g in format f.
func Graph(ctx context.Context, g graph.Graph, f Format, opts Options) ([]byte, error) {
	engine := opts.Engine
	if engine == "" {
		engine = nodelink.DefaultEngine
	}

	switch f {
	case FormatJSON:
		return graph.MarshalGraph(g)
	case FormatForceGraph:
		return graph.MarshalForceGraph(g)
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed}), engine)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed}), engine)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", f)
	}
}
