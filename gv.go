package graphviz

import ("context";"io";"errors")

type Layout string
type Format string
const (FDP Layout="fdp";NEATO Layout="neato";SFDP Layout="sfdp";DOT Layout="dot";CIRCO Layout="circo";TWOPI Layout="twopi")
const (SVG Format="svg";PNG Format="png")
type Graph struct{}
func (g *Graph) Close() error { return nil }
type Graphviz struct{}
func New(ctx context.Context) (*Graphviz, error) { return &Graphviz{}, nil }
func (g *Graphviz) Close() error { return nil }
func (g *Graphviz) SetLayout(l Layout) *Graphviz { return g }
func (g *Graphviz) Render(ctx context.Context, gr *Graph, f Format, w io.Writer) error { return errors.New("stub") }
func ParseBytes(b []byte) (*Graph, error) { return &Graph{}, nil }
