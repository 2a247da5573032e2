// Package pipeline runs the parse → convert → render pipeline for eggsposition.
//
// The CLI and the HTTP server both go through this package, so caching,
// defaults and validation behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode an e-graph (egraph-serialize JSON) or a hypergraph (JSON or YAML)
//  2. Convert: Flatten it into a [graph.Graph]
//  3. Render: Produce artifacts (JSON, force-graph JSON, DOT, SVG, PNG)
//
// Convert results are cached by the hash of the raw input plus the options
// that change the graph. Artifacts are cached by the hash of the converted
// graph plus the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{
//	    Kind:    pipeline.KindEGraph,
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eggsposition/eggsposition/pkg/cache"
	"github.com/eggsposition/eggsposition/pkg/convert"
	"github.com/eggsposition/eggsposition/pkg/egraph"
	"github.com/eggsposition/eggsposition/pkg/errors"
	"github.com/eggsposition/eggsposition/pkg/graph"
	"github.com/eggsposition/eggsposition/pkg/hypergraph"
	"github.com/eggsposition/eggsposition/pkg/render"
	"github.com/eggsposition/eggsposition/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Input kinds.
const (
	KindEGraph     = "egraph"
	KindHypergraph = "hypergraph"
)

// DefaultKind is the input kind assumed when none is given.
const DefaultKind = KindEGraph

// DefaultFormat is the output format produced when none is given.
const DefaultFormat = render.FormatJSON

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Kind        string            `json:"kind,omitempty"`
	InputFormat hypergraph.Format `json:"input_format,omitempty"` // Hypergraph only
	Refresh     bool              `json:"refresh,omitempty"`

	// Convert options
	MemberPolicy string `json:"member_policy,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Engine   string   `json:"engine,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	formats   []render.Format
	policy    convert.MemberPolicy
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the converted graph.
	Graph graph.Graph

	// GraphHash is the content hash of the graph's JSON form.
	GraphHash string

	// EGraph summarizes the parsed e-graph. Nil for hypergraph input.
	EGraph *egraph.Stats

	// Diagnostics lists unresolved references met during conversion.
	Diagnostics []convert.Diagnostic

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ConvertTime time.Duration // Includes parsing; zero work on a cache hit
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ConvertHit bool // Whether the converted graph came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateKind checks that kind names a supported input kind.
func ValidateKind(kind string) error {
	switch kind {
	case KindEGraph, KindHypergraph:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown input kind: %q (must be one of: egraph, hypergraph)", kind)
	}
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForConvert(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForConvert checks and defaults the parse and convert options.
func (o *Options) ValidateForConvert() error {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.InputFormat == "" {
		o.InputFormat = hypergraph.FormatJSON
	}
	if o.InputFormat != hypergraph.FormatJSON && o.InputFormat != hypergraph.FormatYAML {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown input format: %q (must be one of: json, yaml)", o.InputFormat)
	}

	policy, err := convert.ParseMemberPolicy(o.MemberPolicy)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "%v", err)
	}
	o.policy = policy
	o.MemberPolicy = policy.String()

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(DefaultFormat)}
	}
	if o.Engine == "" {
		o.Engine = string(nodelink.DefaultEngine)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering. Formats are
// normalized to lower case and de-duplicated.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()

	engine, err := nodelink.ValidateEngine(o.Engine)
	if err != nil {
		return err
	}
	o.Engine = string(engine)

	o.formats = nil
	seen := make(map[render.Format]bool)
	for _, name := range o.Formats {
		f, err := render.ParseFormat(name)
		if err != nil {
			return err
		}
		if !seen[f] {
			seen[f] = true
			o.formats = append(o.formats, f)
		}
	}
	names := make([]string, len(o.formats))
	for i, f := range o.formats {
		names[i] = string(f)
	}
	o.Formats = names
	return nil
}

// ConvertOptions returns the converter options selected by o.
func (o *Options) ConvertOptions() []convert.Option {
	return []convert.Option{convert.WithMemberPolicy(o.policy)}
}

// RenderOptions returns the renderer options selected by o.
func (o *Options) RenderOptions() render.Options {
	return render.Options{Engine: nodelink.Engine(o.Engine), Detailed: o.Detailed}
}

// GraphKeyOpts returns cache key options for conversion.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	// The e-graph converter ignores the member policy.
	if o.Kind == KindEGraph {
		return cache.GraphKeyOpts{}
	}
	return cache.GraphKeyOpts{
		InputFormat:  string(o.InputFormat),
		MemberPolicy: o.MemberPolicy,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format render.Format) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: string(format)}
	switch format {
	case render.FormatSVG, render.FormatPNG:
		opts.Engine = o.Engine
		opts.Detailed = o.Detailed
	case render.FormatDOT:
		opts.Detailed = o.Detailed
	}
	return opts
}
