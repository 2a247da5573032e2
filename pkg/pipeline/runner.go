package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eggsposition/eggsposition/pkg/cache"
	"github.com/eggsposition/eggsposition/pkg/convert"
	"github.com/eggsposition/eggsposition/pkg/egraph"
	"github.com/eggsposition/eggsposition/pkg/graph"
	"github.com/eggsposition/eggsposition/pkg/hypergraph"
	"github.com/eggsposition/eggsposition/pkg/observability"
	"github.com/eggsposition/eggsposition/pkg/render"
)

// Cache hook key types.
const (
	keyTypeGraph    = "graph"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Converted is the output of the convert stage, as stored in the cache.
type Converted struct {
	Graph       graph.Graph          `json:"graph"`
	EGraph      *egraph.Stats        `json:"egraph,omitempty"`
	Diagnostics []convert.Diagnostic `json:"diagnostics,omitempty"`
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → convert → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1+2: Parse and convert
	convertStart := time.Now()
	conv, convertHit, err := r.ConvertWithCacheInfo(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = conv.Graph
	result.EGraph = conv.EGraph
	result.Diagnostics = conv.Diagnostics
	result.Stats.ConvertTime = time.Since(convertStart)
	result.Stats.NodeCount = len(conv.Graph.Nodes)
	result.Stats.EdgeCount = len(conv.Graph.Edges)
	result.CacheInfo.ConvertHit = convertHit

	if data, err := graph.MarshalGraph(conv.Graph); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	opts.Logger.Info("converted graph",
		"kind", opts.Kind,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"cached", convertHit,
		"duration", result.Stats.ConvertTime)
	for _, d := range conv.Diagnostics {
		opts.Logger.Debug("unresolved reference", "detail", d.String())
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, conv.Graph, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// =============================================================================
// Parse
// =============================================================================

// ParseEGraph decodes egraph-serialize JSON and reports the parse to the
// pipeline hooks.
func (r *Runner) ParseEGraph(ctx context.Context, input []byte) (*egraph.SerializedEGraph, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, KindEGraph, len(input))
	start := time.Now()

	eg, err := egraph.Parse(input)
	nodes := 0
	if eg != nil {
		nodes = eg.Nodes.Len()
	}
	hooks.OnParseComplete(ctx, KindEGraph, nodes, time.Since(start), err)
	return eg, err
}

// ParseHypergraph decodes hypergraph JSON or YAML and reports the parse to
// the pipeline hooks.
func (r *Runner) ParseHypergraph(ctx context.Context, input []byte, format hypergraph.Format) (hypergraph.Data, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, KindHypergraph, len(input))
	start := time.Now()

	hg, err := hypergraph.Parse(input, format)
	hooks.OnParseComplete(ctx, KindHypergraph, len(hg.Nodes), time.Since(start), err)
	return hg, err
}

// =============================================================================
// Convert
// =============================================================================

// ConvertWithCacheInfo parses and converts input with caching and returns
// cache hit info. With opts.Refresh the cache is not read but is still
// written.
func (r *Runner) ConvertWithCacheInfo(ctx context.Context, input []byte, opts Options) (*Converted, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForConvert(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.GraphKey(opts.Kind, cache.Hash(input), opts.GraphKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var conv Converted
			if err := json.Unmarshal(data, &conv); err == nil {
				hooks.OnCacheHit(ctx, keyTypeGraph)
				opts.Logger.Debug("graph cache hit", "key", cacheKey)
				return &conv, true, nil
			}
			// Unreadable entries are recomputed and overwritten
		} else if err != nil {
			opts.Logger.Warn("graph cache read failed", "error", err)
		}
		hooks.OnCacheMiss(ctx, keyTypeGraph)
	}

	conv, err := r.convert(ctx, input, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(conv); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph); err != nil {
			opts.Logger.Warn("graph cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, keyTypeGraph, len(data))
		}
	}

	return conv, false, nil
}

// Convert is a convenience wrapper that calls ConvertWithCacheInfo and discards the cache hit info.
func (r *Runner) Convert(ctx context.Context, input []byte, opts Options) (*Converted, error) {
	conv, _, err := r.ConvertWithCacheInfo(ctx, input, opts)
	return conv, err
}

func (r *Runner) convert(ctx context.Context, input []byte, opts Options) (*Converted, error) {
	var conv Converted
	collect := convert.WithDiagnostics(func(d convert.Diagnostic) {
		conv.Diagnostics = append(conv.Diagnostics, d)
	})
	hooks := observability.Pipeline()

	switch opts.Kind {
	case KindHypergraph:
		hg, err := r.ParseHypergraph(ctx, input, opts.InputFormat)
		if err != nil {
			return nil, err
		}
		hooks.OnConvertStart(ctx, KindHypergraph, len(hg.Nodes)+len(hg.Hyperedges))
		start := time.Now()
		g, err := convert.Hypergraph(hg, append(opts.ConvertOptions(), collect)...)
		hooks.OnConvertComplete(ctx, KindHypergraph, len(g.Nodes), len(g.Edges), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		conv.Graph = g

	default:
		eg, err := r.ParseEGraph(ctx, input)
		if err != nil {
			return nil, err
		}
		hooks.OnConvertStart(ctx, KindEGraph, eg.Nodes.Len())
		start := time.Now()
		conv.Graph = convert.EGraph(eg, append(opts.ConvertOptions(), collect)...)
		hooks.OnConvertComplete(ctx, KindEGraph, len(conv.Graph.Nodes), len(conv.Graph.Edges), time.Since(start), nil)
		stats := eg.Stats()
		conv.EGraph = &stats
	}
	return &conv, nil
}

// =============================================================================
// Render
// =============================================================================

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Only formats missing from the cache are rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(graphData)
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.formats))
	var missing []render.Format
	for _, f := range opts.formats {
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(f))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, keyTypeArtifact)
				artifacts[string(f)] = data
				continue
			}
			cacheHooks.OnCacheMiss(ctx, keyTypeArtifact)
		}
		missing = append(missing, f)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, names)
	start := time.Now()

	for _, f := range missing {
		data, err := render.Graph(ctx, g, f, opts.RenderOptions())
		if err != nil {
			hooks.OnRenderComplete(ctx, names, time.Since(start), err)
			return nil, false, err
		}
		artifacts[string(f)] = data

		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(f))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("artifact cache write failed", "format", f, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	hooks.OnRenderComplete(ctx, names, time.Since(start), nil)

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
