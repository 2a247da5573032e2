package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eggsposition/eggsposition/pkg/buildinfo"
	"github.com/eggsposition/eggsposition/pkg/convert"
	"github.com/eggsposition/eggsposition/pkg/egraph"
	"github.com/eggsposition/eggsposition/pkg/errors"
	"github.com/eggsposition/eggsposition/pkg/graph"
	"github.com/eggsposition/eggsposition/pkg/hypergraph"
	"github.com/eggsposition/eggsposition/pkg/pipeline"
	"github.com/eggsposition/eggsposition/pkg/render"
	"github.com/eggsposition/eggsposition/pkg/store"
)

const maxNameLength = 200

// =============================================================================
// Response Types
// =============================================================================

type sampleSummary struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Nodes       int    `json:"nodes"`
	Hyperedges  int    `json:"hyperedges"`
}

type sampleResponse struct {
	sampleSummary
	Graph graph.Graph `json:"graph"`
	Stats graph.Stats `json:"stats"`
}

type createResponse struct {
	ID          string               `json:"id"`
	Kind        store.Kind           `json:"kind"`
	Name        string               `json:"name,omitempty"`
	Graph       graph.Graph          `json:"graph"`
	Stats       graph.Stats          `json:"stats"`
	EGraph      *egraph.Stats        `json:"egraph,omitempty"`
	Diagnostics []convert.Diagnostic `json:"diagnostics,omitempty"`
	Cached      bool                 `json:"cached"`
	CreatedAt   time.Time            `json:"created_at"`
}

type graphSummary struct {
	ID        string      `json:"id"`
	Kind      store.Kind  `json:"kind"`
	Name      string      `json:"name,omitempty"`
	Stats     graph.Stats `json:"stats"`
	CreatedAt time.Time   `json:"created_at"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleListSamples(w http.ResponseWriter, _ *http.Request) {
	samples := hypergraph.Samples()
	out := make([]sampleSummary, len(samples))
	for i, sm := range samples {
		out[i] = summarizeSample(sm)
	}
	writeJSON(w, http.StatusOK, map[string]any{"samples": out})
}

func (s *Server) handleGetSample(w http.ResponseWriter, r *http.Request) {
	sm, err := hypergraph.Lookup(chi.URLParam(r, "slug"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := json.Marshal(sm.Data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	conv, err := s.runner.Convert(r.Context(), data, pipeline.Options{Kind: pipeline.KindHypergraph})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sampleResponse{
		sampleSummary: summarizeSample(sm),
		Graph:         conv.Graph,
		Stats:         conv.Graph.Stats(),
	})
}

func (s *Server) handleCreateEGraph(w http.ResponseWriter, r *http.Request) {
	s.create(w, r, pipeline.Options{Kind: pipeline.KindEGraph})
}

func (s *Server) handleCreateHypergraph(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		Kind:        pipeline.KindHypergraph,
		InputFormat: inputFormat(r),
	}
	if s.strictMembers {
		opts.MemberPolicy = convert.MembersStrict.String()
	}
	if m := r.URL.Query().Get("members"); m != "" {
		opts.MemberPolicy = m
	}
	s.create(w, r, opts)
}

// create converts the request body and stores the result.
func (s *Server) create(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if len(name) > maxNameLength {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength))
		return
	}

	conv, cached, err := s.runner.ConvertWithCacheInfo(r.Context(), body, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.store.Put(r.Context(), store.Document{
		Kind:   store.Kind(opts.Kind),
		Name:   name,
		Source: body,
		Graph:  conv.Graph,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/graphs/"+doc.ID)
	writeJSON(w, http.StatusCreated, createResponse{
		ID:          doc.ID,
		Kind:        doc.Kind,
		Name:        doc.Name,
		Graph:       doc.Graph,
		Stats:       doc.Stats,
		EGraph:      conv.EGraph,
		Diagnostics: conv.Diagnostics,
		Cached:      cached,
		CreatedAt:   doc.CreatedAt,
	})
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}

	docs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]graphSummary, len(docs))
	for i, d := range docs {
		out[i] = graphSummary{ID: d.ID, Kind: d.Kind, Name: d.Name, Stats: d.Stats, CreatedAt: d.CreatedAt}
	}
	writeJSON(w, http.StatusOK, map[string]any{"graphs": out})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := render.FormatSVG
	if v := q.Get("format"); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = f
	}
	engine := s.engine
	if v := q.Get("engine"); v != "" {
		engine = v
	}
	detailed := s.detailed
	if v := q.Get("detailed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid detailed flag: %q", v))
			return
		}
		detailed = b
	}
	opts := pipeline.Options{Formats: []string{string(format)}, Engine: engine, Detailed: detailed}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}
	artifacts, err := s.runner.Render(r.Context(), doc.Graph, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[string(format)])
}

// =============================================================================
// Helpers
// =============================================================================

// lookup loads the document named by the {id} URL parameter, writing the
// error response itself when it fails.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (store.Document, bool) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, r, err)
		return store.Document{}, false
	}
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return store.Document{}, false
	}
	return doc, true
}

// readBody reads the request body up to the upload limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeErrorCode(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
				"request body exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			return nil, false
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read request body"))
		return nil, false
	}
	if len(body) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body is empty"))
		return nil, false
	}
	return body, true
}

// inputFormat picks YAML for YAML media types and JSON otherwise.
func inputFormat(r *http.Request) hypergraph.Format {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return hypergraph.FormatJSON
	}
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return hypergraph.FormatYAML
	default:
		return hypergraph.FormatJSON
	}
}

func summarizeSample(sm hypergraph.Sample) sampleSummary {
	return sampleSummary{
		Slug:        sm.Slug,
		Name:        sm.Name,
		Description: sm.Description,
		Nodes:       len(sm.Data.Nodes),
		Hyperedges:  len(sm.Data.Hyperedges),
	}
}
