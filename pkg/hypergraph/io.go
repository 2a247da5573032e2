package hypergraph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/eggsposition/eggsposition/pkg/errors"
)

// Format identifies a hypergraph serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension. Anything other than
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes hypergraph data in the given format.
// The document must carry a "nodes" list; "hyperedges" may be omitted.
func Parse(data []byte, format Format) (Data, error) {
	var (
		d   Data
		err error
	)
	switch format {
	case FormatJSON, "":
		d, err = parseJSON(data)
	case FormatYAML:
		d, err = parseYAML(data)
	default:
		return Data{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported hypergraph format: %s", format)
	}
	if err != nil {
		return Data{}, err
	}

	if d.Hyperedges == nil {
		d.Hyperedges = []Hyperedge{}
	}
	if err := d.Validate(); err != nil {
		return Data{}, errors.New(errors.ErrCodeInvalidHypergraph, "Invalid hypergraph: %v", err)
	}
	return d, nil
}

func parseJSON(data []byte) (Data, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return Data{}, errors.New(errors.ErrCodeInvalidHypergraph, "Invalid JSON: %v", err)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() || !doc.Get("nodes").IsArray() {
		return Data{}, errors.New(errors.ErrCodeInvalidHypergraph, `Invalid hypergraph format: missing or invalid "nodes" field`)
	}
	if he := doc.Get("hyperedges"); he.Exists() && !he.IsArray() && he.Type != gjson.Null {
		return Data{}, errors.New(errors.ErrCodeInvalidHypergraph, `Invalid hypergraph format: "hyperedges" must be a list`)
	}

	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return Data{}, errors.New(errors.ErrCodeInvalidHypergraph, "Invalid hypergraph format: %v", err)
	}
	return d, nil
}

func parseYAML(data []byte) (Data, error) {
	var raw struct {
		Nodes      *[]Node     `yaml:"nodes"`
		Hyperedges []Hyperedge `yaml:"hyperedges"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return Data{}, errors.New(errors.ErrCodeInvalidHypergraph, "Invalid YAML: empty document")
		}
		return Data{}, errors.New(errors.ErrCodeInvalidHypergraph, "Invalid YAML: %v", err)
	}
	if raw.Nodes == nil {
		return Data{}, errors.New(errors.ErrCodeInvalidHypergraph, `Invalid hypergraph format: missing or invalid "nodes" field`)
	}
	return Data{Nodes: *raw.Nodes, Hyperedges: raw.Hyperedges}, nil
}

// Read decodes hypergraph data from r.
func Read(r io.Reader, format Format) (Data, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Data{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read hypergraph")
	}
	return Parse(data, format)
}

// ReadFile decodes the hypergraph stored at path, choosing the format from
// its extension.
func ReadFile(path string) (Data, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Data{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Data{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return Data{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read %s", path)
	}
	return Parse(data, FormatFromPath(path))
}

// Write encodes d in the given format.
func Write(w io.Writer, d Data, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(d)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported hypergraph format: %s", format)
	}
}
