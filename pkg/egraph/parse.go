package egraph

import (
	"encoding/json"
	"io"
	"os"

	"github.com/tidwall/gjson"

	"github.com/eggsposition/eggsposition/pkg/errors"
)

const missingNodes = `Invalid egraph format: missing or invalid "nodes" field`

// Parse decodes an egraph-serialize document.
//
// The text must be JSON whose top level is an object with a "nodes" object.
// "root_eclasses" and "class_data" are optional. Unknown top-level keys are
// ignored.
func Parse(data []byte) (*SerializedEGraph, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return nil, errors.New(errors.ErrCodeInvalidJSON, "Invalid JSON: %v", err)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() || !doc.Get("nodes").IsObject() {
		return nil, errors.New(errors.ErrCodeInvalidEGraph, missingNodes)
	}

	var eg SerializedEGraph
	if err := eg.Nodes.UnmarshalJSON([]byte(doc.Get("nodes").Raw)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEGraph, err, "Invalid egraph format")
	}

	switch roots := doc.Get("root_eclasses"); {
	case roots.IsArray():
		eg.RootEClasses = []string{}
		for _, r := range roots.Array() {
			eg.RootEClasses = append(eg.RootEClasses, r.String())
		}
	case roots.Exists() && roots.Type != gjson.Null:
		return nil, errors.New(errors.ErrCodeInvalidEGraph, `Invalid egraph format: "root_eclasses" must be a list`)
	}

	if cd := doc.Get("class_data"); cd.Exists() && cd.Type != gjson.Null {
		if err := json.Unmarshal([]byte(cd.Raw), &eg.ClassData); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidEGraph, "Invalid egraph format: class_data: %v", err)
		}
	}
	return &eg, nil
}

// Read decodes an egraph-serialize document from r.
func Read(r io.Reader) (*SerializedEGraph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read e-graph")
	}
	return Parse(data)
}

// ReadFile decodes the egraph-serialize document stored at path.
func ReadFile(path string) (*SerializedEGraph, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read %s", path)
	}
	return Parse(data)
}
