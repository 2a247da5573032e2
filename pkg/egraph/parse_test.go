package egraph

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/eggsposition/eggsposition/pkg/errors"
)

const twoClass = `{
	"nodes": {
		"n2": {"op": "+", "children": ["n0", "n1"], "eclass": "e2", "cost": 1.5},
		"n0": {"op": "x", "eclass": "e0"},
		"n1": {"op": "2", "eclass": "e1", "subsumed": true},
		"n3": {"op": "*", "children": ["n0", "n1"], "eclass": "e2"}
	},
	"root_eclasses": ["e2"],
	"class_data": {"e2": {"type": "Math", "note": [1, 2]}}
}`

func TestParse(t *testing.T) {
	eg, err := Parse([]byte(twoClass))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got, want := eg.Nodes.Keys(), []string{"n2", "n0", "n1", "n3"}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	n2, ok := eg.Nodes.Get("n2")
	if !ok {
		t.Fatal("n2 missing")
	}
	if n2.Op != "+" || n2.EClass != "e2" || !slices.Equal(n2.Children, []string{"n0", "n1"}) {
		t.Errorf("n2 = %+v", n2)
	}
	if n2.Cost == nil || *n2.Cost != 1.5 {
		t.Errorf("n2.Cost = %v, want 1.5", n2.Cost)
	}

	n1, _ := eg.Nodes.Get("n1")
	if !n1.Subsumed || n1.Cost != nil {
		t.Errorf("n1 = %+v, want subsumed without cost", n1)
	}

	if !slices.Equal(eg.RootEClasses, []string{"e2"}) {
		t.Errorf("RootEClasses = %v", eg.RootEClasses)
	}
	if got := eg.ClassType("e2"); got != "Math" {
		t.Errorf("ClassType(e2) = %q, want Math", got)
	}
	if _, ok := eg.ClassData["e2"].Extra["note"]; !ok {
		t.Error("class_data extension field dropped")
	}
}

func TestParseOptionalFields(t *testing.T) {
	eg, err := Parse([]byte(`{"nodes": {}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if eg.Nodes.Len() != 0 {
		t.Errorf("Len() = %d, want 0", eg.Nodes.Len())
	}
	if eg.RootEClasses != nil || eg.ClassData != nil {
		t.Errorf("optional fields should be absent: %+v", eg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		code     errors.Code
		contains string
	}{
		{"NotJSON", `{not json`, errors.ErrCodeInvalidJSON, "Invalid JSON"},
		{"Empty", ``, errors.ErrCodeInvalidJSON, "Invalid JSON"},
		{"MissingNodes", `{"foo": 1}`, errors.ErrCodeInvalidEGraph, `"nodes"`},
		{"NodesArray", `{"nodes": []}`, errors.ErrCodeInvalidEGraph, `"nodes"`},
		{"NodesNull", `{"nodes": null}`, errors.ErrCodeInvalidEGraph, `"nodes"`},
		{"TopLevelArray", `[1, 2]`, errors.ErrCodeInvalidEGraph, `"nodes"`},
		{"RootsWrongType", `{"nodes": {}, "root_eclasses": "e1"}`, errors.ErrCodeInvalidEGraph, "Invalid egraph format"},
		{"ClassDataWrongType", `{"nodes": {}, "class_data": [1]}`, errors.ErrCodeInvalidEGraph, "class_data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
			if msg := errors.UserMessage(err); !strings.Contains(msg, tt.contains) {
				t.Errorf("message %q does not contain %q", msg, tt.contains)
			}
		})
	}
}

func TestParseToleratesNodeShapes(t *testing.T) {
	tests := []struct {
		name string
		node string
		want Node
	}{
		{"NumericEClass", `{"op": "a", "eclass": 3}`, Node{Op: "a", EClass: "3"}},
		{"NumericChildren", `{"op": "f", "eclass": "e", "children": [2, "n1"]}`, Node{Op: "f", EClass: "e", Children: []string{"2", "n1"}}},
		{"ChildrenNotList", `{"op": "f", "eclass": "e", "children": "n2"}`, Node{Op: "f", EClass: "e"}},
		{"CostNotNumber", `{"op": "a", "eclass": "e", "cost": "high"}`, Node{Op: "a", EClass: "e"}},
		{"NotObject", `5`, Node{}},
		{"NullNode", `null`, Node{}},
		{"CaseSensitiveNames", `{"OP": "x", "EClass": "e9", "op": "a", "eclass": "e1"}`, Node{Op: "a", EClass: "e1"}},
		{"UpperCaseDoesNotOverride", `{"eclass": "e1", "ECLASS": "e2"}`, Node{EClass: "e1"}},
		{"RepeatedFieldLastWins", `{"eclass": "e1", "eclass": "e2"}`, Node{EClass: "e2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eg, err := Parse([]byte(`{"nodes": {"n1": ` + tt.node + `}}`))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got, ok := eg.Nodes.Get("n1")
			if !ok {
				t.Fatal("n1 missing")
			}
			if got.Op != tt.want.Op || got.EClass != tt.want.EClass || got.Cost != nil ||
				got.Subsumed || !slices.Equal(got.Children, tt.want.Children) {
				t.Errorf("n1 = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseNumericRoots(t *testing.T) {
	eg, err := Parse([]byte(`{"nodes": {"n1": {"op": "a", "eclass": 0}}, "root_eclasses": [0]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !eg.IsRoot("0") {
		t.Errorf("RootEClasses = %v, want [0]", eg.RootEClasses)
	}
	if got := eg.EClasses(); !slices.Equal(got, []string{"0"}) {
		t.Errorf("EClasses() = %v, want [0]", got)
	}
}

func TestParseErrorMentionsCauseOnce(t *testing.T) {
	_, err := Parse([]byte(`{"nodes": {}, "class_data": {"e1": 5}}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	detail := strings.TrimPrefix(errors.UserMessage(err), "Invalid egraph format: class_data: ")
	if detail == "" || strings.Count(err.Error(), detail) != 1 {
		t.Errorf("Error() = %q repeats the cause", err.Error())
	}

	_, err = Parse([]byte(`{not json`))
	detail = strings.TrimPrefix(errors.UserMessage(err), "Invalid JSON: ")
	if strings.Count(err.Error(), detail) != 1 {
		t.Errorf("Error() = %q repeats the cause", err.Error())
	}
}

func TestParseErrorKinds(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	if !errors.IsSyntax(err) || errors.IsValidation(err) {
		t.Errorf("syntax error classified wrong: %v", err)
	}
	if !strings.HasPrefix(errors.UserMessage(err), "Invalid JSON: ") {
		t.Errorf("UserMessage = %q", errors.UserMessage(err))
	}

	_, err = Parse([]byte(`{"foo": 1}`))
	if errors.IsSyntax(err) || !errors.IsValidation(err) {
		t.Errorf("validation error classified wrong: %v", err)
	}
	if got := errors.UserMessage(err); got != missingNodes {
		t.Errorf("UserMessage = %q, want %q", got, missingNodes)
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	eg, err := Parse([]byte(`{"nodes": {
		"a": {"op": "first", "eclass": "e"},
		"b": {"op": "b", "eclass": "e"},
		"a": {"op": "last", "eclass": "e"}
	}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := eg.Nodes.Keys(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", got)
	}
	if a, _ := eg.Nodes.Get("a"); a.Op != "last" {
		t.Errorf("a.Op = %q, want last", a.Op)
	}
}

func TestDanglingChildrenAccepted(t *testing.T) {
	eg, err := Parse([]byte(`{"nodes": {"n1": {"op": "f", "eclass": "e1", "children": ["ghost"]}}}`))
	if err != nil {
		t.Fatalf("Parse should not check references: %v", err)
	}
	n1, _ := eg.Nodes.Get("n1")
	if !slices.Equal(n1.Children, []string{"ghost"}) {
		t.Errorf("Children = %v", n1.Children)
	}
}

func TestEClassesAndMembers(t *testing.T) {
	eg, err := Parse([]byte(twoClass))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := eg.EClasses(), []string{"e2", "e0", "e1"}; !slices.Equal(got, want) {
		t.Errorf("EClasses() = %v, want %v", got, want)
	}
	if got, want := eg.Members("e2"), []string{"n2", "n3"}; !slices.Equal(got, want) {
		t.Errorf("Members(e2) = %v, want %v", got, want)
	}
	if !eg.IsRoot("e2") || eg.IsRoot("e0") {
		t.Error("IsRoot mismatch")
	}
	if got, want := eg.Stats(), (Stats{Nodes: 4, EClasses: 3, Roots: 1}); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestMarshalPreservesOrder(t *testing.T) {
	eg, err := Parse([]byte(twoClass))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := json.Marshal(eg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Parse(data)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	if !slices.Equal(again.Nodes.Keys(), eg.Nodes.Keys()) {
		t.Errorf("order changed: %v -> %v", eg.Nodes.Keys(), again.Nodes.Keys())
	}
	if again.ClassType("e2") != "Math" {
		t.Error("class type lost in round trip")
	}
	if string(again.ClassData["e2"].Extra["note"]) != "[1,2]" {
		t.Errorf("extra = %s", again.ClassData["e2"].Extra["note"])
	}
}

func TestClassDataNonStringType(t *testing.T) {
	var cd ClassData
	if err := json.Unmarshal([]byte(`{"type": 3}`), &cd); err != nil {
		t.Fatal(err)
	}
	if cd.Type != "" {
		t.Errorf("Type = %q, want empty", cd.Type)
	}
	if string(cd.Extra["type"]) != "3" {
		t.Errorf("non-string type not kept in Extra: %v", cd.Extra)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eg.json")
	if err := os.WriteFile(path, []byte(twoClass), 0o644); err != nil {
		t.Fatal(err)
	}

	eg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if eg.Nodes.Len() != 4 {
		t.Errorf("Len() = %d, want 4", eg.Nodes.Len())
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	_, err = ReadFile("")
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty path error = %v, want INVALID_PATH", err)
	}
}

func TestRead(t *testing.T) {
	eg, err := Read(strings.NewReader(`{"nodes": {"n1": {"op": "a", "eclass": "e1"}}}`))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if eg.Nodes.Len() != 1 {
		t.Errorf("Len() = %d, want 1", eg.Nodes.Len())
	}
}
