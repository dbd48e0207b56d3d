package rules

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const yamlRules = `
invert: true
prefixes:
  ex: <http://example.org/>
  "": <http://default.org/>
nodes:
  of_type:
    - ex:Person
    - <urn:Person>
objects:
  on_predicate:
    - ex:hasLastName
  on_type_predicate:
    ex:Person:
      - ex:hasAge
      - ":hasEmail"
`

const jsoncRules = `{
	// Pseudonymize people.
	"nodes": {"of_type": ["ex:Person"]},
	"prefixes": {"ex": "<http://example.org/>"},
	"objects": {
		"on_predicate": ["ex:hasLastName"],
		"on_type_predicate": {"ex:Person": ["ex:hasAge",]}, /* trailing comma */
	},
}`

func TestParseYAML(t *testing.T) {
	rs, err := ParseYAML([]byte(yamlRules))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rs.Invert {
		t.Fatal("expected invert")
	}
	if rs.Prefixes["ex"] != "<http://example.org/>" || rs.Prefixes[""] != "<http://default.org/>" {
		t.Fatalf("unexpected prefixes %v", rs.Prefixes)
	}
	if got := rs.Nodes.OfType.Sorted(); !reflect.DeepEqual(got, []string{"<urn:Person>", "ex:Person"}) {
		t.Fatalf("unexpected of_type %v", got)
	}
	if !rs.Objects.OnPredicate.Has("ex:hasLastName") {
		t.Fatal("missing on_predicate entry")
	}
	if got := rs.Objects.OnTypePredicate["ex:Person"].Sorted(); !reflect.DeepEqual(got, []string{":hasEmail", "ex:hasAge"}) {
		t.Fatalf("unexpected on_type_predicate %v", got)
	}
}

func TestParseYAMLDefaults(t *testing.T) {
	for _, doc := range []string{"", "nodes: {}\n", "invert: false\nobjects:\n  on_predicate: []\n"} {
		rs, err := ParseYAML([]byte(doc))
		if err != nil {
			t.Fatalf("ParseYAML(%q): %v", doc, err)
		}
		if rs.Invert || len(rs.Nodes.OfType) != 0 || len(rs.Objects.OnPredicate) != 0 || len(rs.Objects.OnTypePredicate) != 0 {
			t.Fatalf("ParseYAML(%q) = %+v, want empty rules", doc, rs)
		}
	}
}

func TestParseYAMLSingleValue(t *testing.T) {
	rs, err := ParseYAML([]byte("nodes:\n  of_type: <urn:Person>\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rs.Nodes.OfType.Has("<urn:Person>") {
		t.Fatalf("unexpected of_type %v", rs.Nodes.OfType)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	for _, doc := range []string{"nodes: [1, 2", "nodes:\n  of_type:\n    a: b\n", "invert: maybe\n"} {
		_, err := ParseYAML([]byte(doc))
		var configErr *ConfigError
		if !errors.As(err, &configErr) {
			t.Fatalf("ParseYAML(%q) error = %v, want *ConfigError", doc, err)
		}
	}
}

func TestParseJSONC(t *testing.T) {
	rs, err := ParseJSON([]byte(jsoncRules))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rs.Nodes.OfType.Has("ex:Person") || !rs.Objects.OnPredicate.Has("ex:hasLastName") {
		t.Fatalf("unexpected rules %+v", rs)
	}
	if !rs.Objects.OnTypePredicate["ex:Person"].Has("ex:hasAge") {
		t.Fatalf("unexpected on_type_predicate %v", rs.Objects.OnTypePredicate)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "rules.yaml")
	jsonPath := filepath.Join(dir, "rules.jsonc")
	if err := os.WriteFile(yamlPath, []byte(yamlRules), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsonPath, []byte(jsoncRules), 0o644); err != nil {
		t.Fatal(err)
	}
	fromYAML, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load(yaml): %v", err)
	}
	fromJSON, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load(jsonc): %v", err)
	}
	if !fromYAML.Invert || fromJSON.Invert {
		t.Fatal("invert flag not loaded")
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestIRISetMarshalSorted(t *testing.T) {
	set := NewIRISet("<urn:b>", "<urn:a>")
	data, err := set.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(values, []string{"<urn:a>", "<urn:b>"}) {
		t.Fatalf("unexpected JSON %s", data)
	}
	value, err := set.MarshalYAML()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(value, []string{"<urn:a>", "<urn:b>"}) {
		t.Fatalf("unexpected YAML value %v", value)
	}
}
