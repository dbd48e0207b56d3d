// Package rules holds the pseudonymization rules and decides, per triple,
// which positions must be transformed.
//
// A rule file looks like:
//
//	invert: false
//	prefixes:
//	  ex: <http://example.org/>
//	nodes:
//	  of_type:
//	    - ex:Person
//	objects:
//	  on_predicate:
//	    - <http://example.org/hasLastName>
//	  on_type_predicate:
//	    ex:Person:
//	      - ex:hasAge
//
// Identifiers are either full IRIs in angle brackets or CURIEs resolved
// against prefixes. Rules must be normalized with Normalize before they are
// passed to Match.
package rules

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// RuleSet is the matching configuration.
type RuleSet struct {
	// Invert pseudonymizes exactly the positions no rule selected.
	Invert bool `yaml:"invert" json:"invert"`
	// Prefixes maps CURIE labels to bracketed namespace IRIs. The empty
	// label is the default prefix.
	Prefixes map[string]string `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`
	Nodes    NodeRules         `yaml:"nodes" json:"nodes"`
	Objects  ObjectRules       `yaml:"objects" json:"objects"`
}

// NodeRules select subjects and objects by their type.
type NodeRules struct {
	// OfType lists the types whose instances are pseudonymized wherever
	// they appear as an IRI subject or object.
	OfType IRISet `yaml:"of_type" json:"of_type"`
}

// ObjectRules select objects by predicate.
type ObjectRules struct {
	// OnPredicate lists predicates whose objects are always pseudonymized.
	OnPredicate IRISet `yaml:"on_predicate" json:"on_predicate"`
	// OnTypePredicate maps a subject type to predicates whose objects are
	// pseudonymized for subjects of that type.
	OnTypePredicate map[string]IRISet `yaml:"on_type_predicate" json:"on_type_predicate"`
}

// IRISet is a set of identifiers. It is written as a list in rule files.
type IRISet map[string]struct{}

// NewIRISet returns a set holding values.
func NewIRISet(values ...string) IRISet {
	set := make(IRISet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Has reports whether v is in the set.
func (s IRISet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in lexical order.
func (s IRISet) Sorted() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// UnmarshalYAML accepts a sequence of strings or a single string.
func (s *IRISet) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*s = IRISet{}
			return nil
		}
		*s = NewIRISet(value.Value)
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := value.Decode(&values); err != nil {
			return err
		}
		*s = NewIRISet(values...)
		return nil
	default:
		return fmt.Errorf("line %d: expected a list of identifiers", value.Line)
	}
}

// MarshalYAML writes the set as a sorted list.
func (s IRISet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

// UnmarshalJSON accepts an array of strings.
func (s *IRISet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewIRISet(values...)
	return nil
}

// MarshalJSON writes the set as a sorted array.
func (s IRISet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// WithInvert returns a copy of rs with Invert set to invert. Sets are
// shared with rs.
func (rs *RuleSet) WithInvert(invert bool) *RuleSet {
	clone := *rs
	clone.Invert = invert
	return &clone
}

// identifier is one configured value together with the field it came from.
type identifier struct {
	field string
	value string
}

// identifiers lists every configured identifier in a stable order.
func (rs *RuleSet) identifiers() []identifier {
	var ids []identifier
	for _, v := range rs.Nodes.OfType.Sorted() {
		ids = append(ids, identifier{field: "nodes.of_type", value: v})
	}
	for _, v := range rs.Objects.OnPredicate.Sorted() {
		ids = append(ids, identifier{field: "objects.on_predicate", value: v})
	}
	types := make([]string, 0, len(rs.Objects.OnTypePredicate))
	for typ := range rs.Objects.OnTypePredicate {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		ids = append(ids, identifier{field: "objects.on_type_predicate", value: typ})
		for _, v := range rs.Objects.OnTypePredicate[typ].Sorted() {
			ids = append(ids, identifier{field: "objects.on_type_predicate[" + typ + "]", value: v})
		}
	}
	return ids
}
