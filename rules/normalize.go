package rules

import (
	"github.com/geoknoesis/rdf-protect/curie"
)

// CheckURIs validates every configured identifier. Full URIs must be
// absolute IRIs. When a prefixes table is configured, every CURIE must
// resolve against it.
func (rs *RuleSet) CheckURIs() error {
	var pm *curie.PrefixMap
	if len(rs.Prefixes) > 0 {
		var err error
		if pm, err = curie.Build(rs.Prefixes); err != nil {
			return &ConfigError{Field: "prefixes", Err: err}
		}
	}
	for _, id := range rs.identifiers() {
		kind, err := curie.Classify(id.value)
		if err != nil {
			return &ConfigError{Field: id.field, Value: id.value, Err: err}
		}
		switch {
		case kind == curie.FullURI:
			err = curie.ValidateFullURI(id.value)
		case pm != nil:
			_, err = pm.Expand(id.value)
		}
		if err != nil {
			return &ConfigError{Field: id.field, Value: id.value, Err: err}
		}
	}
	return nil
}

// ExpandCURIEs returns a copy of rs in which every CURIE, including the
// type keys of on_type_predicate, is replaced by its bracketed expansion.
func (rs *RuleSet) ExpandCURIEs(pm *curie.PrefixMap) (*RuleSet, error) {
	out := &RuleSet{
		Invert:   rs.Invert,
		Prefixes: make(map[string]string, len(rs.Prefixes)),
	}
	for label, ns := range rs.Prefixes {
		out.Prefixes[label] = ns
	}

	var err error
	if out.Nodes.OfType, err = expandSet(pm, "nodes.of_type", rs.Nodes.OfType); err != nil {
		return nil, err
	}
	if out.Objects.OnPredicate, err = expandSet(pm, "objects.on_predicate", rs.Objects.OnPredicate); err != nil {
		return nil, err
	}
	out.Objects.OnTypePredicate = make(map[string]IRISet, len(rs.Objects.OnTypePredicate))
	for typ, predicates := range rs.Objects.OnTypePredicate {
		key, err := pm.Expand(typ)
		if err != nil {
			return nil, &ConfigError{Field: "objects.on_type_predicate", Value: typ, Err: err}
		}
		expanded, err := expandSet(pm, "objects.on_type_predicate["+typ+"]", predicates)
		if err != nil {
			return nil, err
		}
		if existing, ok := out.Objects.OnTypePredicate[key]; ok {
			for v := range expanded {
				existing[v] = struct{}{}
			}
			continue
		}
		out.Objects.OnTypePredicate[key] = expanded
	}
	return out, nil
}

func expandSet(pm *curie.PrefixMap, field string, set IRISet) (IRISet, error) {
	out := make(IRISet, len(set))
	for v := range set {
		expanded, err := pm.Expand(v)
		if err != nil {
			return nil, &ConfigError{Field: field, Value: v, Err: err}
		}
		out[expanded] = struct{}{}
	}
	return out, nil
}

// Normalize validates rs and returns its fully expanded form. Match
// expects normalized rules.
func (rs *RuleSet) Normalize() (*RuleSet, error) {
	if err := rs.CheckURIs(); err != nil {
		return nil, err
	}
	pm, err := curie.Build(rs.Prefixes)
	if err != nil {
		return nil, &ConfigError{Field: "prefixes", Err: err}
	}
	return rs.ExpandCURIEs(pm)
}
