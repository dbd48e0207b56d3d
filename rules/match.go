package rules

import "github.com/geoknoesis/rdf-protect/rdf"

// TypeLookup returns the types recorded for a subject in N-Triples form.
// *typeindex.Index satisfies it.
type TypeLookup interface {
	Get(subject string) ([]string, bool)
}

// Match returns the positions of t that rs selects for pseudonymization.
// rs must be normalized. Subjects absent from index have no type. Match
// has no side effects and never fails.
//
// Direct rules only ever select the subject or the object; the predicate
// is selected only when Invert complements the mask.
func Match(t rdf.Triple, rs *RuleSet, index TypeLookup) rdf.TripleMask {
	mask := matchNodes(t, rs, index).Union(matchObject(t, rs, index))
	if rs.Invert {
		mask = mask.Invert()
	}
	return mask
}

func matchNodes(t rdf.Triple, rs *RuleSet, index TypeLookup) rdf.TripleMask {
	if len(rs.Nodes.OfType) == 0 {
		return rdf.MaskNone
	}
	mask := rdf.MaskNone
	if subject, ok := t.S.(rdf.IRI); ok && hasTypeIn(index, rdf.Render(subject), rs.Nodes.OfType) {
		mask = mask.Union(rdf.MaskSubject)
	}
	if object, ok := t.O.(rdf.IRI); ok && hasTypeIn(index, rdf.Render(object), rs.Nodes.OfType) {
		mask = mask.Union(rdf.MaskObject)
	}
	return mask
}

func matchObject(t rdf.Triple, rs *RuleSet, index TypeLookup) rdf.TripleMask {
	predicate := rdf.Render(t.P)
	if rs.Objects.OnPredicate.Has(predicate) {
		return rdf.MaskObject
	}
	if len(rs.Objects.OnTypePredicate) == 0 || t.S == nil || t.S.Kind() == rdf.TermLiteral {
		return rdf.MaskNone
	}
	for _, typ := range lookup(index, rdf.Render(t.S)) {
		if rs.Objects.OnTypePredicate[typ].Has(predicate) {
			return rdf.MaskObject
		}
	}
	return rdf.MaskNone
}

func hasTypeIn(index TypeLookup, key string, set IRISet) bool {
	for _, typ := range lookup(index, key) {
		if set.Has(typ) {
			return true
		}
	}
	return false
}

func lookup(index TypeLookup, key string) []string {
	if index == nil {
		return nil
	}
	types, _ := index.Get(key)
	return types
}
