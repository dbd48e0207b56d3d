package rdf

import "strings"

// TripleMask selects any combination of the three positions of a triple.
type TripleMask uint8

const (
	// MaskSubject selects the subject.
	MaskSubject TripleMask = 1 << 2
	// MaskPredicate selects the predicate.
	MaskPredicate TripleMask = 1 << 1
	// MaskObject selects the object.
	MaskObject TripleMask = 1 << 0

	// MaskNone selects nothing.
	MaskNone TripleMask = 0
	// MaskAll selects every position.
	MaskAll = MaskSubject | MaskPredicate | MaskObject
)

// Union returns the positions selected by m or other.
func (m TripleMask) Union(other TripleMask) TripleMask { return m | other }

// Invert returns the complement of m within the three position bits.
func (m TripleMask) Invert() TripleMask { return ^m & MaskAll }

// Has reports whether every position in other is selected by m.
func (m TripleMask) Has(other TripleMask) bool { return m&other == other }

// String renders the mask as a "|"-separated list, e.g. "SUBJECT|OBJECT".
func (m TripleMask) String() string {
	if m&MaskAll == 0 {
		return "NONE"
	}
	parts := make([]string, 0, 3)
	if m.Has(MaskSubject) {
		parts = append(parts, "SUBJECT")
	}
	if m.Has(MaskPredicate) {
		parts = append(parts, "PREDICATE")
	}
	if m.Has(MaskObject) {
		parts = append(parts, "OBJECT")
	}
	return strings.Join(parts, "|")
}
