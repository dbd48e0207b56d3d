// Package typeindex records which rdf:type objects are asserted for each
// subject of a graph.
//
// An Index is filled during a single pass over the input and is read-only
// afterwards. Subjects are keyed by a 64-bit FNV-1a hash of their
// N-Triples form and type strings are stored once in a shared catalogue,
// so memory grows with the number of distinct subjects and types rather
// than with the number of type assertions. Two subjects whose hashes
// collide share one entry; the union of their types is reported for both.
package typeindex

import (
	"hash/fnv"

	"github.com/geoknoesis/rdf-protect/rdf"
)

// Index maps hashed subjects to sets of types.
//
// Insert and Add must not be called concurrently with any other method.
// Once filling has finished, Get may be called from many goroutines.
type Index struct {
	types    []string
	lookup   map[string]uint32
	subjects map[uint64][]uint32
}

// New returns an empty index.
func New() *Index {
	return &Index{
		lookup:   make(map[string]uint32),
		subjects: make(map[uint64][]uint32),
	}
}

// HashKey returns the 64-bit key under which subject is stored.
func HashKey(subject string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(subject))
	return h.Sum64()
}

// Insert records that subject has type typ. It reports whether the pair
// was new.
func (ix *Index) Insert(subject, typ string) bool {
	key := HashKey(subject)
	idx, ok := ix.lookup[typ]
	if !ok {
		idx = uint32(len(ix.types))
		ix.types = append(ix.types, typ)
		ix.lookup[typ] = idx
	}
	for _, existing := range ix.subjects[key] {
		if existing == idx {
			return false
		}
	}
	ix.subjects[key] = append(ix.subjects[key], idx)
	return true
}

// Add records t when it is an rdf:type assertion with a non-literal
// object. It reports whether t was recorded as a new pair.
func (ix *Index) Add(t rdf.Triple) bool {
	if t.P.Value != rdf.RDFType || t.O == nil || t.O.Kind() == rdf.TermLiteral {
		return false
	}
	return ix.Insert(rdf.Render(t.S), rdf.Render(t.O))
}

// Get returns the types recorded for subject in insertion order.
func (ix *Index) Get(subject string) ([]string, bool) {
	indices, ok := ix.subjects[HashKey(subject)]
	if !ok {
		return nil, false
	}
	types := make([]string, len(indices))
	for i, idx := range indices {
		types[i] = ix.types[idx]
	}
	return types, true
}

// Len returns the number of distinct subject keys.
func (ix *Index) Len() int {
	return len(ix.subjects)
}

// Types returns a copy of the type catalogue in insertion order.
func (ix *Index) Types() []string {
	return append([]string(nil), ix.types...)
}
