package typeindex

import (
	"fmt"
	"sort"
)

// FormatVersion is the version written into persisted indexes.
const FormatVersion = 1

// Document is the persisted form of an Index: the type catalogue and one
// entry per subject key, sorted by hash so equal indexes encode to equal
// bytes.
type Document struct {
	Version  int            `cbor:"1,keyasint" yaml:"version"`
	Types    []string       `cbor:"2,keyasint" yaml:"types"`
	Subjects []SubjectEntry `cbor:"3,keyasint" yaml:"subjects"`
}

// SubjectEntry lists the catalogue positions of the types of one subject.
type SubjectEntry struct {
	Hash  uint64   `cbor:"1,keyasint" yaml:"hash"`
	Types []uint32 `cbor:"2,keyasint" yaml:"types,flow"`
}

// Document returns the persisted form of ix.
func (ix *Index) Document() Document {
	doc := Document{
		Version:  FormatVersion,
		Types:    ix.Types(),
		Subjects: make([]SubjectEntry, 0, len(ix.subjects)),
	}
	for hash, indices := range ix.subjects {
		doc.Subjects = append(doc.Subjects, SubjectEntry{
			Hash:  hash,
			Types: append([]uint32(nil), indices...),
		})
	}
	sort.Slice(doc.Subjects, func(i, j int) bool {
		return doc.Subjects[i].Hash < doc.Subjects[j].Hash
	})
	return doc
}

// FromDocument rebuilds an Index from its persisted form. Documents that
// violate the index invariants are rejected with ErrFormat.
func FromDocument(doc Document) (*Index, error) {
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, doc.Version)
	}
	ix := &Index{
		types:    make([]string, 0, len(doc.Types)),
		lookup:   make(map[string]uint32, len(doc.Types)),
		subjects: make(map[uint64][]uint32, len(doc.Subjects)),
	}
	for i, typ := range doc.Types {
		if typ == "" {
			return nil, fmt.Errorf("%w: empty type at position %d", ErrFormat, i)
		}
		if _, dup := ix.lookup[typ]; dup {
			return nil, fmt.Errorf("%w: duplicate type %q", ErrFormat, typ)
		}
		ix.lookup[typ] = uint32(i)
		ix.types = append(ix.types, typ)
	}
	for _, entry := range doc.Subjects {
		if _, dup := ix.subjects[entry.Hash]; dup {
			return nil, fmt.Errorf("%w: duplicate subject key %016x", ErrFormat, entry.Hash)
		}
		if len(entry.Types) == 0 {
			return nil, fmt.Errorf("%w: subject key %016x has no types", ErrFormat, entry.Hash)
		}
		seen := make(map[uint32]struct{}, len(entry.Types))
		for _, idx := range entry.Types {
			if int(idx) >= len(ix.types) {
				return nil, fmt.Errorf("%w: subject key %016x references type %d of %d", ErrFormat, entry.Hash, idx, len(ix.types))
			}
			if _, dup := seen[idx]; dup {
				return nil, fmt.Errorf("%w: subject key %016x repeats type %d", ErrFormat, entry.Hash, idx)
			}
			seen[idx] = struct{}{}
		}
		ix.subjects[entry.Hash] = append([]uint32(nil), entry.Types...)
	}
	return ix, nil
}
