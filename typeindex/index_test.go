package typeindex

import (
	"reflect"
	"sync"
	"testing"

	"github.com/geoknoesis/rdf-protect/rdf"
)

func TestInsertAndGet(t *testing.T) {
	ix := New()
	if !ix.Insert("<urn:Alice>", "<urn:Person>") {
		t.Fatal("first insert should be new")
	}
	if !ix.Insert("<urn:Alice>", "<urn:Agent>") {
		t.Fatal("second type should be new")
	}
	if ix.Insert("<urn:Alice>", "<urn:Person>") {
		t.Fatal("duplicate pair should not be new")
	}
	ix.Insert("<urn:Bob>", "<urn:Person>")

	got, ok := ix.Get("<urn:Alice>")
	if !ok {
		t.Fatal("expected Alice to be indexed")
	}
	if want := []string{"<urn:Person>", "<urn:Agent>"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Get(Alice) = %v, want %v", got, want)
	}
	if got, _ := ix.Get("<urn:Bob>"); !reflect.DeepEqual(got, []string{"<urn:Person>"}) {
		t.Fatalf("Get(Bob) = %v", got)
	}
	if _, ok := ix.Get("<urn:Carol>"); ok {
		t.Fatal("Carol should not be indexed")
	}
	if ix.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ix.Len())
	}
	if want := []string{"<urn:Person>", "<urn:Agent>"}; !reflect.DeepEqual(ix.Types(), want) {
		t.Fatalf("Types() = %v, want %v", ix.Types(), want)
	}
}

func TestTypesReturnsCopy(t *testing.T) {
	ix := New()
	ix.Insert("<urn:a>", "<urn:T>")
	types := ix.Types()
	types[0] = "mutated"
	if got, _ := ix.Get("<urn:a>"); got[0] != "<urn:T>" {
		t.Fatalf("catalogue was mutated: %v", got)
	}
}

func TestAdd(t *testing.T) {
	typ := rdf.IRI{Value: rdf.RDFType}
	tests := []struct {
		name   string
		triple rdf.Triple
		want   bool
	}{
		{"iri subject", rdf.Triple{S: rdf.IRI{Value: "urn:a"}, P: typ, O: rdf.IRI{Value: "urn:T"}}, true},
		{"blank subject", rdf.Triple{S: rdf.BlankNode{ID: "b0"}, P: typ, O: rdf.IRI{Value: "urn:T"}}, true},
		{"literal object", rdf.Triple{S: rdf.IRI{Value: "urn:a"}, P: typ, O: rdf.Literal{Lexical: "T"}}, false},
		{"other predicate", rdf.Triple{S: rdf.IRI{Value: "urn:a"}, P: rdf.IRI{Value: "urn:p"}, O: rdf.IRI{Value: "urn:T"}}, false},
	}
	ix := New()
	for _, test := range tests {
		if got := ix.Add(test.triple); got != test.want {
			t.Errorf("%s: Add() = %v, want %v", test.name, got, test.want)
		}
	}
	if got, ok := ix.Get("_:b0"); !ok || got[0] != "<urn:T>" {
		t.Fatalf("blank subject not indexed under its N-Triples form: %v", got)
	}
	if got, ok := ix.Get("<urn:a>"); !ok || len(got) != 1 {
		t.Fatalf("unexpected types for <urn:a>: %v", got)
	}
}

func TestConcurrentGet(t *testing.T) {
	ix := New()
	ix.Insert("<urn:a>", "<urn:T>")
	ix.Insert("<urn:b>", "<urn:U>")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if got, ok := ix.Get("<urn:a>"); !ok || got[0] != "<urn:T>" {
					t.Errorf("unexpected result %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestHashKeyIsStable(t *testing.T) {
	// FNV-1a 64 of the empty string is the offset basis.
	if got := HashKey(""); got != 0xcbf29ce484222325 {
		t.Fatalf("HashKey(\"\") = %x", got)
	}
	if HashKey("<urn:a>") == HashKey("<urn:b>") {
		t.Fatal("distinct short keys should not collide")
	}
}
