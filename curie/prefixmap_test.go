package curie

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuild(t *testing.T) {
	pm, err := Build(map[string]string{
		"":     "<http://example.org/default/>",
		"ex":   "<http://example.org/>",
		"foaf": "<http://xmlns.com/foaf/0.1/>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pm.Len() != 3 {
		t.Fatalf("expected 3 prefixes, got %d", pm.Len())
	}
	if got := pm.Labels(); !reflect.DeepEqual(got, []string{"", "ex", "foaf"}) {
		t.Fatalf("unexpected labels %v", got)
	}
	if ns, ok := pm.Namespace("ex"); !ok || ns != "http://example.org/" {
		t.Fatalf("Namespace(ex) = %q, %v", ns, ok)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		table map[string]string
		err   error
	}{
		{name: "blank node label", table: map[string]string{"_": "<http://example.org/>"}, err: ErrPrefixNotAllowed},
		{name: "invalid label", table: map[string]string{"a b": "<http://example.org/>"}, err: ErrPrefixNotAllowed},
		{name: "namespace not bracketed", table: map[string]string{"ex": "http://example.org/"}, err: ErrInvalidPrefixURI},
		{name: "namespace relative", table: map[string]string{"ex": "<example/>"}, err: ErrInvalidPrefixURI},
		{name: "namespace is a CURIE", table: map[string]string{"ex": "other:x"}, err: ErrInvalidPrefixURI},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Build(test.table)
			if !errors.Is(err, test.err) {
				t.Fatalf("Build() error = %v, want %v", err, test.err)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	pm, err := Build(map[string]string{
		"ex": "<http://example.org/>",
		"":   "<http://default.org/ns#>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		in   string
		want string
	}{
		{in: "ex:Person", want: "<http://example.org/Person>"},
		{in: "ex:a/b", want: "<http://example.org/a/b>"},
		{in: ":Thing", want: "<http://default.org/ns#Thing>"},
		{in: "<urn:Person>", want: "<urn:Person>"},
	}
	for _, test := range tests {
		got, err := pm.Expand(test.in)
		if err != nil {
			t.Fatalf("Expand(%q) unexpected error: %v", test.in, err)
		}
		if got != test.want {
			t.Fatalf("Expand(%q) = %q, want %q", test.in, got, test.want)
		}
		again, err := pm.Expand(got)
		if err != nil || again != got {
			t.Fatalf("Expand is not idempotent for %q: %q, %v", test.in, again, err)
		}
	}
}

func TestExpandErrors(t *testing.T) {
	withoutDefault, err := Build(map[string]string{"ex": "<http://example.org/>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		name string
		pm   *PrefixMap
		in   string
		err  error
	}{
		{name: "unknown prefix", pm: withoutDefault, in: "foaf:name", err: ErrUnknownPrefix},
		{name: "missing default", pm: withoutDefault, in: ":name", err: ErrMissingDefault},
		{name: "blank node label", pm: withoutDefault, in: "_:b0", err: ErrUnknownPrefix},
		{name: "malformed", pm: withoutDefault, in: "name", err: ErrMalformedIdentifier},
		{name: "nil map", pm: nil, in: "ex:name", err: ErrUnknownPrefix},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.pm.Expand(test.in)
			if !errors.Is(err, test.err) {
				t.Fatalf("Expand(%q) error = %v, want %v", test.in, err, test.err)
			}
		})
	}
}
