package rdf

import "testing"

func TestTermKindsAndStrings(t *testing.T) {
	iri := IRI{Value: "http://example.org/s"}
	if iri.Kind() != TermIRI {
		t.Fatalf("expected IRI kind")
	}
	if iri.String() != "http://example.org/s" {
		t.Fatalf("unexpected IRI string: %s", iri.String())
	}

	blank := BlankNode{ID: "b1"}
	if blank.Kind() != TermBlankNode {
		t.Fatalf("expected blank node kind")
	}
	if blank.String() != "_:b1" {
		t.Fatalf("unexpected blank node string: %s", blank.String())
	}

	litPlain := Literal{Lexical: "plain"}
	if litPlain.Kind() != TermLiteral {
		t.Fatalf("expected literal kind")
	}
	if litPlain.String() != "\"plain\"" {
		t.Fatalf("unexpected literal string: %s", litPlain.String())
	}

	litLang := Literal{Lexical: "hi", Lang: "en"}
	if litLang.String() != "\"hi\"@en" {
		t.Fatalf("unexpected lang literal: %s", litLang.String())
	}

	litDT := Literal{Lexical: "1", Datatype: IRI{Value: "http://example.org/int"}}
	if litDT.String() != "\"1\"^^<http://example.org/int>" {
		t.Fatalf("unexpected datatype literal: %s", litDT.String())
	}
}

func TestLiteralForm(t *testing.T) {
	tests := []struct {
		name    string
		literal Literal
		want    LiteralForm
	}{
		{"simple", Literal{Lexical: "a"}, LiteralSimple},
		{"explicit xsd:string", Literal{Lexical: "a", Datatype: IRI{Value: XSDString}}, LiteralSimple},
		{"language tagged", Literal{Lexical: "a", Lang: "fr"}, LiteralLanguageTagged},
		{"typed", Literal{Lexical: "1", Datatype: IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}}, LiteralTyped},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.literal.Form(); got != test.want {
				t.Fatalf("Form() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{IRI{Value: "urn:Alice"}, "<urn:Alice>"},
		{BlankNode{ID: "x1"}, "_:x1"},
		{Literal{Lexical: "line\nbreak \"quoted\""}, `"line\nbreak \"quoted\""`},
		{Literal{Lexical: "tab\there", Lang: "en-GB"}, `"tab\there"@en-GB`},
	}
	for _, test := range tests {
		if got := Render(test.term); got != test.want {
			t.Errorf("Render(%#v) = %s, want %s", test.term, got, test.want)
		}
	}
}

func TestTripleString(t *testing.T) {
	triple := Triple{
		S: IRI{Value: "urn:Alice"},
		P: IRI{Value: "urn:hasLastName"},
		O: Literal{Lexical: "Foobar"},
	}
	want := `<urn:Alice> <urn:hasLastName> "Foobar"`
	if got := triple.String(); got != want {
		t.Fatalf("String() = %s, want %s", got, want)
	}
}
