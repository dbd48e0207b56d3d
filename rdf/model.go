package rdf

import "strings"

// RDFType is the IRI of the rdf:type predicate.
const RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// XSDString is the datatype IRI that N-Triples leaves implicit on simple literals.
const XSDString = "http://www.w3.org/2001/XMLSchema#string"

// RDFLangString is the datatype IRI of language-tagged literals.
const RDFLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in RDF statements.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI represents an RDF IRI (a named node).
type IRI struct {
	// Value is the IRI string value, without angle brackets.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// LiteralForm distinguishes simple, language-tagged and typed literals.
type LiteralForm uint8

const (
	// LiteralSimple is a plain string literal.
	LiteralSimple LiteralForm = iota
	// LiteralLanguageTagged carries a language tag.
	LiteralLanguageTagged
	// LiteralTyped carries an explicit datatype IRI.
	LiteralTyped
)

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// Form reports which of the three literal shapes l has. A language tag
// takes precedence over a datatype.
func (l Literal) Form() LiteralForm {
	switch {
	case l.Lang != "":
		return LiteralLanguageTagged
	case l.Datatype.Value != "" && l.Datatype.Value != XSDString:
		return LiteralTyped
	default:
		return LiteralSimple
	}
}

// String returns the N-Triples representation of the literal.
func (l Literal) String() string {
	var b strings.Builder
	writeLiteral(&b, l)
	return b.String()
}

// Triple is an RDF triple. S is an IRI or a BlankNode; O is an IRI, a
// BlankNode or a Literal.
type Triple struct {
	// S is the subject.
	S Term
	// P is the predicate.
	P IRI
	// O is the object.
	O Term
}

// String returns the N-Triples line for t without the trailing " .".
func (t Triple) String() string {
	var b strings.Builder
	writeTerm(&b, t.S)
	b.WriteByte(' ')
	writeIRI(&b, t.P)
	b.WriteByte(' ')
	writeTerm(&b, t.O)
	return b.String()
}

// Render returns the N-Triples form of a term: <iri>, _:id or a quoted
// literal. It is the canonical key used by the type index and the rules.
func Render(term Term) string {
	var b strings.Builder
	writeTerm(&b, term)
	return b.String()
}
