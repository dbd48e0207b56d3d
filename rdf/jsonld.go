package rdf

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

const (
	jsonldFormat       = "jsonld"
	jsonldDefaultGraph = "@default"
)

// jsonldDecoder converts a whole JSON-LD document to RDF on first use and
// then replays the triples. JSON-LD cannot be streamed statement by
// statement, so the document is bounded by MaxDocumentBytes.
type jsonldDecoder struct {
	reader  io.Reader
	opts    DecodeOptions
	triples []Triple
	index   int
	loaded  bool
	err     error
}

func newJSONLDDecoder(r io.Reader, opts DecodeOptions) TripleDecoder {
	return &jsonldDecoder{reader: r, opts: opts}
}

func (d *jsonldDecoder) Next() (Triple, error) {
	if d.err != nil {
		return Triple{}, d.err
	}
	if !d.loaded {
		d.loaded = true
		triples, err := d.load()
		if err != nil {
			d.err = err
			return Triple{}, err
		}
		d.triples = triples
	}
	if err := d.opts.Context.Err(); err != nil {
		d.err = err
		return Triple{}, err
	}
	if d.index >= len(d.triples) {
		d.err = io.EOF
		return Triple{}, io.EOF
	}
	t := d.triples[d.index]
	d.index++
	return t, nil
}

func (d *jsonldDecoder) Err() error {
	if d.err == io.EOF {
		return nil
	}
	return d.err
}

func (d *jsonldDecoder) Close() error {
	d.triples = nil
	return nil
}

func (d *jsonldDecoder) load() ([]Triple, error) {
	reader := d.reader
	limit := d.opts.MaxDocumentBytes
	if limit > 0 {
		reader = io.LimitReader(reader, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, newParseError(jsonldFormat, "", 0, 0, ErrDocumentTooLarge)
	}

	var document interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, newParseError(jsonldFormat, "", 0, 0, err)
	}

	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions(d.opts.BaseIRI)
	result, err := proc.ToRDF(document, options)
	if err != nil {
		return nil, newParseError(jsonldFormat, "", 0, 0, err)
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, newParseError(jsonldFormat, "", 0, 0, fmt.Errorf("unexpected ToRDF result %T", result))
	}
	return datasetTriples(dataset)
}

// datasetTriples flattens every graph of dataset into triples, default graph
// first and named graphs in name order, so repeated runs see the same order.
func datasetTriples(dataset *ld.RDFDataset) ([]Triple, error) {
	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		if name != jsonldDefaultGraph {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := dataset.Graphs[jsonldDefaultGraph]; ok {
		names = append([]string{jsonldDefaultGraph}, names...)
	}

	var triples []Triple
	for _, name := range names {
		for _, quad := range dataset.Graphs[name] {
			if quad == nil {
				continue
			}
			t, err := tripleFromLD(quad)
			if err != nil {
				return nil, newParseError(jsonldFormat, "", 0, 0, err)
			}
			triples = append(triples, t)
		}
	}
	return triples, nil
}

func tripleFromLD(quad *ld.Quad) (Triple, error) {
	subject, err := termFromLD(quad.Subject)
	if err != nil {
		return Triple{}, err
	}
	if subject.Kind() == TermLiteral {
		return Triple{}, fmt.Errorf("literal subject %q", subject.String())
	}
	predicate, ok := quad.Predicate.(ld.IRI)
	if !ok {
		return Triple{}, fmt.Errorf("predicate must be an IRI, got %T", quad.Predicate)
	}
	object, err := termFromLD(quad.Object)
	if err != nil {
		return Triple{}, err
	}
	return Triple{S: subject, P: IRI{Value: predicate.Value}, O: object}, nil
}

func termFromLD(node ld.Node) (Term, error) {
	switch value := node.(type) {
	case ld.IRI:
		return IRI{Value: value.Value}, nil
	case ld.BlankNode:
		return BlankNode{ID: strings.TrimPrefix(value.Attribute, "_:")}, nil
	case ld.Literal:
		lit := Literal{Lexical: value.Value}
		switch {
		case value.Language != "":
			lit.Lang = value.Language
		case value.Datatype != "" && value.Datatype != XSDString && value.Datatype != RDFLangString:
			lit.Datatype = IRI{Value: value.Datatype}
		}
		return lit, nil
	default:
		return nil, fmt.Errorf("unsupported JSON-LD node %T", node)
	}
}
