// Package rdf provides the RDF term model used by rdf-protect together with
// streaming triple decoders and an N-Triples encoder.
//
// It focuses on streaming, line-at-a-time I/O with a small surface area:
//   - Decode: NewTripleDecoder() returns a pull-style decoder.
//   - Encode: NewTripleEncoder() returns a push-style encoder.
//   - Parse: ParseTriples() streams triples to a handler.
//
// Supported input formats are N-Triples (streamed line by line) and JSON-LD
// (converted with json-gold and buffered in memory). Output is always
// N-Triples: one statement per line, terminated by " .".
//
// Terms render to their N-Triples form with Render; that form (<iri>, _:id)
// is the identifier convention shared by the type index and the rules.
//
// RDF-star quoted triples are rejected with ErrQuotedTriple.
//
// Example (decoding triples):
//
//	dec, err := rdf.NewTripleDecoder(strings.NewReader(input), rdf.FormatNTriples)
//	if err != nil {
//	    // handle error
//	}
//	defer dec.Close()
//
//	for {
//	    triple, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process triple.S, triple.P, triple.O
//	}
//
// TripleMask selects any combination of subject, predicate and object and is
// the contract between rule matching and pseudonymization.
package rdf
