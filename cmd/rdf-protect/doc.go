// rdf-protect pseudonymizes selected identifiers and values in RDF data.
//
// It works in two passes. "rdf-protect index" reads the input once and
// stores which rdf:type objects each subject has. "rdf-protect
// pseudonymize" reads the input again and replaces the subjects, objects
// and (with invert) predicates selected by a rule file with keyed digests.
//
// Usage:
//
//	rdf-protect index -i data.nt -o types.cbor.zst
//	rdf-protect pseudonymize -i data.nt -r rules.yaml -x types.cbor.zst -s secret.key -o out.nt
//
// Without --index, pseudonymize runs both passes over the input file.
// A path of "-" denotes standard input or standard output.
package main
