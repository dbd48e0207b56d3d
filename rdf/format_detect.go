package rdf

import (
	"bufio"
	"bytes"
	"io"
)

// detectSampleSize is the number of leading bytes inspected by
// DetectFormat.
const detectSampleSize = 512

// DetectFormat guesses the format of r from its first bytes. Input whose
// first non-space character is '{' or '[' is JSON-LD; everything else is
// N-Triples. The returned reader yields the complete input, sampled bytes
// included, and must be used in place of r.
func DetectFormat(r io.Reader) (Format, io.Reader) {
	buffered := bufio.NewReaderSize(r, detectSampleSize)
	sample, _ := buffered.Peek(detectSampleSize)
	return formatFromSample(sample), buffered
}

func formatFromSample(sample []byte) Format {
	sample = bytes.TrimPrefix(sample, []byte("\xef\xbb\xbf"))
	sample = bytes.TrimLeft(sample, " \t\r\n")
	if len(sample) > 0 && (sample[0] == '{' || sample[0] == '[') {
		return FormatJSONLD
	}
	return FormatNTriples
}
