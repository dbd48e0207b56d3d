package typeindex

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"gopkg.in/yaml.v3"
)

// Encoding is the document encoding of a persisted index.
type Encoding string

const (
	// EncodingCBOR is RFC 8949 core deterministic CBOR, the default.
	EncodingCBOR Encoding = "cbor"
	// EncodingYAML is a human-readable YAML document.
	EncodingYAML Encoding = "yaml"
)

// Compression is the stream compression wrapped around the encoding.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("typeindex: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: math.MaxInt32,
		MaxMapPairs:      math.MaxInt32,
	}.DecMode()
	if err != nil {
		panic("typeindex: CBOR decoder initialization failed: " + err.Error())
	}
}

// LayoutFromPath derives the encoding and compression from a file name:
// a trailing ".zst" or ".lz4" selects compression, then ".yaml" or ".yml"
// selects YAML. Everything else, including "-", is uncompressed CBOR.
func LayoutFromPath(path string) (Encoding, Compression) {
	name := strings.ToLower(filepath.Base(path))
	compression := CompressionNone
	switch {
	case strings.HasSuffix(name, ".zst"):
		compression = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	case strings.HasSuffix(name, ".lz4"):
		compression = CompressionLZ4
		name = strings.TrimSuffix(name, ".lz4")
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return EncodingYAML, compression
	default:
		return EncodingCBOR, compression
	}
}

// Encode writes ix to w.
func Encode(w io.Writer, ix *Index, encoding Encoding, compression Compression) error {
	var (
		out    io.Writer = w
		finish func() error
	)
	switch compression {
	case CompressionNone, "":
	case CompressionZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		out, finish = zw, zw.Close
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		out, finish = lw, lw.Close
	default:
		return fmt.Errorf("unknown compression %q", compression)
	}

	if err := encodeDocument(out, ix.Document(), encoding); err != nil {
		return err
	}
	if finish != nil {
		if err := finish(); err != nil {
			return fmt.Errorf("finishing %s stream: %w", compression, err)
		}
	}
	return nil
}

func encodeDocument(w io.Writer, doc Document, encoding Encoding) error {
	switch encoding {
	case EncodingCBOR, "":
		data, err := encMode.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding index: %w", err)
		}
		_, err = w.Write(data)
		return err
	case EncodingYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding index: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown encoding %q", encoding)
	}
}

// Decode reads an index from r.
func Decode(r io.Reader, encoding Encoding, compression Compression) (*Index, error) {
	in := r
	switch compression {
	case CompressionNone, "":
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		defer zr.Close()
		in = zr
	case CompressionLZ4:
		in = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("unknown compression %q", compression)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		if compression == CompressionNone || compression == "" {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s stream: %w", ErrFormat, compression, err)
	}

	var doc Document
	switch encoding {
	case EncodingCBOR, "":
		if err := decMode.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
	case EncodingYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: empty document", ErrFormat)
			}
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
	return FromDocument(doc)
}

// Save writes ix to path, choosing the layout with LayoutFromPath. A path
// of "-" writes to standard output.
func Save(path string, ix *Index) (err error) {
	encoding, compression := LayoutFromPath(path)
	if path == "-" {
		return Encode(os.Stdout, ix, encoding, compression)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()
	return Encode(file, ix, encoding, compression)
}

// Load reads an index from path, choosing the layout with LayoutFromPath.
// A path of "-" reads standard input.
func Load(path string) (*Index, error) {
	encoding, compression := LayoutFromPath(path)
	if path == "-" {
		return Decode(os.Stdin, encoding, compression)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file, encoding, compression)
}
