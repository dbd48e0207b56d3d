package typeindex

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleIndex() *Index {
	ix := New()
	for i := 0; i < 50; i++ {
		subject := fmt.Sprintf("<http://example.org/person/%d>", i)
		ix.Insert(subject, "<http://example.org/Person>")
		if i%3 == 0 {
			ix.Insert(subject, "<http://example.org/Employee>")
		}
	}
	ix.Insert("_:b0", "<http://example.org/Organization>")
	return ix
}

func assertSameIndex(t *testing.T, want, got *Index) {
	t.Helper()
	if !reflect.DeepEqual(want.Types(), got.Types()) {
		t.Fatalf("types differ: %v vs %v", want.Types(), got.Types())
	}
	if want.Len() != got.Len() {
		t.Fatalf("subject count differs: %d vs %d", want.Len(), got.Len())
	}
	if !reflect.DeepEqual(want.Document(), got.Document()) {
		t.Fatal("documents differ after round trip")
	}
}

func TestLayoutFromPath(t *testing.T) {
	tests := []struct {
		path        string
		encoding    Encoding
		compression Compression
	}{
		{"-", EncodingCBOR, CompressionNone},
		{"index.cbor", EncodingCBOR, CompressionNone},
		{"index", EncodingCBOR, CompressionNone},
		{"index.yaml", EncodingYAML, CompressionNone},
		{"INDEX.YML", EncodingYAML, CompressionNone},
		{"index.cbor.zst", EncodingCBOR, CompressionZstd},
		{"index.yaml.lz4", EncodingYAML, CompressionLZ4},
		{"/tmp/dir.yaml/index.zst", EncodingCBOR, CompressionZstd},
	}
	for _, test := range tests {
		encoding, compression := LayoutFromPath(test.path)
		if encoding != test.encoding || compression != test.compression {
			t.Errorf("LayoutFromPath(%q) = %s, %s; want %s, %s",
				test.path, encoding, compression, test.encoding, test.compression)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	encodings := []Encoding{EncodingCBOR, EncodingYAML}
	compressions := []Compression{CompressionNone, CompressionZstd, CompressionLZ4}
	ix := sampleIndex()
	for _, encoding := range encodings {
		for _, compression := range compressions {
			t.Run(string(encoding)+"/"+string(compression), func(t *testing.T) {
				var buf bytes.Buffer
				if err := Encode(&buf, ix, encoding, compression); err != nil {
					t.Fatalf("Encode: %v", err)
				}
				got, err := Decode(&buf, encoding, compression)
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				assertSameIndex(t, ix, got)
				types, ok := got.Get("<http://example.org/person/3>")
				if !ok || !reflect.DeepEqual(types, []string{"<http://example.org/Person>", "<http://example.org/Employee>"}) {
					t.Fatalf("unexpected types after round trip: %v", types)
				}
			})
		}
	}
}

func TestCBOREncodingIsDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	if err := Encode(&first, sampleIndex(), EncodingCBOR, CompressionNone); err != nil {
		t.Fatal(err)
	}
	if err := Encode(&second, sampleIndex(), EncodingCBOR, CompressionNone); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("equal indexes encoded to different bytes")
	}
}

func TestEmptyIndexRoundTrip(t *testing.T) {
	for _, encoding := range []Encoding{EncodingCBOR, EncodingYAML} {
		var buf bytes.Buffer
		if err := Encode(&buf, New(), encoding, CompressionNone); err != nil {
			t.Fatalf("%s: Encode: %v", encoding, err)
		}
		got, err := Decode(&buf, encoding, CompressionNone)
		if err != nil {
			t.Fatalf("%s: Decode: %v", encoding, err)
		}
		if got.Len() != 0 || len(got.Types()) != 0 {
			t.Fatalf("%s: expected empty index", encoding)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	ix := sampleIndex()
	for _, name := range []string{"index.cbor", "index.yaml", "index.cbor.zst", "index.yml.lz4"} {
		path := filepath.Join(dir, name)
		if err := Save(path, ix); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		assertSameIndex(t, ix, got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.cbor"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if errors.Is(err, ErrFormat) {
		t.Fatal("a missing file is not a format error")
	}
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"garbage", "::: not yaml"},
		{"wrong version", "version: 2\ntypes: []\nsubjects: []\n"},
		{"unknown field", "version: 1\ntypes: []\nsubjects: []\nextra: true\n"},
		{"duplicate type", "version: 1\ntypes: [\"<urn:T>\", \"<urn:T>\"]\nsubjects: []\n"},
		{"empty type", "version: 1\ntypes: [\"\"]\nsubjects: []\n"},
		{"index out of range", "version: 1\ntypes: [\"<urn:T>\"]\nsubjects:\n  - hash: 1\n    types: [1]\n"},
		{"repeated index", "version: 1\ntypes: [\"<urn:T>\"]\nsubjects:\n  - hash: 1\n    types: [0, 0]\n"},
		{"duplicate hash", "version: 1\ntypes: [\"<urn:T>\"]\nsubjects:\n  - hash: 1\n    types: [0]\n  - hash: 1\n    types: [0]\n"},
		{"no types", "version: 1\ntypes: [\"<urn:T>\"]\nsubjects:\n  - hash: 1\n    types: []\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(bytes.NewBufferString(test.yaml), EncodingYAML, CompressionNone)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestDecodeRejectsCorruptStreams(t *testing.T) {
	garbage := []byte{0xff, 0x00, 0x13, 0x37}
	for _, compression := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		_, err := Decode(bytes.NewReader(garbage), EncodingCBOR, compression)
		if !errors.Is(err, ErrFormat) {
			t.Errorf("%s: expected ErrFormat, got %v", compression, err)
		}
	}
}

func TestYAMLIsReadable(t *testing.T) {
	ix := New()
	ix.Insert("<urn:a>", "<urn:T>")
	var buf bytes.Buffer
	if err := Encode(&buf, ix, EncodingYAML, CompressionNone); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, fragment := range []string{
		"version: 1\n",
		"- <urn:T>\n",
		fmt.Sprintf("hash: %d\n", HashKey("<urn:a>")),
		"types: [0]\n",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("YAML output lacks %q:\n%s", fragment, out)
		}
	}
}
