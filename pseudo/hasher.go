package pseudo

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// Hasher turns bytes into a printable digest. Implementations must be
// deterministic for a fixed key and one-way without it.
type Hasher interface {
	Pseudonymize(data []byte) string
}

// Algorithm names a Hasher implementation.
type Algorithm string

const (
	// AlgorithmBLAKE3 is keyed BLAKE3 with a 256-bit output, the default.
	AlgorithmBLAKE3 Algorithm = "blake3"
	// AlgorithmBLAKE2b is keyed BLAKE2b-256.
	AlgorithmBLAKE2b Algorithm = "blake2b"
)

// Algorithms lists the supported algorithm names.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmBLAKE3, AlgorithmBLAKE2b}
}

// ParseAlgorithm resolves an algorithm name. The empty name selects
// AlgorithmBLAKE3.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "", AlgorithmBLAKE3:
		return AlgorithmBLAKE3, nil
	case AlgorithmBLAKE2b:
		return AlgorithmBLAKE2b, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q (supported: blake3, blake2b)", name)
	}
}

// NewHasher returns the Hasher for algorithm keyed with key.
func NewHasher(algorithm Algorithm, key Key) (Hasher, error) {
	switch algorithm {
	case AlgorithmBLAKE3, "":
		return blake3Hasher{key: key}, nil
	case AlgorithmBLAKE2b:
		return blake2bHasher{key: key}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", algorithm)
	}
}

type blake3Hasher struct {
	key Key
}

func (h blake3Hasher) Pseudonymize(data []byte) string {
	// NewKeyed only fails for keys that are not 32 bytes long.
	hasher, err := blake3.NewKeyed(h.key[:])
	if err != nil {
		panic("pseudo: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

type blake2bHasher struct {
	key Key
}

func (h blake2bHasher) Pseudonymize(data []byte) string {
	// New256 only fails for keys longer than 64 bytes.
	hasher, err := blake2b.New256(h.key[:])
	if err != nil {
		panic("pseudo: BLAKE2b keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}
