package pseudo

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the size in bytes of a pseudonymization key.
const KeySize = 32

// MinSecretLength is the shortest operator secret accepted by DeriveKey.
const MinSecretLength = 16

// ErrSecretTooShort indicates a secret below MinSecretLength bytes.
var ErrSecretTooShort = errors.New("pseudo: secret too short")

// hkdfInfo binds derived keys to this use. Changing it changes every
// pseudonym produced from a given secret.
var hkdfInfo = []byte("rdf-protect.pseudonymize.v1")

// Key is the secret input of the keyed digest.
type Key [KeySize]byte

// DeriveKey stretches or compresses an operator secret of any length to
// a Key with HKDF-SHA256. The same secret always yields the same key.
func DeriveKey(secret []byte) (Key, error) {
	var key Key
	if len(secret) < MinSecretLength {
		return key, fmt.Errorf("%w: %d bytes, need at least %d", ErrSecretTooShort, len(secret), MinSecretLength)
	}
	reader := hkdf.New(sha256.New, secret, nil, hkdfInfo)
	if _, err := io.ReadFull(reader, key[:]); err != nil {
		return key, fmt.Errorf("HKDF key derivation failed: %w", err)
	}
	return key, nil
}

// RandomKey returns a key from the system's secure random source.
// Pseudonyms made with it cannot be reproduced by a later run.
func RandomKey() (Key, error) {
	var key Key
	if _, err := rand.Read(key[:]); err != nil {
		return key, fmt.Errorf("generating random key: %w", err)
	}
	return key, nil
}

// ReadSecret reads the raw bytes of a secret file. A path of "-" reads
// standard input. The content is used verbatim, trailing newline included.
func ReadSecret(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading secret from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading secret: %w", err)
	}
	return data, nil
}

// LoadKey derives a key from the secret at path, or returns a random key
// when path is empty.
func LoadKey(path string) (Key, error) {
	if path == "" {
		return RandomKey()
	}
	secret, err := ReadSecret(path)
	if err != nil {
		return Key{}, err
	}
	return DeriveKey(secret)
}
