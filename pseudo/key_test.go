package pseudo

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	secret := []byte("correct horse battery staple")
	first, err := DeriveKey(secret)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	second, err := DeriveKey(secret)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if first != second {
		t.Fatal("same secret must derive the same key")
	}
	other, err := DeriveKey([]byte("correct horse battery stapler"))
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if first == other {
		t.Fatal("different secrets must derive different keys")
	}

	long := bytes.Repeat([]byte("x"), 4096)
	if _, err := DeriveKey(long); err != nil {
		t.Fatalf("long secrets must be accepted: %v", err)
	}
}

func TestDeriveKeyTooShort(t *testing.T) {
	for _, secret := range [][]byte{nil, []byte("short"), bytes.Repeat([]byte("x"), MinSecretLength-1)} {
		if _, err := DeriveKey(secret); !errors.Is(err, ErrSecretTooShort) {
			t.Fatalf("DeriveKey(%d bytes) error = %v, want ErrSecretTooShort", len(secret), err)
		}
	}
	if _, err := DeriveKey(bytes.Repeat([]byte("x"), MinSecretLength)); err != nil {
		t.Fatalf("secret of exactly MinSecretLength bytes rejected: %v", err)
	}
}

func TestRandomKey(t *testing.T) {
	first, err := RandomKey()
	if err != nil {
		t.Fatal(err)
	}
	second, err := RandomKey()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("random keys should differ")
	}
	if first == (Key{}) {
		t.Fatal("random key is all zeros")
	}
}

func TestLoadKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret")
	secret := []byte("a secret that is long enough\n")
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadKey(path)
	if err != nil {
		t.Fatalf("LoadKey: %v", err)
	}
	derived, err := DeriveKey(secret)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != derived {
		t.Fatal("file content must be used verbatim")
	}

	short := filepath.Join(dir, "short")
	if err := os.WriteFile(short, []byte("tiny"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKey(short); !errors.Is(err, ErrSecretTooShort) {
		t.Fatalf("expected ErrSecretTooShort, got %v", err)
	}
	if _, err := LoadKey(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := LoadKey(""); err != nil {
		t.Fatalf("empty path should produce a random key: %v", err)
	}
}
