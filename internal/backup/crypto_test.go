package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateSaltUnique(t *testing.T) {
	a, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	if len(a) != saltSize {
		t.Fatalf("salt length = %d, want %d", len(a), saltSize)
	}
	b, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two salts should not match")
	}
}

func TestDeriveKey(t *testing.T) {
	salt, _ := GenerateSalt()

	k1 := DeriveKey("passphrase", salt)
	if len(k1) != keySize {
		t.Fatalf("key length = %d, want %d", len(k1), keySize)
	}

	// Same inputs, same key; different passphrase or salt, different key.
	if !bytes.Equal(k1, DeriveKey("passphrase", salt)) {
		t.Error("derivation is not deterministic")
	}
	if bytes.Equal(k1, DeriveKey("other", salt)) {
		t.Error("different passphrase produced the same key")
	}
	other, _ := GenerateSalt()
	if bytes.Equal(k1, DeriveKey("passphrase", other)) {
		t.Error("different salt produced the same key")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snapshot.db")
	enc := filepath.Join(dir, "snapshot.db.enc")
	dec := filepath.Join(dir, "restored.db")

	want := []byte("SQLite format 3\x00 pretend database contents")
	if err := os.WriteFile(src, want, 0600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	salt, _ := GenerateSalt()
	if err := EncryptFile(src, enc, "correct horse", salt); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	data, _ := os.ReadFile(enc)
	if len(data) <= saltSize+nonceSize {
		t.Fatal("encrypted file missing header or ciphertext")
	}
	if !bytes.Equal(data[:saltSize], salt) {
		t.Error("salt not stored in file header")
	}
	if bytes.Contains(data, want) {
		t.Error("ciphertext contains the plaintext")
	}

	if err := DecryptFile(enc, dec, "correct horse"); err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	got, _ := os.ReadFile(dec)
	if !bytes.Equal(got, want) {
		t.Errorf("round trip mismatch: got %q, want %q", got, want)
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snapshot.db")
	enc := filepath.Join(dir, "snapshot.db.enc")

	os.WriteFile(src, []byte("contents"), 0600)
	salt, _ := GenerateSalt()
	if err := EncryptFile(src, enc, "right", salt); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if err := DecryptFile(enc, filepath.Join(dir, "out.db"), "wrong"); err == nil {
		t.Error("expected decryption failure with wrong passphrase")
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snapshot.db")
	enc := filepath.Join(dir, "snapshot.db.enc")

	os.WriteFile(src, []byte("contents"), 0600)
	salt, _ := GenerateSalt()
	if err := EncryptFile(src, enc, "passphrase", salt); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	data, _ := os.ReadFile(enc)
	data[len(data)-1] ^= 0xff
	os.WriteFile(enc, data, 0600)

	if err := DecryptFile(enc, filepath.Join(dir, "out.db"), "passphrase"); err == nil {
		t.Error("expected authentication failure on tampered ciphertext")
	}
}

func TestDecryptTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	enc := filepath.Join(dir, "short.enc")
	os.WriteFile(enc, make([]byte, saltSize), 0600)

	if err := DecryptFile(enc, filepath.Join(dir, "out.db"), "passphrase"); err == nil {
		t.Error("expected error for file shorter than header")
	}
}
