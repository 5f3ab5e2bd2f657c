package sealed

import (
	"bytes"
	"testing"
)

func key(b byte) []byte {
	k := make([]byte, 32)
	for i := range k {
		k[i] = b
	}
	return k
}

func TestSealRoundTrip(t *testing.T) {
	s, err := New(key(1))
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}

	plaintext := []byte(`{"id":"trip-1","destination":"Goa"}`)
	sealedData, err := s.Seal(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(sealedData, []byte("Goa")) {
		t.Error("sealed payload leaks plaintext")
	}

	opened, err := s.Open(sealedData)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("round trip mismatch: %q", opened)
	}
}

func TestSealNonDeterministic(t *testing.T) {
	s, _ := New(key(1))
	a, _ := s.Seal([]byte("payload"))
	b, _ := s.Seal([]byte("payload"))
	if bytes.Equal(a, b) {
		t.Error("two seals of the same payload must differ (random nonce)")
	}
}

func TestKeyRotation(t *testing.T) {
	oldSealer, _ := New(key(1))
	sealedData, _ := oldSealer.Seal([]byte("legacy session"))

	// New active key, old key demoted to fallback.
	rotated, err := New(key(2), key(1))
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}
	opened, err := rotated.Open(sealedData)
	if err != nil {
		t.Fatalf("open with fallback: %v", err)
	}
	if string(opened) != "legacy session" {
		t.Errorf("unexpected payload %q", opened)
	}

	// Without the fallback, decryption must fail.
	stranger, _ := New(key(3))
	if _, err := stranger.Open(sealedData); err == nil {
		t.Error("expected failure with unrelated key")
	}
}

func TestRejectsShortKeys(t *testing.T) {
	if _, err := New([]byte("short")); err == nil {
		t.Error("expected error for short active key")
	}
	if _, err := New(key(1), []byte("short")); err == nil {
		t.Error("expected error for short fallback key")
	}
}

func TestOpenRejectsTruncated(t *testing.T) {
	s, _ := New(key(1))
	if _, err := s.Open([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated ciphertext")
	}
}
