package shared

import (
	"bytes"
	"testing"
)

func TestGetRandomAlphanumeric(t *testing.T) {
	b, err := GetRandomAlphanumeric(16)
	if err != nil {
		t.Fatal(err)
	}

	if len(b) != 16 {
		t.Fatalf("expected 16 characters, got %d", len(b))
	}

	for _, c := range b {
		if !bytes.ContainsRune(letters, rune(c)) {
			t.Fatalf("unexpected character %q", c)
		}
	}
}
