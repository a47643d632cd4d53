package utils

import (
	"strings"
	"testing"
)

func TestGenerateBookingIDShape(t *testing.T) {
	id, err := GenerateBookingID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(id, "BK") {
		t.Fatalf("booking id missing BK prefix: %q", id)
	}
	// BK + 13-digit unix millis + 5 random characters
	if len(id) != 2+13+5 {
		t.Fatalf("unexpected booking id length %d: %q", len(id), id)
	}
	for _, r := range id[2+13:] {
		if !strings.ContainsRune(codeCharset, r) {
			t.Fatalf("booking id suffix has character outside charset: %q", id)
		}
	}
}

func TestGenerateConfirmationIDShape(t *testing.T) {
	code, err := GenerateConfirmationID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("expected 8 characters, got %d: %q", len(code), code)
	}
	for _, r := range code {
		if !strings.ContainsRune(codeCharset, r) {
			t.Fatalf("confirmation id has character outside charset: %q", code)
		}
	}
}

func TestGenerateConfirmationIDVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateConfirmationID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[code] = true
	}
	// 36^8 possibilities; 20 draws colliding down to 1 means broken rand
	if len(seen) < 2 {
		t.Fatalf("confirmation ids do not vary: %v", seen)
	}
}

func TestRandomCodeRejectsBadLength(t *testing.T) {
	if _, err := randomCode(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}
