package models

import (
	"strings"
	"testing"
)

func TestSetPasswordDoesNotStorePlaintext(t *testing.T) {
	u := &User{Username: "alice"}
	if err := u.SetPassword("pw1"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if u.PasswordHash == "" {
		t.Fatalf("expected a stored hash")
	}
	if strings.Contains(u.PasswordHash, "pw1") {
		t.Fatalf("hash must not contain the plaintext password")
	}
}

func TestCheckPassword(t *testing.T) {
	u := &User{Username: "alice"}
	if err := u.SetPassword("pw1"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if !u.CheckPassword("pw1") {
		t.Fatalf("expected correct password to verify")
	}
	if u.CheckPassword("pw2") {
		t.Fatalf("expected wrong password to fail")
	}
	if u.CheckPassword("") {
		t.Fatalf("expected empty password to fail")
	}
}
