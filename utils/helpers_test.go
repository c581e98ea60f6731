package utils

import (
	"strings"
	"testing"
)

func TestGenerateMemberCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		code, err := GenerateMemberCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != MemberCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), MemberCodeLength)
		}
		if !IsValidMemberCode(code) {
			t.Fatalf("generated code %q failed validation", code)
		}
		if code != strings.ToUpper(code) {
			t.Fatalf("code %q is not uppercase", code)
		}
		seen[code] = true
	}

	// 50 draws from a 36^10 space colliding would indicate a broken generator.
	if len(seen) < 50 {
		t.Fatalf("got %d distinct codes out of 50", len(seen))
	}
}

func TestIsValidMemberCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "valid", code: "A1B2C3D4E5", want: true},
		{name: "all letters", code: "ABCDEFGHIJ", want: true},
		{name: "all digits", code: "0123456789", want: true},
		{name: "too short", code: "A1B2C3D4E", want: false},
		{name: "too long", code: "A1B2C3D4E5F", want: false},
		{name: "lowercase", code: "a1b2c3d4e5", want: false},
		{name: "symbol", code: "A1B2C3D4E!", want: false},
		{name: "empty", code: "", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidMemberCode(tc.code); got != tc.want {
				t.Fatalf("IsValidMemberCode(%q) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plain password")
	}
	if err := CheckPassword("secret123", hash); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrong", hash); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"owner", "admin", "staff"} {
		if !IsValidRole(role) {
			t.Fatalf("role %q rejected", role)
		}
	}
	for _, role := range []string{"manager", "root", "", "Owner"} {
		if IsValidRole(role) {
			t.Fatalf("role %q accepted", role)
		}
	}
}

func TestIsValidFileExtension(t *testing.T) {
	allowed := []string{"jpg", "jpeg", "png"}

	if !IsValidFileExtension("photo.JPG", allowed) {
		t.Fatal("uppercase extension rejected")
	}
	if IsValidFileExtension("notes.pdf", allowed) {
		t.Fatal("disallowed extension accepted")
	}
	if IsValidFileExtension("noextension", allowed) {
		t.Fatal("missing extension accepted")
	}
}
