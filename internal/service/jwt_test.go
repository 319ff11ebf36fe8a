package service

import (
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-test-secret")
	InitJWT()

	token, err := GenerateJWT("tg:42", "Alice")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	identity, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if identity.UserID != "tg:42" {
		t.Errorf("UserID = %q, want %q", identity.UserID, "tg:42")
	}
	if identity.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q, want %q", identity.DisplayName, "Alice")
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-test-secret")
	InitJWT()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := ParseJWT(token); err == nil {
			t.Errorf("ParseJWT(%q) accepted an invalid token", token)
		}
	}
}

func TestParseJWTRejectsForeignSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	InitJWT()
	token, err := GenerateJWT("tg:42", "Alice")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	InitJWT()
	if _, err := ParseJWT(token); err == nil {
		t.Error("token signed with the old secret was accepted")
	}
}
