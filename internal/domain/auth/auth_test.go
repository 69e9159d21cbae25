package auth

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in plain text")
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	token, err := IssueToken("test-secret", User{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	subject, err := VerifyToken("test-secret", token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if subject != "admin" {
		t.Fatalf("expected subject admin, got %q", subject)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken("test-secret", User{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := VerifyToken("other-secret", token); err == nil {
		t.Fatal("expected verification to fail with wrong secret")
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	if _, err := VerifyToken("test-secret", "not-a-token"); err == nil {
		t.Fatal("expected verification to fail")
	}
}
