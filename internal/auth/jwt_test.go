package auth

import "testing"

func TestSignVerifyRoundTrip(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Sign(42, "t1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	aid, tid, err := j.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if aid != 42 {
		t.Errorf("account id = %d, want 42", aid)
	}
	if tid != "t1" {
		t.Errorf("tenant id = %q, want t1", tid)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Sign(1, "t1")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, _, err := NewJWT("secret-b").Verify(token); err == nil {
		t.Error("Verify accepted token signed with a different secret")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, _, err := NewJWT("secret").Verify("not-a-token"); err == nil {
		t.Error("Verify accepted malformed token")
	}
}
