package token

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")
	tok, err := GenerateAccessToken(42, secret, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatal(err)
	}
	id, err := PlayerID(claims)
	if err != nil || id != 42 {
		t.Fatalf("player id = %d, %v", id, err)
	}
}

func TestVerifyRejects(t *testing.T) {
	secret := []byte("secret")

	expired, err := GenerateAccessToken(1, secret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyToken(expired, secret); err == nil {
		t.Error("expired token accepted")
	}

	other, err := GenerateAccessToken(1, []byte("other"), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyToken(other, secret); err == nil {
		t.Error("token signed with another key accepted")
	}

	if _, err := VerifyToken("garbage", secret); err == nil {
		t.Error("garbage accepted")
	}
}
