package service

import (
	"errors"
	"testing"
)

func TestResumeTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("secret")

	token, err := svc.IssueResumeToken("room-1", "Alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.ValidateResumeToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.RoomID != "room-1" || claims.PlayerName != "Alice" {
		t.Errorf("claims %+v, want room-1/Alice", claims)
	}
}

func TestResumeTokenGarbage(t *testing.T) {
	svc := NewAuthService("secret")

	if _, err := svc.ValidateResumeToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err %v, want ErrInvalidToken", err)
	}
}

func TestResumeTokenWrongSecret(t *testing.T) {
	issuer := NewAuthService("secret-a")
	verifier := NewAuthService("secret-b")

	token, err := issuer.IssueResumeToken("room-1", "Alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.ValidateResumeToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err %v, want ErrInvalidToken for foreign signature", err)
	}
}
