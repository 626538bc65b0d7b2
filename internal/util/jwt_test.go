package util

import (
	"testing"
	"time"

	"course_market_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Username: "bob", FirstName: "Bob", LastName: "Yu"}
	user.ID = 7

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "bob" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Subject != "bob" {
		t.Errorf("subject = %q, want bob", claims.Subject)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(&model.User{Username: "bob"}, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatal("expected parse with wrong secret to fail")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT(&model.User{Username: "bob"}, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestRefreshExtendsExpiry(t *testing.T) {
	user := &model.User{Username: "bob"}
	token, err := GenerateJWT(user, "secret", time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	oldExpiry := claims.ExpiresAt.Time

	refreshed, err := RefreshJWT(claims, "secret", time.Hour)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	newClaims, err := ParseJWT(refreshed, "secret")
	if err != nil {
		t.Fatalf("parse refreshed failed: %v", err)
	}
	if !newClaims.ExpiresAt.Time.After(oldExpiry) {
		t.Error("refreshed token should expire later than the original")
	}
	if newClaims.Username != "bob" {
		t.Errorf("username = %q, want bob", newClaims.Username)
	}
}
