package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	t.Parallel()

	at, err := NewAccessToken("secret", 42, "ORGANIZER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tk.Method)
		}
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if claims["role"] != "ORGANIZER" {
		t.Errorf("role = %v, want ORGANIZER", claims["role"])
	}
	if at.Exp.Before(time.Now().UTC().Add(14 * time.Minute)) {
		t.Errorf("expiry %v too early for 15 minute TTL", at.Exp)
	}
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	t.Parallel()

	at, err := NewAccessToken("secret", 1, "ATTENDEE", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	if err == nil {
		t.Error("token verified with wrong secret")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	t.Parallel()

	rt, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Errorf("raw token length = %d, want 96 hex chars", len(rt.Raw))
	}
	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	if h1 != h2 {
		t.Error("hash is not deterministic")
	}
	if h1 == rt.Raw {
		t.Error("hash equals raw token")
	}

	other, _ := NewRefreshToken(30)
	if other.Raw == rt.Raw {
		t.Error("two refresh tokens collided")
	}
}
