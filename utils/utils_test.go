package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("examplePass")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hash == "examplePass" {
		t.Error("Password should be hashed, not plain text")
	}
	if !CheckPasswordHash("examplePass", hash) {
		t.Error("Expected password to match its hash")
	}
	if CheckPasswordHash("wrongPass", hash) {
		t.Error("Expected wrong password not to match")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateToken(UserClaims{Username: "exampleUser", FirstName: "Example", LastName: "User"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("Expected valid token, got %v", err)
	}
	if claims.User.Username != "exampleUser" || claims.Subject != "exampleUser" {
		t.Errorf("Unexpected claims %+v", claims)
	}
	if claims.User.FirstName != "Example" {
		t.Errorf("Expected firstName Example, got %s", claims.User.FirstName)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)

	token, err := m.GenerateToken(UserClaims{Username: "exampleUser"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _ := NewJWTManager("secret", time.Hour).GenerateToken(UserClaims{Username: "exampleUser"})

	if _, err := NewJWTManager("other", time.Hour).ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		User: UserClaims{Username: "exampleUser"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTManager("secret", time.Hour).ValidateToken(token); err == nil {
		t.Error("Expected unsigned token to be rejected")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	for _, tok := range []string{"", "abc", strings.Repeat("x.", 3)} {
		if _, err := m.ValidateToken(tok); err == nil {
			t.Errorf("Expected error for %q", tok)
		}
	}
}
