package auth_test

import (
	"testing"
	"time"

	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	user := models.User{ID: primitive.NewObjectID(), Username: "alice"}

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Subject != user.ID.Hex() {
		t.Errorf("Subject: got %q, want %q", claims.Subject, user.ID.Hex())
	}
	if claims.Username != "alice" {
		t.Errorf("Username: got %q", claims.Username)
	}
	if claims.ID == "" {
		t.Error("token should carry a jti")
	}
}

func TestTokenVerify_WrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("secret-a", time.Hour)
	other := auth.NewTokenManager("secret-b", time.Hour)

	token, err := tm.Issue(models.User{ID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := other.Verify(token); err != auth.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenVerify_Expired(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue(models.User{ID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := tm.Verify(token); err != auth.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenVerify_Garbage(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	if _, err := tm.Verify("not-a-token"); err != auth.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-passphrase")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-passphrase" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !auth.CheckPassword(hash, "s3cret-passphrase") {
		t.Error("correct password should verify")
	}
	if auth.CheckPassword(hash, "wrong") {
		t.Error("wrong password must not verify")
	}
}
