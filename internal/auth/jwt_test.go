package auth

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	userID := primitive.NewObjectID().Hex()
	email := "test@example.com"

	token, err := GenerateToken(userID, email, 24)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	extractedUserID, extractedEmail, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if extractedUserID != userID {
		t.Fatalf("Expected userID %s, got %s", userID, extractedUserID)
	}
	if extractedEmail != email {
		t.Fatalf("Expected email %s, got %s", email, extractedEmail)
	}
}

func TestGenerateTokenRejectsEmptyUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, err := GenerateToken("", "test@example.com", 24); err == nil {
		t.Fatalf("expected error for empty userID")
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	token, err := GenerateToken(primitive.NewObjectID().Hex(), "test@example.com", 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := ValidateToken(token + "x"); err == nil {
		t.Fatalf("expected tampered token to fail")
	}
}
