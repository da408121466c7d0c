package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the payload embedded in a signed access token.
// The account id travels in the registered subject claim; no expiry is set,
// so a token stays valid for as long as the signing secret does.
type Claims struct {
	AccountID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying access tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token carrying the given account id.
	Issue(accountID uuid.UUID) (string, error)

	// Verify checks the token string and returns the embedded claims.
	// It fails with the domain token errors: malformed when the token cannot be
	// parsed, signature-invalid when it was not signed with the process secret.
	// Account existence is not checked here; that is the caller's concern.
	Verify(tokenString string) (*Claims, error)
}
