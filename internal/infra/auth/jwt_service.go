// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"nimbus/config"
	domainerrors "nimbus/internal/domain/errors"
	"nimbus/internal/domain/service"
	"nimbus/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens are HS256-signed and carry only the account id and issue time; no
// expiry claim is set, so issued tokens remain valid indefinitely.
type jwtService struct {
	secret string
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{secret: cfg.SecretKey.Access}, nil
}

// Issue creates a signed token carrying the given account id.
func (s *jwtService) Issue(accountID uuid.UUID) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  accountID.String(),
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// Verify checks the token string against the process secret and returns the
// embedded claims. Parse failures map onto the two domain token errors so the
// delivery layer can reply uniformly with 401.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	var registered jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(tokenString, &registered, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})

	switch {
	case err == nil && token.Valid:
		// fall through to claim extraction
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, domainerrors.ErrTokenSignatureInvalid.WrapMessage("access token signature mismatch")
	default:
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("access token could not be parsed")
	}

	accountID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("access token subject is not an account id")
	}

	return &service.Claims{
		AccountID:        accountID,
		RegisteredClaims: registered,
	}, nil
}
