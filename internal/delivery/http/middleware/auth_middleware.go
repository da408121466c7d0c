package middleware

import (
	"nimbus/internal/delivery/http/response"
	"nimbus/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// HeaderAccessToken is the request header carrying the raw access token.
// The token travels bare, without a Bearer prefix.
const HeaderAccessToken = "X-Access-Token"

// ContextKeyAccountID is the echo.Context key under which the authenticated
// account id is stored for handlers.
const ContextKeyAccountID = "accountID"

// AuthMiddleware provides middleware for access-token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the access token before any handler or use case runs.
// A missing, malformed, or forged token is rejected here with a 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := c.Request().Header.Get(HeaderAccessToken)
		if tokenString == "" {
			return response.Unauthorized(c, "access token is missing")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return response.Unauthorized(c, "invalid access token")
		}

		// Expose the account id to handlers.
		c.Set(ContextKeyAccountID, claims.AccountID)

		return next(c)
	}
}
