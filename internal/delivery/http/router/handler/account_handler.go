// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"nimbus/internal/delivery/http/middleware"
	"nimbus/internal/delivery/http/response"
	"nimbus/internal/domain/entity"
	"nimbus/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// registerResponse is the body returned on successful registration.
// The password hash never leaves the service.
type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// loginResponse carries the issued access token.
type loginResponse struct {
	Token string `json:"token"`
}

// favouriteResponse is the wire form of a single saved location.
type favouriteResponse struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

func toFavouriteResponses(favourites []entity.Favourite) []favouriteResponse {
	out := make([]favouriteResponse, 0, len(favourites))
	for _, fav := range favourites {
		out = append(out, favouriteResponse{
			Name:    fav.Name,
			Lat:     fav.Lat,
			Lon:     fav.Lon,
			Country: fav.Country,
			State:   fav.State,
		})
	}

	return out
}

// accountIDFromContext reads the account id the auth middleware stored.
func accountIDFromContext(c echo.Context) (uuid.UUID, bool) {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)

	return accountID, ok
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, registerResponse{
		ID:    account.ID.String(),
		Email: account.Email,
	})
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Authenticate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, loginResponse{Token: output.Token})
}

// ChangePassword handles the password change request for the authenticated account.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "invalid access token")
	}

	var input *usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid password input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if _, err := h.uc.ChangePassword(c.Request().Context(), accountID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// ListFavourites returns the authenticated account's favourites as a bare array.
func (h *AccountHandler) ListFavourites(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "invalid access token")
	}

	favourites, err := h.uc.ListFavourites(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toFavouriteResponses(favourites))
}

// AddFavourite appends a favourite to the authenticated account.
func (h *AccountHandler) AddFavourite(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "invalid access token")
	}

	var input *usecase.FavouriteInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid favourite input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if _, err := h.uc.AddFavourite(c.Request().Context(), accountID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// RemoveFavourite removes every favourite at the given coordinates.
// A pair that matches nothing still succeeds.
func (h *AccountHandler) RemoveFavourite(c echo.Context) error {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		return response.Unauthorized(c, "invalid access token")
	}

	var input *usecase.RemoveFavouriteInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid coordinates input")
	}

	if _, err := h.uc.RemoveFavourite(c.Request().Context(), accountID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.JSON(c, http.StatusOK, map[string]string{"status": "ok"})
}
