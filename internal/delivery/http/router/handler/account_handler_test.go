package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nimbus/internal/delivery/http/middleware"
	"nimbus/internal/delivery/http/validator"
	"nimbus/internal/domain/entity"
	domainerrors "nimbus/internal/domain/errors"
	"nimbus/internal/domain/service"
	"nimbus/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAccountUsecase simulates the application layer with per-method functions.
type mockAccountUsecase struct {
	RegisterFunc        func(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error)
	AuthenticateFunc    func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error)
	ChangePasswordFunc  func(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) (*entity.Account, error)
	ListFavouritesFunc  func(ctx context.Context, accountID uuid.UUID) ([]entity.Favourite, error)
	AddFavouriteFunc    func(ctx context.Context, accountID uuid.UUID, input *usecase.FavouriteInput) (*entity.Account, error)
	RemoveFavouriteFunc func(ctx context.Context, accountID uuid.UUID, input *usecase.RemoveFavouriteInput) (*entity.Account, error)
}

func (m *mockAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *mockAccountUsecase) Authenticate(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return m.AuthenticateFunc(ctx, input)
}

func (m *mockAccountUsecase) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) (*entity.Account, error) {
	return m.ChangePasswordFunc(ctx, accountID, input)
}

func (m *mockAccountUsecase) ListFavourites(ctx context.Context, accountID uuid.UUID) ([]entity.Favourite, error) {
	return m.ListFavouritesFunc(ctx, accountID)
}

func (m *mockAccountUsecase) AddFavourite(ctx context.Context, accountID uuid.UUID, input *usecase.FavouriteInput) (*entity.Account, error) {
	return m.AddFavouriteFunc(ctx, accountID, input)
}

func (m *mockAccountUsecase) RemoveFavourite(ctx context.Context, accountID uuid.UUID, input *usecase.RemoveFavouriteInput) (*entity.Account, error) {
	return m.RemoveFavouriteFunc(ctx, accountID, input)
}

// stubTokenService accepts exactly one token string.
type stubTokenService struct {
	token     string
	accountID uuid.UUID
}

func (s *stubTokenService) Issue(accountID uuid.UUID) (string, error) {
	return s.token, nil
}

func (s *stubTokenService) Verify(tokenString string) (*service.Claims, error) {
	if tokenString != s.token {
		return nil, domainerrors.ErrTokenSignatureInvalid
	}
	return &service.Claims{AccountID: s.accountID}, nil
}

// newTestServer wires the handler, validator, auth and error middleware into a
// real echo instance so tests exercise the full status code mapping.
func newTestServer(uc usecase.AccountUsecase, tokenSvc service.TokenService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(slog.Default()).HandleHTTPError

	h := NewAccountHandler(uc, slog.Default())
	authMw := middleware.NewAuthMiddleware(tokenSvc)

	e.POST("/register", h.Register)
	e.POST("/login", h.Login)

	authGroup := e.Group("")
	authGroup.Use(authMw.Authenticate)
	authGroup.PUT("/changepass", h.ChangePassword)
	authGroup.GET("/favourites", h.ListFavourites)
	authGroup.PUT("/favourites/add", h.AddFavourite)
	authGroup.PUT("/favourites/remove", h.RemoveFavourite)

	return e
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(middleware.HeaderAccessToken, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAccountHandler_Register(t *testing.T) {
	accountID := uuid.New()

	t.Run("returns 201 with id and email only", func(t *testing.T) {
		uc := &mockAccountUsecase{
			RegisterFunc: func(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
				return &entity.Account{ID: accountID, Email: input.Email, PasswordHash: "hash"}, nil
			},
		}
		e := newTestServer(uc, &stubTokenService{})

		rec := doJSON(e, http.MethodPost, "/register", "", `{"email":"a@b.com","password":"secret"}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, accountID.String(), body["id"])
		assert.Equal(t, "a@b.com", body["email"])
		// The hash must never leak into a response.
		assert.NotContains(t, rec.Body.String(), "hash")
	})

	t.Run("returns 400 for a malformed email", func(t *testing.T) {
		e := newTestServer(&mockAccountUsecase{}, &stubTokenService{})

		rec := doJSON(e, http.MethodPost, "/register", "", `{"email":"not-an-email","password":"secret"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "message")
	})

	t.Run("returns 400 for an empty body", func(t *testing.T) {
		e := newTestServer(&mockAccountUsecase{}, &stubTokenService{})

		rec := doJSON(e, http.MethodPost, "/register", "", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 409 for a duplicate email", func(t *testing.T) {
		uc := &mockAccountUsecase{
			RegisterFunc: func(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
				return nil, domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
			},
		}
		e := newTestServer(uc, &stubTokenService{})

		rec := doJSON(e, http.MethodPost, "/register", "", `{"email":"a@b.com","password":"secret"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "message")
	})
}

func TestAccountHandler_Login(t *testing.T) {
	t.Run("returns 200 with the token", func(t *testing.T) {
		uc := &mockAccountUsecase{
			AuthenticateFunc: func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
				return &usecase.LoginOutput{Token: "signed-token"}, nil
			},
		}
		e := newTestServer(uc, &stubTokenService{})

		rec := doJSON(e, http.MethodPost, "/login", "", `{"email":"a@b.com","password":"secret"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"token":"signed-token"}`, rec.Body.String())
	})

	t.Run("returns 404 for bad credentials", func(t *testing.T) {
		uc := &mockAccountUsecase{
			AuthenticateFunc: func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
				return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
			},
		}
		e := newTestServer(uc, &stubTokenService{})

		rec := doJSON(e, http.MethodPost, "/login", "", `{"email":"a@b.com","password":"wrong"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns 400 for a missing password", func(t *testing.T) {
		e := newTestServer(&mockAccountUsecase{}, &stubTokenService{})

		rec := doJSON(e, http.MethodPost, "/login", "", `{"email":"a@b.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAccountHandler_ChangePassword(t *testing.T) {
	accountID := uuid.New()
	tokenSvc := &stubTokenService{token: "good-token", accountID: accountID}

	t.Run("returns 204 on success", func(t *testing.T) {
		uc := &mockAccountUsecase{
			ChangePasswordFunc: func(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) (*entity.Account, error) {
				assert.Equal(t, accountID, id)
				return &entity.Account{ID: id}, nil
			},
		}
		e := newTestServer(uc, tokenSvc)

		rec := doJSON(e, http.MethodPut, "/changepass", "good-token", `{"password":"newpass"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("returns 401 without a token", func(t *testing.T) {
		uc := &mockAccountUsecase{
			ChangePasswordFunc: func(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) (*entity.Account, error) {
				t.Fatal("use case must not run without a valid token")
				return nil, nil
			},
		}
		e := newTestServer(uc, tokenSvc)

		rec := doJSON(e, http.MethodPut, "/changepass", "", `{"password":"newpass"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns 400 for an empty password", func(t *testing.T) {
		e := newTestServer(&mockAccountUsecase{}, tokenSvc)

		rec := doJSON(e, http.MethodPut, "/changepass", "good-token", `{"password":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 404 when the account no longer exists", func(t *testing.T) {
		uc := &mockAccountUsecase{
			ChangePasswordFunc: func(ctx context.Context, id uuid.UUID, input *usecase.ChangePasswordInput) (*entity.Account, error) {
				return nil, domainerrors.ErrAccountNotFound.WrapMessage("account not found")
			},
		}
		e := newTestServer(uc, tokenSvc)

		rec := doJSON(e, http.MethodPut, "/changepass", "good-token", `{"password":"newpass"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAccountHandler_Favourites(t *testing.T) {
	accountID := uuid.New()
	tokenSvc := &stubTokenService{token: "good-token", accountID: accountID}

	london := entity.Favourite{Name: "London", Lat: 51.5072, Lon: -0.1276, Country: "GB", State: ""}
	denver := entity.Favourite{Name: "Denver", Lat: 39.7392, Lon: -104.9903, Country: "US", State: "Colorado"}

	t.Run("list returns a bare array", func(t *testing.T) {
		uc := &mockAccountUsecase{
			ListFavouritesFunc: func(ctx context.Context, id uuid.UUID) ([]entity.Favourite, error) {
				return []entity.Favourite{london, denver}, nil
			},
		}
		e := newTestServer(uc, tokenSvc)

		rec := doJSON(e, http.MethodGet, "/favourites", "good-token", "")

		require.Equal(t, http.StatusOK, rec.Code)

		var body []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, "London", body[0]["name"])
		assert.Equal(t, "Denver", body[1]["name"])
		// State is omitted when empty.
		assert.NotContains(t, body[0], "state")
		assert.Equal(t, "Colorado", body[1]["state"])
	})

	t.Run("list returns an empty array rather than null", func(t *testing.T) {
		uc := &mockAccountUsecase{
			ListFavouritesFunc: func(ctx context.Context, id uuid.UUID) ([]entity.Favourite, error) {
				return nil, nil
			},
		}
		e := newTestServer(uc, tokenSvc)

		rec := doJSON(e, http.MethodGet, "/favourites", "good-token", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("list returns 401 for a forged token", func(t *testing.T) {
		e := newTestServer(&mockAccountUsecase{}, tokenSvc)

		rec := doJSON(e, http.MethodGet, "/favourites", "forged-token", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("add returns 204", func(t *testing.T) {
		uc := &mockAccountUsecase{
			AddFavouriteFunc: func(ctx context.Context, id uuid.UUID, input *usecase.FavouriteInput) (*entity.Account, error) {
				assert.Equal(t, accountID, id)
				assert.Equal(t, "London", input.Name)
				return &entity.Account{ID: id}, nil
			},
		}
		e := newTestServer(uc, tokenSvc)

		rec := doJSON(e, http.MethodPut, "/favourites/add", "good-token",
			`{"name":"London","lat":51.5072,"lon":-0.1276,"country":"GB"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("add returns 400 without a name", func(t *testing.T) {
		e := newTestServer(&mockAccountUsecase{}, tokenSvc)

		rec := doJSON(e, http.MethodPut, "/favourites/add", "good-token", `{"lat":1,"lon":2}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("remove returns 204", func(t *testing.T) {
		uc := &mockAccountUsecase{
			RemoveFavouriteFunc: func(ctx context.Context, id uuid.UUID, input *usecase.RemoveFavouriteInput) (*entity.Account, error) {
				assert.Equal(t, 51.5072, input.Lat)
				assert.Equal(t, -0.1276, input.Lon)
				return &entity.Account{ID: id}, nil
			},
		}
		e := newTestServer(uc, tokenSvc)

		rec := doJSON(e, http.MethodPut, "/favourites/remove", "good-token", `{"lat":51.5072,"lon":-0.1276}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("remove returns 404 for an unknown account", func(t *testing.T) {
		uc := &mockAccountUsecase{
			RemoveFavouriteFunc: func(ctx context.Context, id uuid.UUID, input *usecase.RemoveFavouriteInput) (*entity.Account, error) {
				return nil, domainerrors.ErrAccountNotFound.WrapMessage("account not found")
			},
		}
		e := newTestServer(uc, tokenSvc)

		rec := doJSON(e, http.MethodPut, "/favourites/remove", "good-token", `{"lat":0,"lon":0}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
