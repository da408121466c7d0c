// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "nimbus/internal/delivery/context"
	"nimbus/internal/domain/entity"
	domainerrors "nimbus/internal/domain/errors"
	"nimbus/internal/domain/repository"
	"nimbus/internal/domain/service"
	"nimbus/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the account registration process. The lookup by email
// is a fast path; the database's unique index has the final word, so two
// concurrent registrations with the same email cannot both succeed.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Hash outside the transaction (bcrypt is CPU-bound).
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newAccount := &entity.Account{
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, findErr := accountRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrDuplicateEmail, "email already registered")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check existing email")
		}

		if createErr := accountRepo.Create(ctx, newAccount); createErr != nil {
			return errors.Wrap(createErr, "failed to create account during registration")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", newAccount.ID))

	return newAccount, nil
}

// Authenticate verifies the credentials and issues an access token.
// Unknown email and wrong password both fail with the invalid-credentials
// error, so a caller cannot learn which emails are registered.
func (srv *accountService) Authenticate(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		Token:   token,
		Account: account,
	}, nil
}

// ChangePassword re-hashes and stores a new password for the given account.
// The account id comes from the verified token, never from the request body.
func (srv *accountService) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) (*entity.Account, error) {
	srv.log(ctx).Info("Changing password", slog.Any("accountID", accountID))

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during change", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	var account *entity.Account

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if updateErr := accountRepo.UpdatePassword(ctx, accountID, passwordHash); updateErr != nil {
			if errors.Is(updateErr, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
			}

			return errors.Wrap(updateErr, "failed to update password")
		}

		updated, findErr := accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			return errors.Wrap(findErr, "failed to reload account after password change")
		}
		account = updated

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Password change failed", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute password change transaction")
	}

	return account, nil
}

// ListFavourites returns the account's favourites in append order.
func (srv *accountService) ListFavourites(ctx context.Context, accountID uuid.UUID) ([]entity.Favourite, error) {
	srv.log(ctx).Debug("Listing favourites", slog.Any("accountID", accountID))

	// Single query operation - use the direct repository instance.
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return account.Favourites, nil
}

// AddFavourite appends the favourite to the account's sequence. There is no
// deduplication: saving the same location twice stores it twice.
func (srv *accountService) AddFavourite(ctx context.Context, accountID uuid.UUID, input *usecase.FavouriteInput) (*entity.Account, error) {
	srv.log(ctx).Info("Adding favourite", slog.Any("accountID", accountID), slog.String("name", input.Name))

	favourite := entity.Favourite{
		Name:    input.Name,
		Lat:     input.Lat,
		Lon:     input.Lon,
		Country: input.Country,
		State:   input.State,
	}

	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		existing, findErr := accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
			}

			return errors.Wrap(findErr, "failed to find account")
		}

		if pushErr := accountRepo.PushFavourite(ctx, accountID, favourite); pushErr != nil {
			return errors.Wrap(pushErr, "failed to push favourite")
		}

		existing.Favourites = append(existing.Favourites, favourite)
		account = existing

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Adding favourite failed", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute add favourite transaction")
	}

	return account, nil
}

// RemoveFavourite removes every favourite of the account at exactly (lat, lon)
// and leaves all others untouched. Removing a coordinate pair that is not
// saved succeeds with no effect.
func (srv *accountService) RemoveFavourite(ctx context.Context, accountID uuid.UUID, input *usecase.RemoveFavouriteInput) (*entity.Account, error) {
	srv.log(ctx).Info("Removing favourites", slog.Any("accountID", accountID), slog.Float64("lat", input.Lat), slog.Float64("lon", input.Lon))

	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		existing, findErr := accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
			}

			return errors.Wrap(findErr, "failed to find account")
		}

		if removeErr := accountRepo.RemoveFavourites(ctx, accountID, input.Lat, input.Lon); removeErr != nil {
			return errors.Wrap(removeErr, "failed to remove favourites")
		}

		remaining := make([]entity.Favourite, 0, len(existing.Favourites))
		for _, fav := range existing.Favourites {
			if fav.MatchesCoordinates(input.Lat, input.Lon) {
				continue
			}
			remaining = append(remaining, fav)
		}
		existing.Favourites = remaining
		account = existing

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Removing favourites failed", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute remove favourite transaction")
	}

	return account, nil
}
