// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"nimbus/internal/domain/entity"
	domainerrors "nimbus/internal/domain/errors"
	"nimbus/internal/domain/repository"
	"nimbus/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// favouritesInAppendOrder preloads the favourites association ordered by the
// serial primary key, which is the append order.
func favouritesInAppendOrder(db *gorm.DB) *gorm.DB {
	return db.Order("favourites.id ASC")
}

// FindByID retrieves a single account by its unique ID, preloading its favourites.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).
		Preload("Favourites", favouritesInAppendOrder).
		Where("id = ?", id).
		First(&accountM).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find account by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its email address, preloading its favourites.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).
		Preload("Favourites", favouritesInAppendOrder).
		Where("email = ?", email).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account entity to the database. The unique index on
// email is the authoritative duplicate check; the service's lookup beforehand
// is only a fast path.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required account information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the account entity with the generated ID and timestamps
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// UpdatePassword replaces the stored password hash of the given account.
func (repo *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password")
	}

	// If no rows were affected, the account does not exist.
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// PushFavourite appends a favourite row to the account's sequence.
func (repo *accountRepository) PushFavourite(ctx context.Context, id uuid.UUID, favourite entity.Favourite) error {
	favouriteM := fromFavouriteDomain(id, favourite)

	if err := repo.db.WithContext(ctx).Create(&favouriteM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to push favourite")
	}

	return nil
}

// RemoveFavourites deletes every favourite of the account at exactly (lat, lon).
// Exact float equality mirrors how favourites are addressed by clients; zero
// deletions is not an error.
func (repo *accountRepository) RemoveFavourites(ctx context.Context, id uuid.UUID, lat, lon float64) error {
	err := repo.db.WithContext(ctx).
		Where("account_id = ? AND lat = ? AND lon = ?", id, lat, lon).
		Delete(&model.FavouriteModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove favourites")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	favourites := make([]entity.Favourite, 0, len(data.Favourites))
	for _, fav := range data.Favourites {
		favourites = append(favourites, entity.Favourite{
			Name:    fav.Name,
			Lat:     fav.Lat,
			Lon:     fav.Lon,
			Country: fav.Country,
			State:   fav.State,
		})
	}

	return &entity.Account{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Favourites:   favourites,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	favourites := make([]model.FavouriteModel, 0, len(data.Favourites))
	for _, fav := range data.Favourites {
		favourites = append(favourites, fromFavouriteDomain(data.ID, fav))
	}

	return &model.AccountModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Favourites:   favourites,
	}
}

// fromFavouriteDomain converts a domain Favourite to a GORM FavouriteModel.
func fromFavouriteDomain(accountID uuid.UUID, data entity.Favourite) model.FavouriteModel {
	return model.FavouriteModel{
		AccountID: accountID,
		Name:      data.Name,
		Lat:       data.Lat,
		Lon:       data.Lon,
		Country:   data.Country,
		State:     data.State,
	}
}
