package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Favourites []FavouriteModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// FavouriteModel mirrors the 'favourites' table. The serial primary key keeps
// append order; no uniqueness constraint exists on (account_id, lat, lon), so
// duplicate favourites are representable on purpose.
type FavouriteModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Lat       float64   `gorm:"not null"`
	Lon       float64   `gorm:"not null"`
	Country   string    `gorm:"type:varchar(10)"`
	State     string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FavouriteModel) TableName() string {
	return "favourites"
}
