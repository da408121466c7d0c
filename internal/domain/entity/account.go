// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Account is the core entity in the system, representing a registered user.
// The email is the login identifier; PasswordHash holds the bcrypt hash of the
// credential and is never exposed outside the persistence and service layers.
type Account struct {
	ID           uuid.UUID   // The unique identifier for the account, assigned at creation.
	Email        string      // The account's login email, unique across all accounts.
	PasswordHash string      // bcrypt hash of the password. The plaintext is never stored.
	Favourites   []Favourite // Saved locations, in append order. Duplicates are allowed.
	CreatedAt    time.Time   // Timestamp of when this account was created.
	UpdatedAt    time.Time   // Timestamp of the last modification to this account.
}

// Favourite is a saved geographic location owned by exactly one account.
// It has no identity or lifecycle outside its parent's Favourites sequence.
type Favourite struct {
	Name    string  // Display label, e.g. the city name.
	Lat     float64 // Latitude in decimal degrees.
	Lon     float64 // Longitude in decimal degrees.
	Country string  // ISO country code.
	State   string  // Optional region label; empty when not applicable.
}

// Point returns the favourite's coordinates as an orb point (lon, lat order).
func (f Favourite) Point() orb.Point {
	return orb.Point{f.Lon, f.Lat}
}

// MatchesCoordinates reports whether the favourite sits at exactly the given
// coordinates. Matching is exact float equality, mirroring how favourites are
// addressed for removal.
func (f Favourite) MatchesCoordinates(lat, lon float64) bool {
	return f.Point() == orb.Point{lon, lat}
}
