package entity

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestFavourite_Point(t *testing.T) {
	fav := Favourite{Name: "London", Lat: 51.5072, Lon: -0.1276}

	// orb points are (lon, lat).
	assert.Equal(t, orb.Point{-0.1276, 51.5072}, fav.Point())
}

func TestFavourite_MatchesCoordinates(t *testing.T) {
	fav := Favourite{Name: "London", Lat: 51.5072, Lon: -0.1276}

	assert.True(t, fav.MatchesCoordinates(51.5072, -0.1276))

	// Matching is exact, not tolerance-based.
	assert.False(t, fav.MatchesCoordinates(51.50720001, -0.1276))
	assert.False(t, fav.MatchesCoordinates(-0.1276, 51.5072))
	assert.False(t, fav.MatchesCoordinates(51.5072, 0.1276))
}
