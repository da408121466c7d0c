package auth

import (
	"testing"

	"nimbus/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The plaintext never appears in the hash.
	assert.NotEqual(t, "secret", hash)

	assert.True(t, hasher.Check("secret", hash))
	assert.False(t, hasher.Check("not-the-secret", hash))
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("secret")
	require.NoError(t, err)
	second, err := hasher.Hash("secret")
	require.NoError(t, err)

	// Fresh salt per call: same input, different hashes, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("secret", first))
	assert.True(t, hasher.Check("secret", second))
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	assert.False(t, hasher.Check("secret", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("secret", ""))
}

func TestNewBcryptHasher_CostFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want int
	}{
		{
			name: "configured cost within range",
			cfg:  &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}},
			want: bcrypt.MinCost,
		},
		{
			name: "cost above range falls back to default",
			cfg:  &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MaxCost + 1}},
			want: bcrypt.DefaultCost,
		},
		{
			name: "missing auth section falls back to default",
			cfg:  &config.Config{},
			want: bcrypt.DefaultCost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher, ok := NewBcryptHasher(tt.cfg).(*bcryptHasher)
			require.True(t, ok)
			assert.Equal(t, tt.want, hasher.cost)
		})
	}
}
