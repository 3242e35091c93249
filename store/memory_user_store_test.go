package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etudify/etudify-backend/models"
)

func newStoredUser(t *testing.T, s *MemoryUserStore, email string) *models.User {
	t.Helper()
	u := &models.User{
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, s.Create(context.Background(), u))
	return u
}

func TestMemoryUserStore_CreateAndFind(t *testing.T) {
	t.Parallel()

	s := NewMemoryUserStore()
	ctx := context.Background()
	u := newStoredUser(t, s, "ada@example.com")

	assert.False(t, u.ID.IsZero())
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := s.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := s.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	_, err = s.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByID(ctx, "ffffffffffffffffffffffff")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserStore_CreateConflict(t *testing.T) {
	t.Parallel()

	s := NewMemoryUserStore()
	newStoredUser(t, s, "ada@example.com")

	err := s.Create(context.Background(), &models.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryUserStore_UpdateRefreshToken(t *testing.T) {
	t.Parallel()

	s := NewMemoryUserStore()
	ctx := context.Background()
	u := newStoredUser(t, s, "ada@example.com")

	tok := "refresh-1"
	require.NoError(t, s.UpdateRefreshToken(ctx, u.ID.Hex(), &tok))

	stored, err := s.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, "refresh-1", *stored.RefreshToken)

	require.NoError(t, s.UpdateRefreshToken(ctx, u.ID.Hex(), nil))
	stored, err = s.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	err = s.UpdateRefreshToken(ctx, "ffffffffffffffffffffffff", &tok)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserStore_ClearRefreshTokenByValue(t *testing.T) {
	t.Parallel()

	s := NewMemoryUserStore()
	ctx := context.Background()
	u := newStoredUser(t, s, "ada@example.com")
	other := newStoredUser(t, s, "grace@example.com")

	tok := "refresh-1"
	otherTok := "refresh-2"
	require.NoError(t, s.UpdateRefreshToken(ctx, u.ID.Hex(), &tok))
	require.NoError(t, s.UpdateRefreshToken(ctx, other.ID.Hex(), &otherTok))

	require.NoError(t, s.ClearRefreshTokenByValue(ctx, "refresh-1"))

	stored, err := s.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	// Other sessions stay untouched.
	stored, err = s.FindByID(ctx, other.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, "refresh-2", *stored.RefreshToken)

	// Clearing an unknown value is a no-op, not an error.
	assert.NoError(t, s.ClearRefreshTokenByValue(ctx, "refresh-1"))
}

func TestMemoryUserStore_CopiesRecords(t *testing.T) {
	t.Parallel()

	s := NewMemoryUserStore()
	ctx := context.Background()
	u := newStoredUser(t, s, "ada@example.com")

	got, err := s.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	got.Email = "mutated@example.com"

	again, err := s.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", again.Email)
}
