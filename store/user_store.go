package store

import (
	"context"
	"errors"

	"github.com/etudify/etudify-backend/models"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("user already exists")
)

// UserStore is the persistence boundary for user records. Each call is
// atomic; implementations report missing records as ErrNotFound and
// duplicate emails as ErrConflict.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error

	// UpdateRefreshToken overwrites the stored refresh token for the user
	// with the given id. A nil token clears it.
	UpdateRefreshToken(ctx context.Context, id string, token *string) error

	// UpdatePassword replaces the stored credential hash for the user
	// with the given id.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// ClearRefreshTokenByValue clears the refresh token field on whichever
	// users currently hold exactly this value. Matching zero users is not
	// an error, so revocation stays idempotent.
	ClearRefreshTokenByValue(ctx context.Context, token string) error
}
