// Package users declares the credential-store repository and its SQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	// Create inserts user and fills its ID. A taken username yields
	// common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound for an unknown username.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// List returns all users ordered by id.
	List(ctx context.Context) ([]*models.User, error)
	// Delete returns common.ErrorNotFound when no row was removed.
	Delete(ctx context.Context, id int64) error
}
