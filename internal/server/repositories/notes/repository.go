// Package notes stores short titled notes.
package notes

import (
	"context"

	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// Repository persists notes. Create and Update return common.ErrorConflict
// when the title is already used by another note.
type Repository interface {
	List(ctx context.Context) ([]*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id int64) error
}
