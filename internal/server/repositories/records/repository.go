// Package records stores daily per-country case counts.
package records

import (
	"context"

	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Record, error)
	Create(ctx context.Context, rec *models.Record) (*models.Record, error)
	Get(ctx context.Context, id int64) (*models.Record, error)
	Delete(ctx context.Context, id int64) error
}
