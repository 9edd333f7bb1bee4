package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/repomanager"
)

// RecordInput is the client-supplied part of a Record.
type RecordInput struct {
	Date       time.Time
	Country    string
	Cases      int64
	Deaths     int64
	Recoveries int64
}

func (in RecordInput) Validate() error {
	switch {
	case in.Date.IsZero():
		return common.NewValidationError("date", "is required")
	case strings.TrimSpace(in.Country) == "":
		return common.NewValidationError("country", "is required")
	case in.Cases < 0:
		return common.NewValidationError("cases", "must not be negative")
	case in.Deaths < 0:
		return common.NewValidationError("deaths", "must not be negative")
	case in.Recoveries < 0:
		return common.NewValidationError("recoveries", "must not be negative")
	}
	return nil
}

type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

func (s *RecordService) List(ctx context.Context) ([]*models.Record, error) {
	var result []*models.Record
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = s.repomanager.Records(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *RecordService) Create(ctx context.Context, in RecordInput) (*models.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	rec := &models.Record{
		Date:       in.Date,
		Country:    in.Country,
		Cases:      in.Cases,
		Deaths:     in.Deaths,
		Recoveries: in.Recoveries,
	}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		rec, err = s.repomanager.Records(tx).Create(ctx, rec)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecordService) Get(ctx context.Context, id int64) (*models.Record, error) {
	var rec *models.Record
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		rec, err = s.repomanager.Records(tx).Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record, failing with common.ErrorNotFound for an
// unknown id.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Records(tx)
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}
