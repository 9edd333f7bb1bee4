package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

const selectColumns = `SELECT id, date, country, cases, deaths, recoveries FROM records`

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.Record, error) {
	var r models.Record
	if err := s.Scan(&r.ID, &r.Date, &r.Country, &r.Cases, &r.Deaths, &r.Recoveries); err != nil {
		return nil, err
	}
	r.Date = models.DateOnly(r.Date)
	return &r, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query := `INSERT INTO records (date, country, cases, deaths, recoveries) VALUES (?, ?, ?, ?, ?)`

	rec.Date = models.DateOnly(rec.Date)
	id, err := r.dialect.InsertID(ctx, r.db, query, rec.Date, rec.Country, rec.Cases, rec.Deaths, rec.Recoveries)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	rec.ID = id
	return rec, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Record, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectColumns+` WHERE id = ?`), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM records WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	switch {
	case err != nil:
		return fmt.Errorf("rows affected error: %w", err)
	case n == 0:
		return common.ErrorNotFound
	}
	return nil
}
