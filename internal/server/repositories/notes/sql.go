package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

const selectColumns = `SELECT id, title, body, created_at, modified_at FROM notas`

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func scanNote(s interface{ Scan(...any) error }) (*models.Note, error) {
	var n models.Note
	if err := s.Scan(&n.ID, &n.Title, &n.Body, &n.CreatedAt, &n.ModifiedAt); err != nil {
		return nil, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.ModifiedAt = n.ModifiedAt.UTC()
	return &n, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := `INSERT INTO notas (title, body, created_at, modified_at) VALUES (?, ?, ?, ?)`

	id, err := r.dialect.InsertID(ctx, r.db, query, note.Title, note.Body, note.CreatedAt, note.ModifiedAt)
	if err != nil {
		return nil, r.mapWriteError(note.Title, err)
	}

	note.ID = id
	return note, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Note, error) {
	n, err := scanNote(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectColumns+` WHERE id = ?`), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Update overwrites title, body and modified_at of the note with note.ID.
func (r *SQLRepository) Update(ctx context.Context, note *models.Note) error {
	query := `UPDATE notas SET title = ?, body = ?, modified_at = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), note.Title, note.Body, note.ModifiedAt, note.ID)
	if err != nil {
		return r.mapWriteError(note.Title, err)
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

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM notas WHERE id = ?`), id)
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

func (r *SQLRepository) mapWriteError(title string, err error) error {
	if dbx.IsUniqueViolation(err) {
		return fmt.Errorf("title %q: %w", title, common.ErrorConflict)
	}
	return fmt.Errorf("db error: %w", err)
}
