package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/repomanager"
)

// NoteInput is the client-supplied part of a Note.
type NoteInput struct {
	Title string
	Body  string
}

func (in NoteInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return common.NewValidationError("title", "is required")
	case utf8.RuneCountInString(in.Title) > models.NoteTitleMaxLen:
		return common.NewValidationError("title", fmt.Sprintf("must be at most %d characters", models.NoteTitleMaxLen))
	case utf8.RuneCountInString(in.Body) > models.NoteBodyMaxLen:
		return common.NewValidationError("body", fmt.Sprintf("must be at most %d characters", models.NoteBodyMaxLen))
	}
	return nil
}

type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m, now: time.Now}
}

func (s *NoteService) List(ctx context.Context) ([]*models.Note, error) {
	var result []*models.Note
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		result, err = s.repomanager.Notes(tx).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Create stores a note stamped with the current time. A duplicate title is
// reported as a validation error on "title".
func (s *NoteService) Create(ctx context.Context, in NoteInput) (*models.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.timestamp()
	note := &models.Note{Title: in.Title, Body: in.Body, CreatedAt: now, ModifiedAt: now}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		note, err = s.repomanager.Notes(tx).Create(ctx, note)
		return err
	})
	if err != nil {
		return nil, titleTaken(err)
	}
	return note, nil
}

func (s *NoteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	var note *models.Note
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		note, err = s.repomanager.Notes(tx).Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Update replaces title and body and bumps ModifiedAt.
func (s *NoteService) Update(ctx context.Context, id int64, in NoteInput) (*models.Note, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var note *models.Note
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		var err error
		note, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}

		note.Title = in.Title
		note.Body = in.Body
		note.ModifiedAt = s.timestamp()
		return repo.Update(ctx, note)
	})
	if err != nil {
		return nil, titleTaken(err)
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

// timestamp is truncated to microseconds, the finest precision every
// supported database keeps.
func (s *NoteService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func titleTaken(err error) error {
	if errors.Is(err, common.ErrorConflict) {
		return common.NewValidationError("title", "a note with this title already exists")
	}
	return err
}
