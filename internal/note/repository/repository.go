package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akarpovich/notes-service/internal/common/db"
	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
	"github.com/akarpovich/notes-service/internal/note/domain"
)

// Repository executes one parameterized query per operation and maps rows to
// models. It carries no business logic; errors are domain errors the service
// layer passes through unchanged.
type Repository interface {
	List(ctx context.Context) ([]domain.Note, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Note, error)
	Create(ctx context.Context, note domain.Note) (domain.Note, error)
	Update(ctx context.Context, note domain.Note) (domain.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PgRepository struct {
	pool db.Querier
}

func NewPgRepository(pool db.Querier) *PgRepository {
	return &PgRepository{pool: pool}
}

const noteColumns = `id, title, content, created_at, updated_at`

func (r *PgRepository) List(ctx context.Context) ([]domain.Note, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+noteColumns+` FROM notes ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to list notes: %w", err))
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to scan note: %w", err))
		}
		notes = append(notes, n)
	}

	if rows.Err() != nil {
		return nil, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("rows iteration error: %w", rows.Err()))
	}

	return notes, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`,
		id,
	)

	var n domain.Note
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, commonerrors.ErrNoteNotFound
		}
		return domain.Note{}, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to find note by id: %w", err))
	}

	return n, nil
}

func (r *PgRepository) Create(ctx context.Context, note domain.Note) (domain.Note, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO notes (id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+noteColumns,
		note.ID,
		note.Title,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	)

	var created domain.Note
	if err := row.Scan(&created.ID, &created.Title, &created.Content, &created.CreatedAt, &created.UpdatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return domain.Note{}, commonerrors.ErrDuplicateTitle
		}
		return domain.Note{}, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to create note: %w", err))
	}

	return created, nil
}

func (r *PgRepository) Update(ctx context.Context, note domain.Note) (domain.Note, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE notes SET title = $1, content = $2, updated_at = $3
		 WHERE id = $4
		 RETURNING `+noteColumns,
		note.Title,
		note.Content,
		note.UpdatedAt,
		note.ID,
	)

	var updated domain.Note
	if err := row.Scan(&updated.ID, &updated.Title, &updated.Content, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, commonerrors.ErrNoteNotFound
		}
		if db.IsUniqueViolation(err) {
			return domain.Note{}, commonerrors.ErrDuplicateTitle
		}
		return domain.Note{}, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to update note: %w", err))
	}

	return updated, nil
}

// Delete is unconditional: removing an id that is already gone is not an
// error.
func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(
		ctx,
		`DELETE FROM notes WHERE id = $1`,
		id,
	)
	if err != nil {
		return commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to delete note: %w", err))
	}
	return nil
}
