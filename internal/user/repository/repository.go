package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akarpovich/notes-service/internal/common/db"
	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
	"github.com/akarpovich/notes-service/internal/user/domain"
)

type Repository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, email string) (bool, error)
}

type PgRepository struct {
	pool db.Querier
}

func NewPgRepository(pool db.Querier) *PgRepository {
	return &PgRepository{pool: pool}
}

const userColumns = `id, firstname, lastname, email, password, role, created_at, updated_at`

func (r *PgRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to check email existence: %w", err))
	}

	return exists, nil
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (id, firstname, lastname, email, password, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+userColumns,
		user.ID,
		user.Firstname,
		user.Lastname,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	var created domain.User
	err := row.Scan(
		&created.ID,
		&created.Firstname,
		&created.Lastname,
		&created.Email,
		&created.PasswordHash,
		&created.Role,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return domain.User{}, commonerrors.ErrEmailAlreadyExists
		}
		return domain.User{}, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to create user: %w", err))
	}

	return created, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row, "email")
}

func (r *PgRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row, "id")
}

func (r *PgRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE users SET firstname = $1, lastname = $2, password = $3, updated_at = $4
		 WHERE email = $5
		 RETURNING `+userColumns,
		user.Firstname,
		user.Lastname,
		user.PasswordHash,
		user.UpdatedAt,
		user.Email,
	)

	var updated domain.User
	err := row.Scan(
		&updated.ID,
		&updated.Firstname,
		&updated.Lastname,
		&updated.Email,
		&updated.PasswordHash,
		&updated.Role,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, commonerrors.ErrUserNotFound
		}
		return domain.User{}, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to update user: %w", err))
	}

	return updated, nil
}

// Delete reports whether a row was actually removed so callers can
// distinguish absence from success.
func (r *PgRepository) Delete(ctx context.Context, email string) (bool, error) {
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM users WHERE email = $1`,
		email,
	)
	if err != nil {
		return false, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to delete user: %w", err))
	}

	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row, by string) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Firstname,
		&u.Lastname,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, commonerrors.ErrUserNotFound
		}
		return domain.User{}, commonerrors.ErrStoreFailure.WithCause(fmt.Errorf("failed to find user by %s: %w", by, err))
	}
	return u, nil
}
