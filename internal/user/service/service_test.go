package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/akarpovich/notes-service/internal/common/errors"
	"github.com/akarpovich/notes-service/internal/common/logger"
	"github.com/akarpovich/notes-service/internal/user/domain"
)

type mockRepo struct {
	emailExistsFunc func(ctx context.Context, email string) (bool, error)
	createFunc      func(ctx context.Context, user domain.User) (domain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	findByIDFunc    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	updateFunc      func(ctx context.Context, user domain.User) (domain.User, error)
	deleteFunc      func(ctx context.Context, email string) (bool, error)
}

func (m *mockRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFunc(ctx, email)
}

func (m *mockRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.createFunc(ctx, user)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.findByEmailFunc(ctx, email)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	return m.updateFunc(ctx, user)
}

func (m *mockRepo) Delete(ctx context.Context, email string) (bool, error) {
	return m.deleteFunc(ctx, email)
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	require.NoError(t, err)
	return log
}

func sampleUser() domain.User {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return domain.User{
		ID:           uuid.New(),
		Firstname:    "Jane",
		Lastname:     "Doe",
		Email:        "jane@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=1$c2FsdHNhbHQ$aGFzaGhhc2g",
		Role:         domain.DefaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestResponseOmitsPasswordHash(t *testing.T) {
	user := sampleUser()

	raw, err := json.Marshal(ToResponse(user))
	require.NoError(t, err)

	require.NotContains(t, string(raw), "password")
	require.NotContains(t, string(raw), user.PasswordHash)
	require.Contains(t, string(raw), user.Email)
}

func TestCreateUser(t *testing.T) {
	user := sampleUser()
	repo := &mockRepo{
		createFunc: func(ctx context.Context, u domain.User) (domain.User, error) { return u, nil },
	}

	svc := NewUserService(repo, newTestLogger(t))

	profile, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, user.ID, profile.ID)
	require.Equal(t, user.Email, profile.Email)
	require.Equal(t, domain.DefaultRole, profile.Role)
}

func TestFindByID(t *testing.T) {
	user := sampleUser()
	repo := &mockRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			require.Equal(t, user.ID, id)
			return user, nil
		},
	}

	svc := NewUserService(repo, newTestLogger(t))

	profile, err := svc.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Firstname, profile.Firstname)
}

func TestFindByID_NotFound(t *testing.T) {
	repo := &mockRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{}, commonerrors.ErrUserNotFound
		},
	}

	svc := NewUserService(repo, newTestLogger(t))

	_, err := svc.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, commonerrors.ErrUserNotFound)
}

func TestDeleteUser_Deleted(t *testing.T) {
	repo := &mockRepo{
		deleteFunc: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}

	svc := NewUserService(repo, newTestLogger(t))

	deleted, err := svc.DeleteUser(context.Background(), "jane@example.com")
	require.NoError(t, err)
	require.True(t, deleted)
}

func TestDeleteUser_MissingEmail(t *testing.T) {
	repo := &mockRepo{
		deleteFunc: func(ctx context.Context, email string) (bool, error) { return false, nil },
	}

	svc := NewUserService(repo, newTestLogger(t))

	deleted, err := svc.DeleteUser(context.Background(), "missing@example.com")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestDeleteUser_PropagatesStoreFailure(t *testing.T) {
	repo := &mockRepo{
		deleteFunc: func(ctx context.Context, email string) (bool, error) {
			return false, commonerrors.ErrStoreFailure
		},
	}

	svc := NewUserService(repo, newTestLogger(t))

	deleted, err := svc.DeleteUser(context.Background(), "jane@example.com")
	require.ErrorIs(t, err, commonerrors.ErrStoreFailure)
	require.False(t, deleted)
}

func TestResolveSubject(t *testing.T) {
	user := sampleUser()
	repo := &mockRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			if id == user.ID {
				return user, nil
			}
			return domain.User{}, commonerrors.ErrUserNotFound
		},
	}

	svc := NewUserService(repo, newTestLogger(t))

	require.NoError(t, svc.ResolveSubject(context.Background(), user.ID))
	require.ErrorIs(t, svc.ResolveSubject(context.Background(), uuid.New()), commonerrors.ErrUserNotFound)
}
