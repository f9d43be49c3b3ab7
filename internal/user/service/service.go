package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akarpovich/notes-service/internal/common/logger"
	"github.com/akarpovich/notes-service/internal/user/domain"
	"github.com/akarpovich/notes-service/internal/user/repository"
)

// UserResponse is the public profile DTO. There is deliberately no password
// field, so the stored hash cannot leak through serialization.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service wraps the user repository behind DTOs. FindByEmail is the one
// model-returning method: the authentication flow needs the stored hash.
// Passwords arrive here already hashed; this layer knows nothing about the
// hashing algorithm.
type Service interface {
	CreateUser(ctx context.Context, user domain.User) (UserResponse, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (UserResponse, error)
	UpdateUser(ctx context.Context, user domain.User) (UserResponse, error)
	DeleteUser(ctx context.Context, email string) (bool, error)
}

type UserService struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewUserService(repo repository.Repository, log *logger.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) CreateUser(ctx context.Context, user domain.User) (UserResponse, error) {
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return UserResponse{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": created.ID.String(),
		"action":  "user_created",
	}).Info("user created")

	return ToResponse(created), nil
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, email)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return ToResponse(user), nil
}

func (s *UserService) UpdateUser(ctx context.Context, user domain.User) (UserResponse, error) {
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return UserResponse{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": updated.ID.String(),
		"action":  "user_updated",
	}).Info("user updated")

	return ToResponse(updated), nil
}

// DeleteUser reports both outcomes separately: err for store failure, false
// for an email that matched nothing.
func (s *UserService) DeleteUser(ctx context.Context, email string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "user_delete_failed",
		}).Errorf("failed to delete user: %v", err)
		return false, err
	}

	if deleted {
		s.log.WithFields(ctx, logger.Fields{
			"action": "user_deleted",
		}).Info("user deleted")
	}

	return deleted, nil
}

// ResolveSubject satisfies the authorization gate's resolver contract.
func (s *UserService) ResolveSubject(ctx context.Context, id uuid.UUID) error {
	_, err := s.repo.FindByID(ctx, id)
	return err
}

func ToResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
