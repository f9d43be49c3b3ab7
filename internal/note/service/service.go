package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akarpovich/notes-service/internal/common/crypto"
	"github.com/akarpovich/notes-service/internal/common/logger"
	"github.com/akarpovich/notes-service/internal/note/domain"
	"github.com/akarpovich/notes-service/internal/note/repository"
)

// NoteResponse is the response DTO for a note.
type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service mirrors the repository operations but speaks DTOs. It is the seam
// for read-modify-write policy; the repository stays a dumb query executor.
type Service interface {
	ListNotes(ctx context.Context) ([]NoteResponse, error)
	GetNote(ctx context.Context, id uuid.UUID) (NoteResponse, error)
	CreateNote(ctx context.Context, title, content string) (NoteResponse, error)
	UpdateNote(ctx context.Context, id uuid.UUID, title, content string) (NoteResponse, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

type NoteService struct {
	repo        repository.Repository
	idGenerator crypto.IDGenerator
	now         func() time.Time
	log         *logger.Logger
}

func NewNoteService(repo repository.Repository, idGenerator crypto.IDGenerator, log *logger.Logger) *NoteService {
	return &NoteService{
		repo:        repo,
		idGenerator: idGenerator,
		now:         time.Now,
		log:         log,
	}
}

func (s *NoteService) ListNotes(ctx context.Context) ([]NoteResponse, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, toResponse(n))
	}

	return responses, nil
}

func (s *NoteService) GetNote(ctx context.Context, id uuid.UUID) (NoteResponse, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return NoteResponse{}, err
	}
	return toResponse(note), nil
}

func (s *NoteService) CreateNote(ctx context.Context, title, content string) (NoteResponse, error) {
	id, err := s.idGenerator.NewID()
	if err != nil {
		return NoteResponse{}, err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, domain.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return NoteResponse{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"note_id": created.ID.String(),
		"action":  "note_created",
	}).Info("note created")

	return toResponse(created), nil
}

// UpdateNote confirms existence before updating, so a miss surfaces as a
// clean not-found instead of an ambiguous failed update.
func (s *NoteService) UpdateNote(ctx context.Context, id uuid.UUID, title, content string) (NoteResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return NoteResponse{}, err
	}

	updated, err := s.repo.Update(ctx, domain.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return NoteResponse{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"note_id": id.String(),
		"action":  "note_updated",
	}).Info("note updated")

	return toResponse(updated), nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"note_id": id.String(),
		"action":  "note_deleted",
	}).Info("note deleted")

	return nil
}

func toResponse(n domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
