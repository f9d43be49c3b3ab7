package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note mirrors a row of the notes table.
type Note struct {
	ID        uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
