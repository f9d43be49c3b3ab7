package domain

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors a row of the users table. PasswordHash holds the PHC-encoded
// Argon2id hash stored in the password column and never leaves the service
// layer.
type User struct {
	ID           uuid.UUID
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const DefaultRole = "user"
