package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	Image        string    `json:"image,omitempty"`
	Description  string    `json:"description,omitempty"`
	Tags         string    `json:"tags,omitempty"`
	StarsCount   int       `json:"stars_count"`
	MaxStars     int       `json:"max_stars"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
