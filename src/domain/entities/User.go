package entities

import (
	"time"

	"github.com/google/uuid"
)

type UserLocation struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	// Nunca serializado: o hash só circula entre repositório e serviço de auth.
	PasswordHash string       `json:"-"`
	Location     UserLocation `json:"location"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
