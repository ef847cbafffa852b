package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Username     string
	FirstName    string
	LastName     string
	Bio          string

	// Rating is the running average (0.0-5.0) over TotalRatings reviews.
	Rating       float64
	TotalRatings int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Bio       *string
}
