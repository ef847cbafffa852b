package seeder

import (
	"context"

	"skillswap/internal/database"
)

type UsersSeeder struct{}

func (UsersSeeder) Name() string { return "users" }

// Demo accounts share the password "skillswap-demo" (bcrypt hash below).
func (UsersSeeder) Run(ctx context.Context, db database.DB) error {
	const demoHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

	users := []struct {
		ID           string
		Email        string
		Username     string
		FirstName    string
		LastName     string
		Bio          string
		Rating       float64
		TotalRatings int
	}{
		{"c0a80101-0000-4000-8000-000000000001", "ana@example.com", "ana", "Ana", "Silva", "Guitar teacher, learning to code.", 4.8, 15},
		{"c0a80101-0000-4000-8000-000000000002", "bram@example.com", "bram", "Bram", "Jansen", "Backend developer who wants to cook.", 4.6, 12},
		{"c0a80101-0000-4000-8000-000000000003", "chi@example.com", "chi", "Chi", "Nguyen", "Photographer and language exchange fan.", 4.2, 7},
	}

	for _, u := range users {
		_, err := db.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, username, first_name, last_name, bio, rating, total_ratings)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (email) DO NOTHING`,
			u.ID, u.Email, demoHash, u.Username, u.FirstName, u.LastName, u.Bio, u.Rating, u.TotalRatings,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
