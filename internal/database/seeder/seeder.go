package seeder

import (
	"context"
	"fmt"
	"log"

	"skillswap/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Run executes the demo-data seeders in order. Each seeder is
// idempotent, so repeated startups with seeding enabled are safe.
func Run(ctx context.Context, db database.DB, logger *log.Logger) error {
	seeders := []Seeder{
		UsersSeeder{},
		SkillsSeeder{},
	}

	for _, s := range seeders {
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.Name(), err)
		}
		if logger != nil {
			logger.Printf("Seeder | applied: %s", s.Name())
		}
	}
	return nil
}
