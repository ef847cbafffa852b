package seeder

import (
	"context"

	"skillswap/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	skills := []struct {
		ID          string
		UserID      string
		Title       string
		Description string
		Category    string
		Type        string
		Level       string
		Location    string
		Duration    string
		Tags        []string
	}{
		{
			"c0a80102-0000-4000-8000-000000000001",
			"c0a80101-0000-4000-8000-000000000001",
			"Acoustic guitar lessons",
			"From first chords to fingerstyle arrangements. I bring a spare guitar to every session so you can start immediately.",
			"Music", "offer", "advanced", "both", "1 hour", []string{"guitar", "acoustic", "music-theory"},
		},
		{
			"c0a80102-0000-4000-8000-000000000002",
			"c0a80101-0000-4000-8000-000000000001",
			"Looking for Go programming mentor",
			"I can build small scripts but want to learn how real services are structured.",
			"Technology", "request", "beginner", "online", "1 hour", []string{"go", "backend"},
		},
		{
			"c0a80102-0000-4000-8000-000000000003",
			"c0a80101-0000-4000-8000-000000000002",
			"Go backend mentoring",
			"Ten years of production Go. Happy to walk through service design, testing habits, and code review together.",
			"Technology", "offer", "advanced", "online", "1.5 hours", []string{"go", "backend", "databases"},
		},
		{
			"c0a80102-0000-4000-8000-000000000004",
			"c0a80101-0000-4000-8000-000000000002",
			"Want to learn home cooking basics",
			"Knife skills, pantry staples, and a handful of weeknight recipes.",
			"Cooking", "request", "beginner", "in-person", "2 hours", []string{"cooking", "basics"},
		},
		{
			"c0a80102-0000-4000-8000-000000000005",
			"c0a80101-0000-4000-8000-000000000003",
			"Portrait photography walks",
			"Bring any camera. We cover composition, natural light, and editing a small set afterwards.",
			"Art", "offer", "intermediate", "in-person", "2 hours", []string{"photography", "editing"},
		},
	}

	for _, s := range skills {
		_, err := db.Exec(ctx,
			`INSERT INTO skills (id, user_id, title, description, category, type, level, location, duration, tags)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (id) DO NOTHING`,
			s.ID, s.UserID, s.Title, s.Description, s.Category, s.Type, s.Level, s.Location, s.Duration, s.Tags,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
