// Package seeder populates an empty roster with demo students so the portal
// is explorable without hand-editing the data files.
package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
)

// RosterStore defines the roster operations needed for seeding.
type RosterStore interface {
	List(ctx context.Context) ([]models.Student, error)
	Append(ctx context.Context, student models.Student) error
}

// Seeder writes demo students into the roster store.
type Seeder struct {
	roster RosterStore
	logger *slog.Logger
}

// New creates a new seeder.
func New(roster RosterStore, logger *slog.Logger) *Seeder {
	return &Seeder{roster: roster, logger: logger}
}

// Seed appends the demo roster. A non-empty roster is left alone, so seeding
// is safe to run on every startup.
func (s *Seeder) Seed(ctx context.Context) error {
	existing, err := s.roster.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read roster before seeding: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("roster already populated, skipping demo seed",
			"students", len(existing),
		)
		return nil
	}

	demoStudents := []models.Student{
		{Name: "Jane Doe", Email: "jane@example.com", Eligibility: "eligible"},
		{Name: "Arun Mehta", Email: "arun@example.com", Eligibility: "well done"},
		{Name: "Priya Sharma", Email: "priya@example.com", Eligibility: "eligible"},
		{Name: "Sam Okafor", Email: "sam@example.com", Eligibility: "pending"},
		{Name: "Lena Fischer", Email: "lena@example.com", Eligibility: "not eligible"},
	}

	for _, student := range demoStudents {
		if err := s.roster.Append(ctx, student); err != nil {
			return fmt.Errorf("failed to seed student %s: %w", student.Email, err)
		}
	}

	s.logger.Info("demo roster seeded", "students", len(demoStudents))
	return nil
}
