package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/repositories"
)

// CreateDemoJobs populates the active store with a few demo postings so fresh
// installs have something on the board. It only runs against an empty store
// and goes through the repository directly: seeding must not broadcast events.
func CreateDemoJobs(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	existing, err := repos.Jobs.ListJobs(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	lgr.Info().Str("backend", string(repos.Backend)).Msg("Seeding demo jobs into empty store")

	demos := []*models.Job{
		{
			Title:           "Frontend Engineer",
			Company:         "TechFlow",
			Location:        "Remote",
			Salary:          "$120k - $150k",
			Type:            "Full-time",
			Description:     "Build and maintain the TechFlow design system and customer dashboards.",
			MatchScore:      94,
			SkillsRequired:  []string{"React", "TypeScript", "CSS"},
			ExperienceLevel: "Mid Level",
		},
		{
			Title:           "Product Designer",
			Company:         "CreativeCo",
			Location:        "New York, NY",
			Salary:          "$110k - $140k",
			Type:            "Full-time",
			Description:     "Own end-to-end product design for the CreativeCo mobile experience.",
			MatchScore:      88,
			SkillsRequired:  []string{"Figma", "Prototyping", "User Research"},
			ExperienceLevel: "Mid Level",
		},
		{
			Title:          "Software Intern",
			Company:        "FutureSystems",
			Location:       "San Francisco, CA",
			Salary:         "$40/hr",
			Type:           "Internship",
			Description:    "Work with the platform team on internal tooling and automation.",
			MatchScore:     72,
			SkillsRequired: []string{"Go", "SQL"},
		},
	}

	now := time.Now()
	for i, job := range demos {
		// Stagger postedAt so the list order is stable and newest-first
		job.ApplyDefaults(now.Add(-time.Duration(i) * time.Hour))
		if err := repos.Jobs.CreateJob(ctx, job); err != nil {
			return err
		}
	}

	lgr.Info().Int("count", len(demos)).Msg("Demo jobs seeded")
	return nil
}
