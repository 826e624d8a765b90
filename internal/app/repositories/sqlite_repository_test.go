package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
	"github.com/nexusai/nexus-backend/internal/db"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	sqlDB, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewSQLiteRepositories(sqlDB)
}

func makeJob(title string, postedAt time.Time) *models.Job {
	job := &models.Job{
		Title:          title,
		Company:        "TechFlow",
		Location:       "Remote",
		Salary:         "$100k",
		Type:           "Full-time",
		Description:    "desc",
		SkillsRequired: []string{"React", "Go"},
	}
	job.ApplyDefaults(postedAt)
	return job
}

func TestSQLiteJobRepository_CreateAndList(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	job := makeJob("Frontend Engineer", time.Now())
	require.NoError(t, repos.Jobs.CreateJob(ctx, job))
	assert.Len(t, job.ID, 9, "relational identities are 9-char tokens")

	jobs, err := repos.Jobs.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	got := jobs[0]
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, "Frontend Engineer", got.Title)
	assert.Equal(t, models.DefaultMatchScore, got.MatchScore)
	assert.Equal(t, models.DefaultRecruiterID, got.RecruiterID)
	assert.Equal(t, models.DefaultExperienceLevel, got.ExperienceLevel)
}

func TestSQLiteJobRepository_SkillsRoundTrip(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	job := makeJob("Backend Engineer", time.Now())
	job.SkillsRequired = []string{"React", "Go"}
	require.NoError(t, repos.Jobs.CreateJob(ctx, job))

	jobs, err := repos.Jobs.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, []string{"React", "Go"}, jobs[0].SkillsRequired, "order preserved through the delimited column")
}

func TestSQLiteJobRepository_ListOrderedNewestFirst(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	oldest := makeJob("oldest", base.Add(-2*time.Hour))
	middle := makeJob("middle", base.Add(-time.Hour))
	newest := makeJob("newest", base)

	for _, job := range []*models.Job{middle, oldest, newest} {
		require.NoError(t, repos.Jobs.CreateJob(ctx, job))
	}

	jobs, err := repos.Jobs.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "newest", jobs[0].Title)
	assert.Equal(t, "middle", jobs[1].Title)
	assert.Equal(t, "oldest", jobs[2].Title)
}

func TestSQLiteJobRepository_Update(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	job := makeJob("before", time.Now())
	require.NoError(t, repos.Jobs.CreateJob(ctx, job))

	title := "after"
	location := "Berlin"
	skills := []string{"Rust"}
	updated, err := repos.Jobs.UpdateJob(ctx, job.ID, &dto.UpdateJobRequest{
		Title:          &title,
		Location:       &location,
		SkillsRequired: &skills,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "Berlin", updated.Location)
	assert.Equal(t, []string{"Rust"}, updated.SkillsRequired)
	assert.WithinDuration(t, job.PostedAt, updated.PostedAt, time.Millisecond, "postedAt is immutable")
}

func TestSQLiteJobRepository_UpdateLastWriteWins(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	job := makeJob("contested", time.Now())
	require.NoError(t, repos.Jobs.CreateJob(ctx, job))

	first := "first writer"
	_, err := repos.Jobs.UpdateJob(ctx, job.ID, &dto.UpdateJobRequest{Title: &first})
	require.NoError(t, err)

	second := "second writer"
	updated, err := repos.Jobs.UpdateJob(ctx, job.ID, &dto.UpdateJobRequest{Title: &second})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "second writer", updated.Title, "whole-row replace, no merged state")
}

func TestSQLiteJobRepository_UpdateUnknownID(t *testing.T) {
	repos := newTestRepos(t)

	title := "anything"
	updated, err := repos.Jobs.UpdateJob(context.Background(), "missing123", &dto.UpdateJobRequest{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated, "unknown id yields nil, not an error")
}

func TestSQLiteJobRepository_DeleteIdempotent(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	job := makeJob("doomed", time.Now())
	require.NoError(t, repos.Jobs.CreateJob(ctx, job))

	require.NoError(t, repos.Jobs.DeleteJob(ctx, job.ID))
	require.NoError(t, repos.Jobs.DeleteJob(ctx, job.ID), "second delete succeeds silently")

	jobs, err := repos.Jobs.ListJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func makeUser(uid string) *models.User {
	return &models.User{
		UID:       uid,
		Name:      "Alex Johnson",
		Email:     uid + "@university.edu",
		Role:      models.RoleStudent,
		CollegeID: "college-1",
		Skills:    []string{"Go", "SQL"},
		Bio:       "final year student",
		CreatedAt: time.Now(),
	}
}

func TestSQLiteUserRepository_CreateAndGet(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Users.CreateUser(ctx, makeUser("u1")))

	user, err := repos.Users.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alex Johnson", user.Name)
	assert.Equal(t, []string{"Go", "SQL"}, user.Skills)
	assert.Equal(t, []models.Application{}, user.Applications, "applications attach as an empty array")
}

func TestSQLiteUserRepository_GetUnknownUID(t *testing.T) {
	repos := newTestRepos(t)

	user, err := repos.Users.GetUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user, "unknown uid yields nil, not an error")
}

func TestSQLiteUserRepository_DuplicateUID(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Users.CreateUser(ctx, makeUser("u1")))
	err := repos.Users.CreateUser(ctx, makeUser("u1"))
	assert.Error(t, err, "uid primary key rejects duplicates")
}

func TestSQLiteUserRepository_UpdateOnlyNameAndBio(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Users.CreateUser(ctx, makeUser("u1")))

	name := "New Name"
	bio := "new bio"
	email := "changed@university.edu"
	strength := 80
	updated, err := repos.Users.UpdateUser(ctx, "u1", &dto.UpdateUserRequest{
		Name:            &name,
		Bio:             &bio,
		Email:           &email,
		ProfileStrength: &strength,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "u1@university.edu", updated.Email, "relational mode never touches email")
	assert.Equal(t, 0, updated.ProfileStrength, "relational mode never touches profileStrength")
}

func TestSQLiteUserRepository_ApplyToJob(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Users.CreateUser(ctx, makeUser("u1")))

	appliedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	application := models.Application{JobID: "J1", Status: models.StatusApplied, AppliedAt: appliedAt}
	require.NoError(t, repos.Users.ApplyToJob(ctx, "u1", application))

	user, err := repos.Users.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Len(t, user.Applications, 1)
	assert.Equal(t, "J1", user.Applications[0].JobID)
	assert.Equal(t, models.StatusApplied, user.Applications[0].Status)
	assert.Equal(t, appliedAt, user.Applications[0].AppliedAt)

	// No dedup: applying again appends a second record
	require.NoError(t, repos.Users.ApplyToJob(ctx, "u1", application))
	user, err = repos.Users.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, user.Applications, 2)
}

func TestSQLiteUserRepository_ListCollegeStudents(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	student := makeUser("s1")
	require.NoError(t, repos.Users.CreateUser(ctx, student))

	other := makeUser("s2")
	other.CollegeID = "college-2"
	require.NoError(t, repos.Users.CreateUser(ctx, other))

	recruiter := makeUser("r1")
	recruiter.Role = models.RoleRecruiter
	require.NoError(t, repos.Users.CreateUser(ctx, recruiter))

	require.NoError(t, repos.Users.ApplyToJob(ctx, "s1", models.Application{
		JobID: "J1", Status: models.StatusApplied, AppliedAt: time.Now(),
	}))

	students, err := repos.Users.ListCollegeStudents(ctx, "college-1")
	require.NoError(t, err)
	require.Len(t, students, 1, "only student-role users of the college match")
	assert.Equal(t, "s1", students[0].UID)
	assert.Len(t, students[0].Applications, 1, "students come enriched with applications")
}

func TestSQLiteUserRepository_ListCollegeStudentsEmpty(t *testing.T) {
	repos := newTestRepos(t)

	students, err := repos.Users.ListCollegeStudents(context.Background(), "empty-college")
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students, "no matches yields an empty array, not an error")
}

func TestNewJobID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newJobID()
		assert.Len(t, id, jobIDLength)
		for _, r := range id {
			assert.Contains(t, jobIDAlphabet, string(r))
		}
		seen[id] = true
	}
	assert.Greater(t, len(seen), 90, "ids are effectively unique")
}
