//go:build integration
// +build integration

package stores_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/jobfilter"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/stores"
)

// setupTestDB starts PostgreSQL in a container and returns a migrated gorm handle.
func setupTestDB(t *testing.T) *gorm.DB {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("jobboard"),
		postgres.WithUsername("jobboard"),
		postgres.WithPassword("jobboard"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func intPtr(v int) *int { return &v }

func seedStudent(t *testing.T, s *stores.Stores, email string) *models.Student {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", Role: models.RoleStudent}
	st := &models.Student{Name: "Student " + email}
	require.NoError(t, s.Students.CreateWithUser(context.Background(), u, st))
	return st
}

func seedJob(t *testing.T, s *stores.Stores, job models.Job) *models.Job {
	t.Helper()
	if job.PostedOn.IsZero() {
		job.PostedOn = time.Now().UTC()
	}
	require.NoError(t, s.Jobs.Create(context.Background(), &job))
	return &job
}

func TestStoresIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	db := setupTestDB(t)
	s := stores.New(db)
	ctx := context.Background()

	t.Run("duplicate email is reported as ErrDuplicate", func(t *testing.T) {
		seedStudent(t, s, "dup@example.com")
		err := s.Students.CreateWithUser(ctx,
			&models.User{Email: "DUP@example.com", PasswordHash: "x", Role: models.RoleStudent},
			&models.Student{Name: "Again"})
		assert.True(t, stores.IsDuplicate(err))
	})

	t.Run("one application per student and job", func(t *testing.T) {
		st := seedStudent(t, s, "apply@example.com")
		job := seedJob(t, s, models.Job{Title: "Go Dev", Company: "Acme", Location: "Pune", Description: "x"})

		first := &models.Application{StudentID: st.ID, JobID: job.ID, AppliedOn: time.Now(), Status: models.StatusPending}
		require.NoError(t, s.Applications.Create(ctx, first))

		second := &models.Application{StudentID: st.ID, JobID: job.ID, AppliedOn: time.Now(), Status: models.StatusPending}
		assert.True(t, stores.IsDuplicate(s.Applications.Create(ctx, second)))

		details, err := s.Applications.List(ctx, stores.ApplicationQuery{JobID: job.ID})
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, "Go Dev", details[0].JobTitle)
		assert.Equal(t, "apply@example.com", details[0].StudentEmail)
	})

	t.Run("deleting a job removes its applications", func(t *testing.T) {
		st := seedStudent(t, s, "cascade@example.com")
		job := seedJob(t, s, models.Job{Title: "Temp", Company: "Acme", Location: "Pune", Description: "x"})
		require.NoError(t, s.Applications.Create(ctx, &models.Application{
			StudentID: st.ID, JobID: job.ID, AppliedOn: time.Now(), Status: models.StatusPending,
		}))

		require.NoError(t, s.Jobs.Delete(ctx, job.ID))

		_, err := s.Applications.Find(ctx, st.ID, job.ID)
		assert.True(t, stores.IsNotFound(err))
		assert.True(t, stores.IsNotFound(s.Jobs.Delete(ctx, job.ID)))
	})

	t.Run("deleting a category detaches its jobs", func(t *testing.T) {
		cat := &models.Category{Name: "Data"}
		require.NoError(t, s.Categories.Create(ctx, cat))
		job := seedJob(t, s, models.Job{Title: "Analyst", Company: "Acme", Location: "Pune", Description: "x", CategoryID: &cat.ID})

		require.NoError(t, s.Categories.Delete(ctx, cat.ID))

		got, err := s.Jobs.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
	})

	t.Run("status update and filtered listing", func(t *testing.T) {
		st := seedStudent(t, s, "status@example.com")
		job := seedJob(t, s, models.Job{Title: "Intern", Company: "Beta", Location: "Delhi", Description: "x"})
		app := &models.Application{StudentID: st.ID, JobID: job.ID, AppliedOn: time.Now(), Status: models.StatusPending}
		require.NoError(t, s.Applications.Create(ctx, app))

		require.NoError(t, s.Applications.UpdateStatus(ctx, app.ID, models.StatusAccepted))

		accepted, err := s.Applications.List(ctx, stores.ApplicationQuery{StudentID: st.ID, Status: models.StatusAccepted})
		require.NoError(t, err)
		require.Len(t, accepted, 1)
		assert.Equal(t, app.ID, accepted[0].ID)

		assert.True(t, stores.IsNotFound(s.Applications.UpdateStatus(ctx, 999999, models.StatusRejected)))
	})

	t.Run("database filter agrees with in-memory match", func(t *testing.T) {
		base := time.Now().UTC().Add(-time.Hour)
		seedJob(t, s, models.Job{Title: "Remote Go", Company: "Gamma", Location: "Remote", Description: "x", Tags: "Go,Remote", JobType: "Full-time", MinSalary: intPtr(50000), PostedOn: base})
		seedJob(t, s, models.Job{Title: "Office Java", Company: "Delta", Location: "Mumbai", Description: "x", Tags: "Java", JobType: "Internship", PostedOn: base.Add(time.Minute)})
		seedJob(t, s, models.Job{Title: "Rust 100%", Company: "Eps", Location: "Remote", Description: "x", JobType: "Full-time", MinSalary: intPtr(90000), PostedOn: base.Add(2 * time.Minute)})

		all, err := s.Jobs.Search(ctx, jobfilter.Filter{})
		require.NoError(t, err)

		filters := []url.Values{
			{"q": {"remote"}},
			{"min_salary": {"40000"}},
			{"min_salary": {"60000"}},
			{"job_type": {"Full-time", "Internship"}},
			{"location": {"Remote"}, "min_salary": {"60000"}},
			{"q": {"100%"}},
			{"q": {"_"}},
		}
		for _, values := range filters {
			f := jobfilter.FromValues(values)
			got, err := s.Jobs.Search(ctx, f)
			require.NoError(t, err)

			var want []uint
			for _, job := range all {
				if f.Match(job) {
					want = append(want, job.ID)
				}
			}
			var gotIDs []uint
			for _, job := range got {
				gotIDs = append(gotIDs, job.ID)
			}
			assert.Equal(t, want, gotIDs, values.Encode())
		}
	})

	t.Run("counts and joined views", func(t *testing.T) {
		stats, err := s.Categories.ListWithJobCounts(ctx)
		require.NoError(t, err)
		assert.NotNil(t, stats)

		accounts, err := s.Students.ListAccounts(ctx)
		require.NoError(t, err)
		n, err := s.Students.Count(ctx)
		require.NoError(t, err)
		assert.Len(t, accounts, int(n))

		found, err := s.Jobs.SearchTitle(ctx, "go", 10)
		require.NoError(t, err)
		assert.NotEmpty(t, found)
	})
}
