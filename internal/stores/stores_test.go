package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-board/internal/models"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

// captureSQL records the last statement gorm built.
func captureSQL(db *gorm.DB) *string {
	var last string
	_ = db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		last = tx.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...)
	})
	return &last
}

func TestApplicationListJoinsInOneQuery(t *testing.T) {
	db := dryRunDB(t)
	sql := captureSQL(db)
	store := &GormApplicationStore{DB: db}

	_, err := store.List(context.Background(), ApplicationQuery{StudentID: 7, Status: models.StatusAccepted})
	require.NoError(t, err)

	assert.Contains(t, *sql, "JOIN jobs ON jobs.id = applications.job_id")
	assert.Contains(t, *sql, "JOIN students ON students.id = applications.student_id")
	assert.Contains(t, *sql, "JOIN users ON users.id = students.user_id")
	assert.Contains(t, *sql, "applications.student_id = 7")
	assert.Contains(t, *sql, "applications.status = 'accepted'")
	assert.NotContains(t, *sql, "applications.job_id = ")
}

func TestSearchByNameEscapesPattern(t *testing.T) {
	db := dryRunDB(t)
	sql := captureSQL(db)
	store := &GormStudentStore{DB: db}

	_, err := store.SearchByName(context.Background(), " a_b ", 20)
	require.NoError(t, err)

	assert.Contains(t, *sql, `name ILIKE '%a\_b%'`)
	assert.Contains(t, *sql, "LIMIT 20")
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%remote%", containsPattern(" remote "))
	assert.Equal(t, `%50\%%`, containsPattern("50%"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}

func TestAffectedOrNotFound(t *testing.T) {
	assert.ErrorIs(t, affectedOrNotFound(&gorm.DB{RowsAffected: 0}), ErrNotFound)
	assert.NoError(t, affectedOrNotFound(&gorm.DB{RowsAffected: 1}))
}
