// Package stores holds the gorm-backed repositories. Every relationship is
// followed through an explicit query method; nothing is lazily loaded.
package stores

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-board/internal/jobfilter"
	"github.com/justsurfingit/job-board/internal/models"
)

var (
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = gorm.ErrDuplicatedKey
)

// UserStore abstracts login account persistence.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// FindByEmail returns the user with that email (case-insensitive), or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// StudentStore abstracts student profile persistence.
type StudentStore interface {
	// CreateWithUser inserts the account and its profile atomically.
	CreateWithUser(ctx context.Context, u *models.User, s *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Student, error)
	GetAccount(ctx context.Context, id uint) (*models.StudentAccount, error)
	ListAccounts(ctx context.Context) ([]models.StudentAccount, error)
	UpdateProfile(ctx context.Context, s *models.Student) error
	UpdateResume(ctx context.Context, id uint, key string) error
	SearchByName(ctx context.Context, query string, limit int) ([]models.Student, error)
	Count(ctx context.Context) (int64, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Rename(ctx context.Context, id uint, name string) error
	// Delete removes the category and detaches its jobs.
	Delete(ctx context.Context, id uint) error
	ListWithJobCounts(ctx context.Context) ([]models.CategoryStat, error)
}

type JobStore interface {
	Create(ctx context.Context, j *models.Job) error
	Update(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	// Delete removes the job together with its applications.
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, f jobfilter.Filter) ([]models.Job, error)
	SearchTitle(ctx context.Context, query string, limit int) ([]models.Job, error)
	Locations(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

// ApplicationQuery narrows ApplicationStore.List. Zero fields are ignored.
type ApplicationQuery struct {
	StudentID uint
	JobID     uint
	Status    models.ApplicationStatus
}

type ApplicationStore interface {
	// Create inserts a new application; a second one for the same pair fails with ErrDuplicate.
	Create(ctx context.Context, a *models.Application) error
	Find(ctx context.Context, studentID, jobID uint) (*models.Application, error)
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
	AppliedJobIDs(ctx context.Context, studentID uint) (map[uint]bool, error)
	List(ctx context.Context, q ApplicationQuery) ([]models.ApplicationDetail, error)
	Count(ctx context.Context) (int64, error)
}

// Stores bundles the repositories over one connection pool.
type Stores struct {
	Users        UserStore
	Students     StudentStore
	Categories   CategoryStore
	Jobs         JobStore
	Applications ApplicationStore
}

func New(db *gorm.DB) *Stores {
	return &Stores{
		Users:        &GormUserStore{DB: db},
		Students:     &GormStudentStore{DB: db},
		Categories:   &GormCategoryStore{DB: db},
		Jobs:         &GormJobStore{DB: db},
		Applications: &GormApplicationStore{DB: db},
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// containsPattern builds an ILIKE pattern that matches query literally.
func containsPattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(query)) + "%"
}

// affectedOrNotFound turns an update that touched nothing into ErrNotFound.
func affectedOrNotFound(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
