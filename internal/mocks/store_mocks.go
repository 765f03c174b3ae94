package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/justsurfingit/job-board/internal/jobfilter"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/stores"
)

type UserStore struct{ mock.Mock }

func (m *UserStore) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type StudentStore struct{ mock.Mock }

func (m *StudentStore) CreateWithUser(ctx context.Context, u *models.User, s *models.Student) error {
	return m.Called(ctx, u, s).Error(0)
}

func (m *StudentStore) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *StudentStore) GetByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *StudentStore) GetAccount(ctx context.Context, id uint) (*models.StudentAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentAccount), args.Error(1)
}

func (m *StudentStore) ListAccounts(ctx context.Context) ([]models.StudentAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.StudentAccount), args.Error(1)
}

func (m *StudentStore) UpdateProfile(ctx context.Context, s *models.Student) error {
	return m.Called(ctx, s).Error(0)
}

func (m *StudentStore) UpdateResume(ctx context.Context, id uint, key string) error {
	return m.Called(ctx, id, key).Error(0)
}

func (m *StudentStore) SearchByName(ctx context.Context, query string, limit int) ([]models.Student, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *StudentStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type CategoryStore struct{ mock.Mock }

func (m *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *CategoryStore) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *CategoryStore) Create(ctx context.Context, c *models.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CategoryStore) Rename(ctx context.Context, id uint, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *CategoryStore) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CategoryStore) ListWithJobCounts(ctx context.Context) ([]models.CategoryStat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CategoryStat), args.Error(1)
}

type JobStore struct{ mock.Mock }

func (m *JobStore) Create(ctx context.Context, j *models.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *JobStore) Update(ctx context.Context, j *models.Job) error {
	return m.Called(ctx, j).Error(0)
}

func (m *JobStore) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *JobStore) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *JobStore) Search(ctx context.Context, f jobfilter.Filter) ([]models.Job, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *JobStore) SearchTitle(ctx context.Context, query string, limit int) ([]models.Job, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *JobStore) Locations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *JobStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type ApplicationStore struct{ mock.Mock }

func (m *ApplicationStore) Create(ctx context.Context, a *models.Application) error {
	return m.Called(ctx, a).Error(0)
}

func (m *ApplicationStore) Find(ctx context.Context, studentID, jobID uint) (*models.Application, error) {
	args := m.Called(ctx, studentID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *ApplicationStore) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *ApplicationStore) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *ApplicationStore) AppliedJobIDs(ctx context.Context, studentID uint) (map[uint]bool, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *ApplicationStore) List(ctx context.Context, q stores.ApplicationQuery) ([]models.ApplicationDetail, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.ApplicationDetail), args.Error(1)
}

func (m *ApplicationStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// NewStores bundles fresh mocks, returning them typed for setting expectations.
func NewStores() (*stores.Stores, *UserStore, *StudentStore, *CategoryStore, *JobStore, *ApplicationStore) {
	u, s, c, j, a := new(UserStore), new(StudentStore), new(CategoryStore), new(JobStore), new(ApplicationStore)
	return &stores.Stores{Users: u, Students: s, Categories: c, Jobs: j, Applications: a}, u, s, c, j, a
}
