package stores

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/job-board/internal/models"
)

type GormApplicationStore struct{ DB *gorm.DB }

func (s *GormApplicationStore) Create(ctx context.Context, a *models.Application) error {
	return s.DB.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (s *GormApplicationStore) Find(ctx context.Context, studentID, jobID uint) (*models.Application, error) {
	var a models.Application
	err := s.DB.WithContext(ctx).
		Where("student_id = ? AND job_id = ?", studentID, jobID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *GormApplicationStore) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var a models.Application
	if err := s.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *GormApplicationStore) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Application{ID: id}).
		Update("status", status)
	return affectedOrNotFound(res)
}

func (s *GormApplicationStore) AppliedJobIDs(ctx context.Context, studentID uint) (map[uint]bool, error) {
	var ids []uint
	err := s.DB.WithContext(ctx).
		Model(&models.Application{}).
		Where("student_id = ?", studentID).
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, err
	}
	applied := make(map[uint]bool, len(ids))
	for _, id := range ids {
		applied[id] = true
	}
	return applied, nil
}

// List returns applications joined with their job and student in one query.
func (s *GormApplicationStore) List(ctx context.Context, q ApplicationQuery) ([]models.ApplicationDetail, error) {
	tx := s.DB.WithContext(ctx).
		Table("applications").
		Select(`applications.id, applications.student_id, applications.job_id,
			applications.applied_on, applications.status,
			jobs.title AS job_title, jobs.company AS job_company, jobs.location AS job_location,
			students.name AS student_name, users.email AS student_email,
			students.resume AS student_resume`).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Joins("JOIN students ON students.id = applications.student_id").
		Joins("JOIN users ON users.id = students.user_id")

	if q.StudentID != 0 {
		tx = tx.Where("applications.student_id = ?", q.StudentID)
	}
	if q.JobID != 0 {
		tx = tx.Where("applications.job_id = ?", q.JobID)
	}
	if q.Status != "" {
		tx = tx.Where("applications.status = ?", q.Status)
	}

	details := []models.ApplicationDetail{}
	err := tx.Order("applications.applied_on DESC").Order("applications.id DESC").Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (s *GormApplicationStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Application{}).Count(&n).Error
	return n, err
}
