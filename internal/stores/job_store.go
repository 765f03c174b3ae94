package stores

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/job-board/internal/jobfilter"
	"github.com/justsurfingit/job-board/internal/models"
)

type GormJobStore struct{ DB *gorm.DB }

// jobColumns are written on update; posted_on is fixed at creation.
var jobColumns = []string{
	"title", "company", "location", "description", "job_type", "experience_level",
	"min_salary", "max_salary", "category_id", "tags",
}

func (s *GormJobStore) Create(ctx context.Context, j *models.Job) error {
	return s.DB.WithContext(ctx).Omit(clause.Associations).Create(j).Error
}

func (s *GormJobStore) Update(ctx context.Context, j *models.Job) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Job{ID: j.ID}).
		Select(jobColumns).
		Omit(clause.Associations).
		Updates(j)
	return affectedOrNotFound(res)
}

func (s *GormJobStore) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var j models.Job
	if err := s.DB.WithContext(ctx).First(&j, id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *GormJobStore) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return affectedOrNotFound(tx.Delete(&models.Job{}, id))
	})
}

func (s *GormJobStore) Search(ctx context.Context, f jobfilter.Filter) ([]models.Job, error) {
	jobs := []models.Job{}
	if err := s.DB.WithContext(ctx).Scopes(f.Scope).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *GormJobStore) SearchTitle(ctx context.Context, query string, limit int) ([]models.Job, error) {
	jobs := []models.Job{}
	err := s.DB.WithContext(ctx).
		Where("title ILIKE ?", containsPattern(query)).
		Order("posted_on DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Locations lists the distinct job locations for the filter form.
func (s *GormJobStore) Locations(ctx context.Context) ([]string, error) {
	locations := []string{}
	err := s.DB.WithContext(ctx).
		Model(&models.Job{}).
		Distinct("location").
		Order("location ASC").
		Pluck("location", &locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (s *GormJobStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Job{}).Count(&n).Error
	return n, err
}
