package stores

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-board/internal/models"
)

type GormCategoryStore struct{ DB *gorm.DB }

func (s *GormCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *GormCategoryStore) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GormCategoryStore) Create(ctx context.Context, c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	return s.DB.WithContext(ctx).Create(c).Error
}

func (s *GormCategoryStore) Rename(ctx context.Context, id uint, name string) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Category{ID: id}).
		Update("name", strings.TrimSpace(name))
	return affectedOrNotFound(res)
}

func (s *GormCategoryStore) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Job{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		return affectedOrNotFound(tx.Delete(&models.Category{}, id))
	})
}

func (s *GormCategoryStore) ListWithJobCounts(ctx context.Context) ([]models.CategoryStat, error) {
	stats := []models.CategoryStat{}
	err := s.DB.WithContext(ctx).
		Table("categories").
		Select("categories.id, categories.name, COUNT(jobs.id) AS job_count").
		Joins("LEFT JOIN jobs ON jobs.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
