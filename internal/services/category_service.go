package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/stores"
)

type CategoryService struct {
	Categories stores.CategoryStore
	Log        logrus.FieldLogger
}

func NewCategoryService(s *stores.Stores, log logrus.FieldLogger) *CategoryService {
	return &CategoryService{Categories: s.Categories, Log: log}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, storeError(err, "category")
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, p *auth.Principal, name string) (*models.Category, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}
	c := &models.Category{Name: name}
	if err := s.Categories.Create(ctx, c); err != nil {
		if stores.IsDuplicate(err) {
			return nil, apperr.Conflict("Category already exists")
		}
		return nil, storeError(err, "category")
	}
	s.Log.WithField("category", c.Name).Info("category added")
	return c, nil
}

func (s *CategoryService) Rename(ctx context.Context, p *auth.Principal, id uint, name string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	name, err := categoryName(name)
	if err != nil {
		return err
	}
	if err := s.Categories.Rename(ctx, id, name); err != nil {
		if stores.IsDuplicate(err) {
			return apperr.Conflict("Category already exists")
		}
		return storeError(err, "category")
	}
	return nil
}

// Delete removes a category; its jobs stay and become uncategorized.
func (s *CategoryService) Delete(ctx context.Context, p *auth.Principal, id uint) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if err := s.Categories.Delete(ctx, id); err != nil {
		return storeError(err, "category")
	}
	s.Log.WithField("category_id", id).Info("category deleted")
	return nil
}

func categoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperr.NewValidation("Category name is required", map[string]string{"name": "This field is required."})
	}
	return name, nil
}
