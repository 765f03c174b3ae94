package services

import (
	"context"

	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/stores"
)

type StatsService struct {
	Stores *stores.Stores
}

func NewStatsService(s *stores.Stores) *StatsService {
	return &StatsService{Stores: s}
}

type Counts struct {
	Jobs         int64
	Students     int64
	Applications int64
}

type Analytics struct {
	Counts
	Categories []models.CategoryStat
}

// Counts is public; the home page shows it.
func (s *StatsService) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	var err error
	if c.Jobs, err = s.Stores.Jobs.Count(ctx); err != nil {
		return nil, storeError(err, "job")
	}
	if c.Students, err = s.Stores.Students.Count(ctx); err != nil {
		return nil, storeError(err, "student")
	}
	if c.Applications, err = s.Stores.Applications.Count(ctx); err != nil {
		return nil, storeError(err, "application")
	}
	return &c, nil
}

func (s *StatsService) Analytics(ctx context.Context, p *auth.Principal) (*Analytics, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	counts, err := s.Counts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Stores.Categories.ListWithJobCounts(ctx)
	if err != nil {
		return nil, storeError(err, "category")
	}
	return &Analytics{Counts: *counts, Categories: categories}, nil
}
