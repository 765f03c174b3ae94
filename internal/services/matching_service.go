package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/stores"
)

// SearchService backs the admin quick search over job titles and student names.
type SearchService struct {
	Jobs     stores.JobStore
	Students stores.StudentStore
}

func NewSearchService(s *stores.Stores) *SearchService {
	return &SearchService{Jobs: s.Jobs, Students: s.Students}
}

const searchLimit = 50

type SearchResults struct {
	Query    string
	Jobs     []models.Job
	Students []models.Student
}

func (s *SearchService) Search(ctx context.Context, p *auth.Principal, query string) (*SearchResults, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	results := &SearchResults{Query: query, Jobs: []models.Job{}, Students: []models.Student{}}
	// A blank query would match everything.
	if query == "" {
		return results, nil
	}

	jobs, err := s.Jobs.SearchTitle(ctx, query, searchLimit)
	if err != nil {
		return nil, storeError(err, "job")
	}
	students, err := s.Students.SearchByName(ctx, query, searchLimit)
	if err != nil {
		return nil, storeError(err, "student")
	}
	results.Jobs = jobs
	results.Students = students
	return results, nil
}
