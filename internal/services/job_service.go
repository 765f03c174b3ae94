package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/jobfilter"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/stores"
)

type JobService struct {
	Jobs         stores.JobStore
	Categories   stores.CategoryStore
	Applications stores.ApplicationStore
	Log          logrus.FieldLogger
	now          func() time.Time
}

func NewJobService(s *stores.Stores, log logrus.FieldLogger) *JobService {
	return &JobService{
		Jobs:         s.Jobs,
		Categories:   s.Categories,
		Applications: s.Applications,
		Log:          log,
		now:          time.Now,
	}
}

// JobListing is a job as one student sees it.
type JobListing struct {
	models.Job
	Applied bool
}

// FilterOptions feeds the selects of the filter form.
type FilterOptions struct {
	Categories []models.Category
	Locations  []string
}

func (s *JobService) CreateJob(ctx context.Context, p *auth.Principal, req *dtos.JobRequest) (*models.Job, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	job := &models.Job{PostedOn: s.now().UTC()}
	if err := s.apply(ctx, job, req); err != nil {
		return nil, err
	}
	if err := s.Jobs.Create(ctx, job); err != nil {
		return nil, storeError(err, "job")
	}
	s.Log.WithFields(logrus.Fields{"job_id": job.ID, "admin_id": p.UserID}).Info("job posted")
	return job, nil
}

func (s *JobService) UpdateJob(ctx context.Context, p *auth.Principal, id uint, req *dtos.JobRequest) (*models.Job, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	job, err := s.Jobs.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "job")
	}
	if err := s.apply(ctx, job, req); err != nil {
		return nil, err
	}
	if err := s.Jobs.Update(ctx, job); err != nil {
		return nil, storeError(err, "job")
	}
	s.Log.WithFields(logrus.Fields{"job_id": job.ID, "admin_id": p.UserID}).Info("job updated")
	return job, nil
}

// DeleteJob removes the job and every application to it.
func (s *JobService) DeleteJob(ctx context.Context, p *auth.Principal, id uint) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if err := s.Jobs.Delete(ctx, id); err != nil {
		return storeError(err, "job")
	}
	s.Log.WithFields(logrus.Fields{"job_id": id, "admin_id": p.UserID}).Info("job deleted")
	return nil
}

func (s *JobService) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.Jobs.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "job")
	}
	return job, nil
}

// JobDetail returns one job with the student's applied flag.
func (s *JobService) JobDetail(ctx context.Context, p *auth.Principal, id uint) (*JobListing, error) {
	if err := requireStudent(p); err != nil {
		return nil, err
	}
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	_, err = s.Applications.Find(ctx, p.StudentID, id)
	switch {
	case err == nil:
		return &JobListing{Job: *job, Applied: true}, nil
	case stores.IsNotFound(err):
		return &JobListing{Job: *job}, nil
	default:
		return nil, storeError(err, "application")
	}
}

// Listings runs the filter and marks the jobs the student already applied to.
// The applied set is loaded once for the whole page.
func (s *JobService) Listings(ctx context.Context, p *auth.Principal, f jobfilter.Filter) ([]JobListing, error) {
	if err := requireStudent(p); err != nil {
		return nil, err
	}
	jobs, err := s.Jobs.Search(ctx, f)
	if err != nil {
		return nil, storeError(err, "job")
	}
	applied, err := s.Applications.AppliedJobIDs(ctx, p.StudentID)
	if err != nil {
		return nil, storeError(err, "application")
	}
	listings := make([]JobListing, 0, len(jobs))
	for _, job := range jobs {
		listings = append(listings, JobListing{Job: job, Applied: applied[job.ID]})
	}
	return listings, nil
}

// Summaries is the JSON rendition of a filtered listing. It never returns nil.
func (s *JobService) Summaries(ctx context.Context, f jobfilter.Filter) ([]dtos.JobSummary, error) {
	jobs, err := s.Jobs.Search(ctx, f)
	if err != nil {
		return nil, storeError(err, "job")
	}
	out := make([]dtos.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, dtos.NewJobSummary(job))
	}
	return out, nil
}

// ListJobs is the unfiltered admin listing.
func (s *JobService) ListJobs(ctx context.Context, p *auth.Principal) ([]models.Job, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	jobs, err := s.Jobs.Search(ctx, jobfilter.Filter{})
	if err != nil {
		return nil, storeError(err, "job")
	}
	return jobs, nil
}

func (s *JobService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, storeError(err, "category")
	}
	locations, err := s.Jobs.Locations(ctx)
	if err != nil {
		return nil, storeError(err, "job")
	}
	return &FilterOptions{Categories: categories, Locations: locations}, nil
}

// apply copies the form onto job after checking the rules binding cannot express.
func (s *JobService) apply(ctx context.Context, job *models.Job, req *dtos.JobRequest) error {
	fields := map[string]string{}

	minSalary, ok := parseOptionalInt(req.MinSalary)
	if !ok {
		fields["min_salary"] = "Enter a number."
	}
	maxSalary, ok := parseOptionalInt(req.MaxSalary)
	if !ok {
		fields["max_salary"] = "Enter a number."
	}
	if minSalary != nil && maxSalary != nil && *maxSalary < *minSalary {
		fields["max_salary"] = "Must not be below the minimum salary."
	}

	var categoryID *uint
	if raw := strings.TrimSpace(req.CategoryID); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			fields["category_id"] = "Choose an existing category."
		} else {
			cid := uint(id)
			if _, err := s.Categories.GetByID(ctx, cid); err != nil {
				if !stores.IsNotFound(err) {
					return storeError(err, "category")
				}
				fields["category_id"] = "Choose an existing category."
			}
			categoryID = &cid
		}
	}

	if len(fields) > 0 {
		return apperr.NewValidation("Please correct the highlighted fields", fields)
	}

	job.Title = strings.TrimSpace(req.Title)
	job.Company = strings.TrimSpace(req.Company)
	job.Location = strings.TrimSpace(req.Location)
	job.Description = strings.TrimSpace(req.Description)
	job.JobType = strings.TrimSpace(req.JobType)
	job.ExperienceLevel = strings.TrimSpace(req.ExperienceLevel)
	job.MinSalary = minSalary
	job.MaxSalary = maxSalary
	job.CategoryID = categoryID
	job.Tags = strings.Join(models.Job{Tags: req.Tags}.TagList(), ",")
	return nil
}

func parseOptionalInt(raw string) (*int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}
