package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/observability"
	"github.com/justsurfingit/job-board/internal/stores"
)

// ApplicationService owns the apply and review workflow.
type ApplicationService struct {
	Jobs         stores.JobStore
	Applications stores.ApplicationStore
	Log          logrus.FieldLogger
	now          func() time.Time
}

func NewApplicationService(s *stores.Stores, log logrus.FieldLogger) *ApplicationService {
	return &ApplicationService{
		Jobs:         s.Jobs,
		Applications: s.Applications,
		Log:          log,
		now:          time.Now,
	}
}

const msgAlreadyApplied = "You have already applied for this job"

// Apply records a pending application. Applying twice to the same job is a
// Conflict and leaves the first application untouched.
func (s *ApplicationService) Apply(ctx context.Context, p *auth.Principal, jobID uint) (*models.Application, error) {
	if err := requireStudent(p); err != nil {
		return nil, err
	}
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return nil, storeError(err, "job")
	}

	log := s.Log.WithFields(logrus.Fields{"student_id": p.StudentID, "job_id": jobID})

	_, err := s.Applications.Find(ctx, p.StudentID, jobID)
	if err == nil {
		observability.ApplicationsSubmitted.WithLabelValues("duplicate").Inc()
		log.Info("duplicate application ignored")
		return nil, apperr.Conflict(msgAlreadyApplied)
	}
	if !stores.IsNotFound(err) {
		return nil, storeError(err, "application")
	}

	app := &models.Application{
		StudentID: p.StudentID,
		JobID:     jobID,
		AppliedOn: s.now().UTC(),
		Status:    models.StatusPending,
	}
	if err := s.Applications.Create(ctx, app); err != nil {
		if stores.IsDuplicate(err) {
			// Lost a race with a concurrent submit; the unique index kept one row.
			observability.ApplicationsSubmitted.WithLabelValues("duplicate").Inc()
			log.Info("duplicate application rejected by unique index")
			return nil, apperr.Conflict(msgAlreadyApplied)
		}
		return nil, storeError(err, "application")
	}

	observability.ApplicationsSubmitted.WithLabelValues("created").Inc()
	log.WithField("application_id", app.ID).Info("application submitted")
	return app, nil
}

// ListForStudent returns the caller's applications, optionally narrowed to one
// status. An empty status means all of them.
func (s *ApplicationService) ListForStudent(ctx context.Context, p *auth.Principal, status string) ([]models.ApplicationDetail, error) {
	if err := requireStudent(p); err != nil {
		return nil, err
	}
	q := stores.ApplicationQuery{StudentID: p.StudentID}
	if strings.TrimSpace(status) != "" {
		parsed, ok := models.ParseApplicationStatus(status)
		if !ok {
			return nil, invalidStatus(status)
		}
		q.Status = parsed
	}
	details, err := s.Applications.List(ctx, q)
	if err != nil {
		return nil, storeError(err, "application")
	}
	return details, nil
}

// UpdateStatus moves an application to any of the known statuses. Unknown
// values are rejected before anything is written.
func (s *ApplicationService) UpdateStatus(ctx context.Context, p *auth.Principal, applicationID uint, raw string) (*models.Application, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	status, ok := models.ParseApplicationStatus(raw)
	if !ok {
		return nil, invalidStatus(raw)
	}
	app, err := s.Applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, storeError(err, "application")
	}
	if err := s.Applications.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, storeError(err, "application")
	}

	observability.ApplicationStatusUpdates.WithLabelValues(string(status)).Inc()
	s.Log.WithFields(logrus.Fields{
		"application_id": applicationID,
		"from":           app.Status,
		"to":             status,
		"admin_id":       p.UserID,
	}).Info("application status changed")

	app.Status = status
	return app, nil
}

// ListForJob returns a job with everyone who applied to it.
func (s *ApplicationService) ListForJob(ctx context.Context, p *auth.Principal, jobID uint) (*models.Job, []models.ApplicationDetail, error) {
	if err := requireAdmin(p); err != nil {
		return nil, nil, err
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, storeError(err, "job")
	}
	details, err := s.Applications.List(ctx, stores.ApplicationQuery{JobID: jobID})
	if err != nil {
		return nil, nil, storeError(err, "application")
	}
	return job, details, nil
}

func (s *ApplicationService) ListAll(ctx context.Context, p *auth.Principal) ([]models.ApplicationDetail, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	details, err := s.Applications.List(ctx, stores.ApplicationQuery{})
	if err != nil {
		return nil, storeError(err, "application")
	}
	return details, nil
}

func invalidStatus(raw string) error {
	return apperr.NewValidation("Unknown application status", map[string]string{
		"status": "Status must be one of pending, accepted or rejected; got " + strings.TrimSpace(raw) + ".",
	})
}
