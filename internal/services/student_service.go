package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/storage"
	"github.com/justsurfingit/job-board/internal/stores"
)

type StudentService struct {
	Students       stores.StudentStore
	Resumes        storage.ResumeStore
	MaxResumeBytes int64
	Log            logrus.FieldLogger
}

func NewStudentService(s *stores.Stores, resumes storage.ResumeStore, maxResumeBytes int64, log logrus.FieldLogger) *StudentService {
	return &StudentService{
		Students:       s.Students,
		Resumes:        resumes,
		MaxResumeBytes: maxResumeBytes,
		Log:            log,
	}
}

// Resume is an opened resume ready to stream.
type Resume struct {
	io.ReadCloser
	Filename string
}

func (s *StudentService) Profile(ctx context.Context, p *auth.Principal) (*models.StudentAccount, error) {
	if err := requireStudent(p); err != nil {
		return nil, err
	}
	acc, err := s.Students.GetAccount(ctx, p.StudentID)
	if err != nil {
		return nil, storeError(err, "student")
	}
	return acc, nil
}

func (s *StudentService) UpdateProfile(ctx context.Context, p *auth.Principal, req *dtos.ProfileRequest) error {
	if err := requireStudent(p); err != nil {
		return err
	}
	st := &models.Student{
		ID:         p.StudentID,
		Name:       strings.TrimSpace(req.Name),
		GithubID:   strings.TrimSpace(req.GithubID),
		LinkedinID: strings.TrimSpace(req.LinkedinID),
		Experience: strings.TrimSpace(req.Experience),
		Portfolio:  strings.TrimSpace(req.Portfolio),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
	}
	if raw := strings.TrimSpace(req.CGPA); raw != "" {
		cgpa, err := strconv.ParseFloat(raw, 64)
		if err != nil || cgpa < 0 || cgpa > 10 {
			return apperr.NewValidation("Please correct the highlighted fields", map[string]string{
				"cgpa": "CGPA must be between 0 and 10.",
			})
		}
		st.CGPA = &cgpa
	}
	if err := s.Students.UpdateProfile(ctx, st); err != nil {
		return storeError(err, "student")
	}
	return nil
}

// UploadResume stores a PDF and points the profile at it. The file is written
// before the row is touched, and the previous file is removed afterwards.
func (s *StudentService) UploadResume(ctx context.Context, p *auth.Principal, filename string, size int64, r io.Reader) error {
	if err := requireStudent(p); err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return resumeInvalid("Only PDF files are allowed.")
	}
	if size <= 0 {
		return resumeInvalid("The file is empty.")
	}
	if s.MaxResumeBytes > 0 && size > s.MaxResumeBytes {
		return resumeInvalid(fmt.Sprintf("The file must be at most %d MB.", s.MaxResumeBytes>>20))
	}

	current, err := s.Students.GetByID(ctx, p.StudentID)
	if err != nil {
		return storeError(err, "student")
	}

	key, err := s.Resumes.Save(ctx, filename, r, size)
	if err != nil {
		return apperr.Internal("could not store resume", err)
	}
	if err := s.Students.UpdateResume(ctx, p.StudentID, key); err != nil {
		if delErr := s.Resumes.Delete(ctx, key); delErr != nil {
			s.Log.WithError(delErr).WithField("key", key).Warn("failed to remove orphaned resume")
		}
		return storeError(err, "student")
	}

	if current.Resume != "" {
		if err := s.Resumes.Delete(ctx, current.Resume); err != nil {
			s.Log.WithError(err).WithField("key", current.Resume).Warn("failed to remove replaced resume")
		}
	}
	s.Log.WithField("student_id", p.StudentID).Info("resume uploaded")
	return nil
}

// OpenResume opens a student's resume. Students may only open their own;
// admins may open anyone's.
func (s *StudentService) OpenResume(ctx context.Context, p *auth.Principal, studentID uint) (*Resume, error) {
	switch {
	case p.IsAdmin():
	case p.IsStudent() && p.StudentID == studentID:
	default:
		return nil, apperr.Forbidden("You may only view your own resume")
	}

	st, err := s.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, storeError(err, "student")
	}
	if st.Resume == "" {
		return nil, apperr.NotFound("No resume uploaded")
	}
	rc, err := s.Resumes.Open(ctx, st.Resume)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, apperr.NotFound("Resume file is missing")
		}
		return nil, apperr.Internal("could not open resume", err)
	}
	return &Resume{ReadCloser: rc, Filename: resumeFilename(st)}, nil
}

func (s *StudentService) ListStudents(ctx context.Context, p *auth.Principal) ([]models.StudentAccount, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	accounts, err := s.Students.ListAccounts(ctx)
	if err != nil {
		return nil, storeError(err, "student")
	}
	return accounts, nil
}

func (s *StudentService) GetStudent(ctx context.Context, p *auth.Principal, id uint) (*models.StudentAccount, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	acc, err := s.Students.GetAccount(ctx, id)
	if err != nil {
		return nil, storeError(err, "student")
	}
	return acc, nil
}

func resumeInvalid(msg string) error {
	return apperr.NewValidation("Resume rejected", map[string]string{"resume": msg})
}

// resumeFilename builds a download name such as "asha_rao_resume.pdf".
func resumeFilename(st *models.Student) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(st.Name))
	if name == "" {
		name = "student_" + strconv.FormatUint(uint64(st.ID), 10)
	}
	return strings.ToLower(name) + "_resume.pdf"
}
