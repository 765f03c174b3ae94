package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/mocks"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/storage"
)

func newStudentService(t *testing.T) (*StudentService, *mocks.StudentStore, *mocks.ResumeStore) {
	t.Helper()
	log, _ := test.NewNullLogger()
	s, _, students, _, _, _ := mocks.NewStores()
	resumes := new(mocks.ResumeStore)
	return NewStudentService(s, resumes, 5<<20, log), students, resumes
}

func TestUploadResumeReplacesPrevious(t *testing.T) {
	svc, students, resumes := newStudentService(t)
	ctx := context.Background()
	body := strings.NewReader("%PDF")

	students.On("GetByID", ctx, uint(1)).Return(&models.Student{ID: 1, Resume: "old.pdf"}, nil)
	resumes.On("Save", ctx, "cv.pdf", body, int64(4)).Return("new.pdf", nil)
	students.On("UpdateResume", ctx, uint(1), "new.pdf").Return(nil)
	resumes.On("Delete", ctx, "old.pdf").Return(nil)

	require.NoError(t, svc.UploadResume(ctx, studentP, "cv.pdf", 4, body))

	students.AssertExpectations(t)
	resumes.AssertExpectations(t)
}

func TestUploadResumeRejectsBadFiles(t *testing.T) {
	svc, _, resumes := newStudentService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		size     int64
	}{
		{"not a pdf", "cv.docx", 10},
		{"empty", "cv.pdf", 0},
		{"too large", "cv.pdf", 5<<20 + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UploadResume(ctx, studentP, tt.filename, tt.size, strings.NewReader(""))
			assert.True(t, apperr.Is(err, apperr.CodeValidation))
			assert.Contains(t, apperr.FieldsOf(err), "resume")
		})
	}
	resumes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadResumeCleansUpWhenRowUpdateFails(t *testing.T) {
	svc, students, resumes := newStudentService(t)
	ctx := context.Background()

	students.On("GetByID", ctx, uint(1)).Return(&models.Student{ID: 1}, nil)
	resumes.On("Save", ctx, "CV.PDF", mock.Anything, int64(4)).Return("new.pdf", nil)
	students.On("UpdateResume", ctx, uint(1), "new.pdf").Return(errors.New("db down"))
	resumes.On("Delete", ctx, "new.pdf").Return(nil)

	err := svc.UploadResume(ctx, studentP, "CV.PDF", 4, strings.NewReader("%PDF"))

	assert.True(t, apperr.Is(err, apperr.CodeInternal))
	resumes.AssertExpectations(t)
}

func TestOpenResumeAccess(t *testing.T) {
	svc, students, resumes := newStudentService(t)
	ctx := context.Background()

	students.On("GetByID", ctx, uint(1)).Return(&models.Student{ID: 1, Name: "Asha Rao", Resume: "k.pdf"}, nil)
	students.On("GetByID", ctx, uint(2)).Return(&models.Student{ID: 2}, nil)
	resumes.On("Open", ctx, "k.pdf").Return(io.NopCloser(strings.NewReader("%PDF")), nil)

	r, err := svc.OpenResume(ctx, studentP, 1)
	require.NoError(t, err)
	assert.Equal(t, "asha_rao_resume.pdf", r.Filename)

	_, err = svc.OpenResume(ctx, adminP, 1)
	require.NoError(t, err)

	_, err = svc.OpenResume(ctx, studentP, 2)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	_, err = svc.OpenResume(ctx, adminP, 2)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound), "no resume uploaded")
}

func TestOpenResumeMissingObject(t *testing.T) {
	svc, students, resumes := newStudentService(t)
	ctx := context.Background()

	students.On("GetByID", ctx, uint(1)).Return(&models.Student{ID: 1, Resume: "gone.pdf"}, nil)
	resumes.On("Open", ctx, "gone.pdf").Return(nil, storage.ErrObjectNotFound)

	_, err := svc.OpenResume(ctx, studentP, 1)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestUpdateProfile(t *testing.T) {
	svc, students, _ := newStudentService(t)
	ctx := context.Background()

	students.On("UpdateProfile", ctx, mock.MatchedBy(func(s *models.Student) bool {
		return s.ID == 1 && s.Name == "Asha" && s.CGPA != nil && *s.CGPA == 8.5
	})).Return(nil)

	require.NoError(t, svc.UpdateProfile(ctx, studentP, &dtos.ProfileRequest{Name: " Asha ", CGPA: "8.5"}))

	err := svc.UpdateProfile(ctx, studentP, &dtos.ProfileRequest{Name: "Asha", CGPA: "11"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	err = svc.UpdateProfile(ctx, &auth.Principal{Role: models.RoleAdmin}, &dtos.ProfileRequest{})
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))
	students.AssertNumberOfCalls(t, "UpdateProfile", 1)
}
