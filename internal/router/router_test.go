package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/jobfilter"
	"github.com/justsurfingit/job-board/internal/middleware"
	"github.com/justsurfingit/job-board/internal/mocks"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/ratelimit"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/stores"
)

type fixture struct {
	engine       *gin.Engine
	tokens       *auth.JWTService
	jobs         *mocks.JobStore
	applications *mocks.ApplicationStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithProxies(t, nil)
}

func newFixtureWithProxies(t *testing.T, proxies []string) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()
	st, _, _, _, j, a := mocks.NewStores()
	tokens := auth.NewJWTService("router-test-secret", time.Hour)

	applications := services.NewApplicationService(st, log)
	engine := New(Deps{
		Log:            log,
		Tokens:         tokens,
		Limiter:        ratelimit.NewMemoryLimiter(),
		TrustedProxies: proxies,
		Auth:           services.NewAuthService(st, auth.BcryptHasher{}, tokens, log),
		Jobs:           services.NewJobService(st, log),
		Applications:   applications,
		Students:       services.NewStudentService(st, new(mocks.ResumeStore), 5<<20, log),
		Categories:     services.NewCategoryService(st, log),
		Exports:        services.NewExportService(applications),
		Search:         services.NewSearchService(st),
		Stats:          services.NewStatsService(st),
	})
	return &fixture{engine: engine, tokens: tokens, jobs: j, applications: a}
}

func (f *fixture) do(t *testing.T, req *http.Request, p *auth.Principal) *httptest.ResponseRecorder {
	t.Helper()
	if p != nil {
		raw, err := f.tokens.Issue(*p)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: raw})
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

var (
	student = &auth.Principal{UserID: 10, Role: models.RoleStudent, StudentID: 1, Email: "s@campus.edu"}
	admin   = &auth.Principal{UserID: 1, Role: models.RoleAdmin, Email: "admin@campus.edu"}
)

func TestHealthAndNotFound(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = f.do(t, httptest.NewRequest(http.MethodGet, "/nowhere", nil), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestGates(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/student/jobs", nil), nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	w = f.do(t, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil), student)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access Denied: Admins Only", w.Body.String())
}

func TestApplySuccessRedirectsToApplications(t *testing.T) {
	f := newFixture(t)
	f.jobs.On("GetByID", mock.Anything, uint(5)).Return(&models.Job{ID: 5}, nil)
	f.applications.On("Find", mock.Anything, uint(1), uint(5)).Return(nil, stores.ErrNotFound)
	f.applications.On("Create", mock.Anything, mock.AnythingOfType("*models.Application")).Return(nil)

	w := f.do(t, httptest.NewRequest(http.MethodPost, "/student/apply/5", nil), student)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/student/applications", w.Header().Get("Location"))
	f.applications.AssertExpectations(t)
}

func TestApplyTwiceWarnsAndRedirects(t *testing.T) {
	f := newFixture(t)
	f.jobs.On("GetByID", mock.Anything, uint(5)).Return(&models.Job{ID: 5}, nil)
	f.applications.On("Find", mock.Anything, uint(1), uint(5)).
		Return(&models.Application{ID: 3, StudentID: 1, JobID: 5, Status: models.StatusPending}, nil)

	w := f.do(t, httptest.NewRequest(http.MethodPost, "/student/apply/5", nil), student)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/student/jobs", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "jobboard_flash=")
	f.applications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFilterJSON(t *testing.T) {
	f := newFixture(t)
	f.jobs.On("Search", mock.Anything, mock.MatchedBy(func(flt jobfilter.Filter) bool {
		return flt.MinSalary != nil && *flt.MinSalary == 40000 && len(flt.Locations) == 2
	})).Return([]models.Job{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/student/jobs/filter-json?min_salary=40000&location=Pune&location=Remote", nil)
	w := f.do(t, req, student)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	f.applications.On("GetByID", mock.Anything, uint(4)).
		Return(&models.Application{ID: 4, Status: models.StatusPending}, nil)
	f.applications.On("UpdateStatus", mock.Anything, uint(4), models.StatusAccepted).Return(nil)

	w := f.do(t, postForm("/admin/applications/update/4", url.Values{"status": {"accepted"}, "job_id": {"7"}}), admin)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/applicants/7", w.Header().Get("Location"))
	f.applications.AssertExpectations(t)
}

func TestUpdateStatusUnknownValueWritesNothing(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, postForm("/admin/applications/update/4", url.Values{"status": {"archived"}}), admin)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/applications", w.Header().Get("Location"))
	f.applications.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestDownloadAllApplicants(t *testing.T) {
	f := newFixture(t)
	f.applications.On("List", mock.Anything, stores.ApplicationQuery{}).Return([]models.ApplicationDetail{{
		ID: 1, JobTitle: "Backend Intern", StudentName: "Asha", StudentEmail: "asha@campus.edu",
		Status: models.StatusPending, AppliedOn: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}}, nil)

	w := f.do(t, httptest.NewRequest(http.MethodGet, "/admin/applicants/download/all", nil), admin)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestExtractWithoutModel(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/admin/jobs/extract", strings.NewReader(`{"raw_text":"Hiring"}`))
	req.Header.Set("Content-Type", "application/json")

	w := f.do(t, req, admin)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < loginLimit; i++ {
		w := f.do(t, postForm("/auth/login", url.Values{}), nil)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	}
	w := f.do(t, postForm("/auth/login", url.Values{}), nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func loginFrom(remoteAddr, forwardedFor string) *http.Request {
	req := postForm("/auth/login", url.Values{})
	req.RemoteAddr = remoteAddr
	req.Header.Set("X-Forwarded-For", forwardedFor)
	return req
}

func TestLoginLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < loginLimit; i++ {
		w := f.do(t, loginFrom("203.0.113.9:4000", fmt.Sprintf("10.0.0.%d", i)), nil)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	}
	w := f.do(t, loginFrom("203.0.113.9:4000", "10.0.0.250"), nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestLoginLimitUsesForwardedForFromTrustedProxy(t *testing.T) {
	f := newFixtureWithProxies(t, []string{"203.0.113.0/24"})
	for i := 0; i < loginLimit+5; i++ {
		w := f.do(t, loginFrom("203.0.113.9:4000", fmt.Sprintf("198.51.100.%d", i)), nil)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	}
}
