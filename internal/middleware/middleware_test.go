package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/ratelimit"
)

var tokens = auth.NewJWTService("test-secret", time.Hour)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(tokens))
	r.GET("/student/jobs", RequireStudent(), func(c *gin.Context) { c.String(http.StatusOK, "jobs") })
	r.GET("/admin/dashboard", RequireAdmin(), func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })
	return r
}

func issue(t *testing.T, p auth.Principal) string {
	t.Helper()
	raw, err := tokens.Issue(p)
	require.NoError(t, err)
	return raw
}

func TestGates(t *testing.T) {
	r := newRouter()
	student := issue(t, auth.Principal{UserID: 1, Role: models.RoleStudent, StudentID: 3})
	admin := issue(t, auth.Principal{UserID: 2, Role: models.RoleAdmin})

	tests := []struct {
		name     string
		path     string
		cookie   string
		bearer   string
		status   int
		location string
	}{
		{"anonymous student page redirects", "/student/jobs", "", "", http.StatusSeeOther, "/auth/login"},
		{"admin on student page redirects", "/student/jobs", admin, "", http.StatusSeeOther, "/auth/login"},
		{"student cookie passes", "/student/jobs", student, "", http.StatusOK, ""},
		{"student bearer passes", "/student/jobs", "", student, http.StatusOK, ""},
		{"tampered cookie is anonymous", "/student/jobs", student + "x", "", http.StatusSeeOther, "/auth/login"},
		{"anonymous admin page is forbidden", "/admin/dashboard", "", "", http.StatusForbidden, ""},
		{"student on admin page is forbidden", "/admin/dashboard", student, "", http.StatusForbidden, ""},
		{"admin passes", "/admin/dashboard", admin, "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
			if tt.status == http.StatusForbidden {
				assert.Equal(t, "Access Denied: Admins Only", w.Body.String())
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestLogger(log), Metrics())
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, id, hook.LastEntry().Data["request_id"])
	assert.Equal(t, http.StatusOK, hook.LastEntry().Data["status"])

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/login", RateLimit(ratelimit.NewMemoryLimiter(), "login", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		r.ServeHTTP(last, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "60", last.Header().Get("Retry-After"))
}
