// Package router wires handlers and middleware into the gin engine.
package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/handlers"
	"github.com/justsurfingit/job-board/internal/middleware"
	"github.com/justsurfingit/job-board/internal/ratelimit"
	"github.com/justsurfingit/job-board/internal/services"
	"github.com/justsurfingit/job-board/internal/views"
)

// Login attempts allowed per client IP and window.
const (
	loginLimit  = 10
	loginWindow = time.Minute
)

// Deps is everything the routes need. LLM may be nil.
type Deps struct {
	Log            logrus.FieldLogger
	Tokens         auth.TokenService
	Limiter        ratelimit.Limiter
	AllowedOrigins []string
	TrustedProxies []string
	CookieSecure   bool

	Auth         *services.AuthService
	Jobs         *services.JobService
	Applications *services.ApplicationService
	Students     *services.StudentService
	Categories   *services.CategoryService
	Exports      *services.ExportService
	Search       *services.SearchService
	Stats        *services.StatsService
	LLM          *services.LLMService
}

func New(d Deps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		dtos.UseFormTagNames(v)
	}

	r := gin.New()
	// Client IPs key the login limit, so forwarding headers count only from
	// listed proxies. No proxies means RemoteAddr is used as is.
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		d.Log.WithError(err).Warn("ignoring trusted proxies")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log), middleware.Metrics())

	config := cors.DefaultConfig()
	if len(d.AllowedOrigins) == 0 || slices.Contains(d.AllowedOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = d.AllowedOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = !config.AllowAllOrigins
	r.Use(cors.New(config))

	r.Use(middleware.Authenticate(d.Tokens))
	r.SetHTMLTemplate(views.MustTemplates())
	r.NoRoute(handlers.NotFound)

	home := handlers.NewHomeHandler(d.Stats)
	authH := handlers.NewAuthHandler(d.Auth, d.CookieSecure)
	student := handlers.NewStudentHandler(d.Jobs, d.Applications, d.Students)
	jobs := handlers.NewJobHandler(d.LLM, d.Jobs)
	admin := &handlers.AdminHandler{
		ApplicationService: d.Applications,
		StudentService:     d.Students,
		CategoryService:    d.Categories,
		ExportService:      d.Exports,
		SearchService:      d.Search,
		StatsService:       d.Stats,
	}

	r.GET("/", home.Home)
	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a := r.Group("/auth")
	{
		a.GET("/register", authH.ShowRegister)
		a.POST("/register", authH.Register)
		a.GET("/login", authH.ShowLogin)
		a.POST("/login", middleware.RateLimit(d.Limiter, "login", loginLimit, loginWindow), authH.Login)
		a.GET("/logout", authH.Logout)
	}

	s := r.Group("/student", middleware.RequireStudent())
	{
		s.GET("/dashboard", student.Dashboard)
		s.GET("/jobs", student.Jobs)
		s.GET("/jobs/filter-json", student.FilterJSON)
		s.GET("/job/:job_id", student.JobDetail)
		s.POST("/apply/:job_id", student.Apply)
		s.GET("/applications", student.Applications)
		s.GET("/applications/status/:status", student.ApplicationsByStatus)
		s.GET("/profile/edit", student.ShowProfile)
		s.POST("/profile/edit", student.UpdateProfile)
		s.GET("/resume/upload", student.ShowResumeUpload)
		s.POST("/resume/upload", student.UploadResume)
		s.GET("/resume/view", student.ViewResume)
	}

	ad := r.Group("/admin", middleware.RequireAdmin())
	{
		ad.GET("/dashboard", admin.Dashboard)
		ad.GET("/analytics", admin.Analytics)
		ad.GET("/search", admin.Search)

		ad.GET("/jobs", jobs.ListJobs)
		ad.GET("/jobs/create", jobs.ShowCreate)
		ad.POST("/jobs/create", jobs.CreateJob)
		ad.GET("/jobs/edit/:job_id", jobs.ShowEdit)
		ad.POST("/jobs/edit/:job_id", jobs.UpdateJob)
		ad.POST("/jobs/delete/:job_id", jobs.DeleteJob)
		ad.POST("/jobs/extract", jobs.ParseJob)

		ad.GET("/applications", admin.AllApplications)
		ad.POST("/applications/update/:application_id", admin.UpdateStatus)
		ad.GET("/applicants/:job_id", admin.Applicants)
		ad.GET("/applicants/download/all", admin.DownloadAllApplicants)
		ad.GET("/applicants/download/:job_id", admin.DownloadApplicants)

		ad.GET("/students", admin.Students)
		ad.GET("/students/:student_id", admin.StudentDetail)
		ad.GET("/students/:student_id/resume", admin.DownloadResume)
		ad.GET("/resume/view/:student_id", admin.ViewResume)

		ad.GET("/categories", admin.Categories)
		ad.POST("/categories/add", admin.AddCategory)
		ad.POST("/categories/edit/:id", admin.EditCategory)
		ad.POST("/categories/delete/:id", admin.DeleteCategory)
	}

	return r
}
