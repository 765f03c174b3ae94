package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
)

// AdminHandler serves the pages behind the admin gate other than job editing.
type AdminHandler struct {
	ApplicationService *services.ApplicationService
	StudentService     *services.StudentService
	CategoryService    *services.CategoryService
	ExportService      *services.ExportService
	SearchService      *services.SearchService
	StatsService       *services.StatsService
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts, err := h.StatsService.Counts(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "admin/dashboard", gin.H{"Counts": counts})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	analytics, err := h.StatsService.Analytics(c.Request.Context(), principal(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "admin/analytics", gin.H{"Analytics": analytics})
}

// Applicants lists everyone who applied to one job.
func (h *AdminHandler) Applicants(c *gin.Context) {
	id, err := idParam(c, "job_id")
	if err != nil {
		renderError(c, err)
		return
	}
	job, details, err := h.ApplicationService.ListForJob(c.Request.Context(), principal(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "admin/applicants", gin.H{
		"Job":          job,
		"Applications": details,
		"Statuses":     models.ApplicationStatuses,
	})
}

func (h *AdminHandler) AllApplications(c *gin.Context) {
	details, err := h.ApplicationService.ListAll(c.Request.Context(), principal(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "admin/applications", gin.H{
		"Applications": details,
		"Statuses":     models.ApplicationStatuses,
	})
}

// UpdateStatus handles the status select on the applicant lists and returns
// to the page it came from.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := idParam(c, "application_id")
	if err != nil {
		renderError(c, err)
		return
	}
	back := backTo(c, "/admin/applications")

	var req dtos.StatusUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		addFlash(c, "danger", "Choose a status.")
		redirect(c, back)
		return
	}
	app, err := h.ApplicationService.UpdateStatus(c.Request.Context(), principal(c), id, req.Status)
	switch {
	case err == nil:
		addFlash(c, "success", "Application marked as "+string(app.Status)+".")
		redirect(c, back)
	case apperr.Is(err, apperr.CodeValidation):
		addFlash(c, "danger", apperr.FieldsOf(err)["status"])
		redirect(c, back)
	default:
		renderError(c, err)
	}
}

func (h *AdminHandler) DownloadApplicants(c *gin.Context) {
	id, err := idParam(c, "job_id")
	if err != nil {
		renderError(c, err)
		return
	}
	export, err := h.ExportService.JobApplicants(c.Request.Context(), principal(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	sendExport(c, export)
}

func (h *AdminHandler) DownloadAllApplicants(c *gin.Context) {
	export, err := h.ExportService.AllApplicants(c.Request.Context(), principal(c))
	if err != nil {
		renderError(c, err)
		return
	}
	sendExport(c, export)
}

func sendExport(c *gin.Context, export *services.Export) {
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, services.XLSXContentType, export.Data)
}

func (h *AdminHandler) Students(c *gin.Context) {
	accounts, err := h.StudentService.ListStudents(c.Request.Context(), principal(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "admin/students", gin.H{"Students": accounts})
}

func (h *AdminHandler) StudentDetail(c *gin.Context) {
	id, err := idParam(c, "student_id")
	if err != nil {
		renderError(c, err)
		return
	}
	acc, err := h.StudentService.GetStudent(c.Request.Context(), principal(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "admin/student_detail", gin.H{"Student": acc})
}

func (h *AdminHandler) DownloadResume(c *gin.Context) {
	id, err := idParam(c, "student_id")
	if err != nil {
		renderError(c, err)
		return
	}
	streamResume(c, h.StudentService, id, true)
}

func (h *AdminHandler) ViewResume(c *gin.Context) {
	id, err := idParam(c, "student_id")
	if err != nil {
		renderError(c, err)
		return
	}
	streamResume(c, h.StudentService, id, false)
}

func (h *AdminHandler) Search(c *gin.Context) {
	results, err := h.SearchService.Search(c.Request.Context(), principal(c), c.Query("q"))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "admin/search", gin.H{"Results": results})
}

func (h *AdminHandler) Categories(c *gin.Context) {
	categories, err := h.CategoryService.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "admin/categories", gin.H{"Categories": categories})
}

func (h *AdminHandler) AddCategory(c *gin.Context) {
	var req dtos.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		addFlash(c, "danger", "Category name is required.")
		redirect(c, "/admin/categories")
		return
	}
	_, err := h.CategoryService.Create(c.Request.Context(), principal(c), req.Name)
	h.categoryResult(c, err, "Category added successfully.")
}

func (h *AdminHandler) EditCategory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}
	var req dtos.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		addFlash(c, "danger", "Category name is required.")
		redirect(c, "/admin/categories")
		return
	}
	err = h.CategoryService.Rename(c.Request.Context(), principal(c), id, req.Name)
	h.categoryResult(c, err, "Category updated successfully.")
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}
	err = h.CategoryService.Delete(c.Request.Context(), principal(c), id)
	h.categoryResult(c, err, "Category deleted successfully.")
}

// categoryResult turns a category change into a notice on the category page.
func (h *AdminHandler) categoryResult(c *gin.Context, err error, success string) {
	switch {
	case err == nil:
		addFlash(c, "success", success)
	case apperr.Is(err, apperr.CodeConflict):
		addFlash(c, "warning", apperr.MessageOf(err))
	case apperr.Is(err, apperr.CodeValidation), apperr.Is(err, apperr.CodeNotFound):
		addFlash(c, "danger", apperr.MessageOf(err))
	default:
		renderError(c, err)
		return
	}
	redirect(c, "/admin/categories")
}

// backTo returns the applicant page named by the job_id form field, or fallback.
func backTo(c *gin.Context, fallback string) string {
	if jobID, err := strconv.ParseUint(c.PostForm("job_id"), 10, 64); err == nil && jobID > 0 {
		return "/admin/applicants/" + strconv.FormatUint(jobID, 10)
	}
	return fallback
}
