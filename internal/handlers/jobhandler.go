package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

// JobHandler serves the admin job pages. LLMService may be nil, which turns
// the draft extractor off.
type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(llm *services.LLMService, j *services.JobService) *JobHandler {
	return &JobHandler{LLMService: llm,
		JobService: j,
	}
}

// ParseJob is the POST /admin/jobs/extract endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	if h.LLMService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI extraction is not configured"})
		return
	}
	var req dtos.JobExtractionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	draft, err := h.LLMService.ExtractJobDraft(c.Request.Context(), req.RawText)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    draft,
	})
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListJobs(c.Request.Context(), principal(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "admin/jobs", gin.H{"Jobs": jobs})
}

func (h *JobHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, 0, dtos.JobRequest{}, nil)
}

// CreateJob handles the create form
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, 0, req, dtos.FieldErrors(err))
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), principal(c), &req)
	if err != nil {
		h.formError(c, 0, req, err)
		return
	}
	addFlash(c, "success", "Job \""+job.Title+"\" posted successfully.")
	redirect(c, "/admin/jobs")
}

func (h *JobHandler) ShowEdit(c *gin.Context) {
	id, err := idParam(c, "job_id")
	if err != nil {
		renderError(c, err)
		return
	}
	job, err := h.JobService.GetJob(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	h.renderForm(c, http.StatusOK, id, dtos.FromJob(job), nil)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, err := idParam(c, "job_id")
	if err != nil {
		renderError(c, err)
		return
	}
	var req dtos.JobRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, http.StatusUnprocessableEntity, id, req, dtos.FieldErrors(err))
		return
	}
	if _, err := h.JobService.UpdateJob(c.Request.Context(), principal(c), id, &req); err != nil {
		h.formError(c, id, req, err)
		return
	}
	addFlash(c, "success", "Job updated successfully.")
	redirect(c, "/admin/jobs")
}

// DeleteJob removes the job and its applications.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, err := idParam(c, "job_id")
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.JobService.DeleteJob(c.Request.Context(), principal(c), id); err != nil {
		renderError(c, err)
		return
	}
	addFlash(c, "success", "Job deleted successfully.")
	redirect(c, "/admin/jobs")
}

func (h *JobHandler) formError(c *gin.Context, id uint, req dtos.JobRequest, err error) {
	if apperr.Is(err, apperr.CodeValidation) {
		h.renderForm(c, http.StatusUnprocessableEntity, id, req, apperr.FieldsOf(err))
		return
	}
	renderError(c, err)
}

func (h *JobHandler) renderForm(c *gin.Context, status int, id uint, req dtos.JobRequest, errs map[string]string) {
	options, err := h.JobService.FilterOptions(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, status, "admin/job_form", gin.H{
		"JobID":      id,
		"Form":       req,
		"Errors":     errs,
		"Categories": options.Categories,
		"AIEnabled":  h.LLMService != nil,
	})
}
