package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/jobfilter"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/services"
)

// StudentHandler serves the pages behind the student gate.
type StudentHandler struct {
	JobService         *services.JobService
	ApplicationService *services.ApplicationService
	StudentService     *services.StudentService
}

func NewStudentHandler(j *services.JobService, a *services.ApplicationService, s *services.StudentService) *StudentHandler {
	return &StudentHandler{JobService: j, ApplicationService: a, StudentService: s}
}

// Dashboard is the filtered job listing with the filter form.
func (h *StudentHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	filter := jobfilter.FromValues(c.Request.URL.Query())

	listings, err := h.JobService.Listings(ctx, principal(c), filter)
	if err != nil {
		renderError(c, err)
		return
	}
	options, err := h.JobService.FilterOptions(ctx)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "student/dashboard", gin.H{
		"Jobs":     listings,
		"Filter":   filter,
		"Options":  options,
		"Filtered": !filter.IsEmpty(),
	})
}

// Jobs lists every job with the applied flag.
func (h *StudentHandler) Jobs(c *gin.Context) {
	listings, err := h.JobService.Listings(c.Request.Context(), principal(c), jobfilter.Filter{})
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "student/jobs", gin.H{"Jobs": listings})
}

// FilterJSON is the JSON flavour of the dashboard filter. Facets may repeat.
func (h *StudentHandler) FilterJSON(c *gin.Context) {
	summaries, err := h.JobService.Summaries(c.Request.Context(), jobfilter.FromValues(c.Request.URL.Query()))
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *StudentHandler) JobDetail(c *gin.Context) {
	id, err := idParam(c, "job_id")
	if err != nil {
		renderError(c, err)
		return
	}
	listing, err := h.JobService.JobDetail(c.Request.Context(), principal(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "student/job_detail", gin.H{"Job": listing})
}

// Apply submits an application. A repeat is a warning, not an error page.
func (h *StudentHandler) Apply(c *gin.Context) {
	id, err := idParam(c, "job_id")
	if err != nil {
		renderError(c, err)
		return
	}
	_, err = h.ApplicationService.Apply(c.Request.Context(), principal(c), id)
	switch {
	case err == nil:
		addFlash(c, "success", "Application submitted successfully.")
		redirect(c, "/student/applications")
	case apperr.Is(err, apperr.CodeConflict):
		addFlash(c, "warning", apperr.MessageOf(err))
		redirect(c, "/student/jobs")
	default:
		renderError(c, err)
	}
}

func (h *StudentHandler) Applications(c *gin.Context) {
	h.applications(c, "")
}

func (h *StudentHandler) ApplicationsByStatus(c *gin.Context) {
	h.applications(c, c.Param("status"))
}

func (h *StudentHandler) applications(c *gin.Context, status string) {
	details, err := h.ApplicationService.ListForStudent(c.Request.Context(), principal(c), status)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "student/applications", gin.H{
		"Applications": details,
		"Status":       status,
		"Statuses":     models.ApplicationStatuses,
	})
}

func (h *StudentHandler) ShowProfile(c *gin.Context) {
	acc, err := h.StudentService.Profile(c.Request.Context(), principal(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "student/profile_edit", gin.H{
		"Account": acc,
		"Form":    dtos.FromStudent(&acc.Student),
	})
}

func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	var req dtos.ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusUnprocessableEntity, "student/profile_edit", gin.H{
			"Form":   req,
			"Errors": dtos.FieldErrors(err),
		})
		return
	}
	if err := h.StudentService.UpdateProfile(c.Request.Context(), principal(c), &req); err != nil {
		if apperr.Is(err, apperr.CodeValidation) {
			render(c, http.StatusUnprocessableEntity, "student/profile_edit", gin.H{
				"Form":   req,
				"Errors": apperr.FieldsOf(err),
			})
			return
		}
		renderError(c, err)
		return
	}
	addFlash(c, "success", "Profile updated successfully.")
	redirect(c, "/student/dashboard")
}

func (h *StudentHandler) ShowResumeUpload(c *gin.Context) {
	acc, err := h.StudentService.Profile(c.Request.Context(), principal(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "student/resume_upload", gin.H{"Account": acc})
}

func (h *StudentHandler) UploadResume(c *gin.Context) {
	header, err := c.FormFile("resume")
	if err != nil {
		render(c, http.StatusUnprocessableEntity, "student/resume_upload", gin.H{
			"Errors": map[string]string{"resume": "Choose a PDF file to upload."},
		})
		return
	}
	file, err := header.Open()
	if err != nil {
		renderError(c, apperr.Internal("could not read upload", err))
		return
	}
	defer file.Close()

	err = h.StudentService.UploadResume(c.Request.Context(), principal(c), header.Filename, header.Size, file)
	if err != nil {
		if apperr.Is(err, apperr.CodeValidation) {
			render(c, http.StatusUnprocessableEntity, "student/resume_upload", gin.H{"Errors": apperr.FieldsOf(err)})
			return
		}
		renderError(c, err)
		return
	}
	addFlash(c, "success", "Resume uploaded successfully.")
	redirect(c, "/student/dashboard")
}

// ViewResume streams the student's own resume inline.
func (h *StudentHandler) ViewResume(c *gin.Context) {
	p := principal(c)
	streamResume(c, h.StudentService, p.StudentID, false)
}

// streamResume writes a resume inline or as an attachment.
func streamResume(c *gin.Context, svc *services.StudentService, studentID uint, attachment bool) {
	resume, err := svc.OpenResume(c.Request.Context(), principal(c), studentID)
	if err != nil {
		renderError(c, err)
		return
	}
	defer resume.Close()

	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+resume.Filename+`"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, resume); err != nil {
		_ = c.Error(err)
	}
}
