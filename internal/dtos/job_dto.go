package dtos

import (
	"strconv"
	"time"

	"github.com/justsurfingit/job-board/internal/models"
)

// JobExtractionRequest carries pasted posting text for the draft extractor.
type JobExtractionRequest struct {
	RawText string `json:"raw_text" form:"raw_text" binding:"required"`
	URL     string `json:"url" form:"url"`
}

// JobDraft is what the extractor could read out of a posting. Missing values stay empty.
type JobDraft struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	JobType         string   `json:"job_type"`
	ExperienceLevel string   `json:"experience_level"`
	MinSalary       *int     `json:"min_salary"`
	MaxSalary       *int     `json:"max_salary"`
	Tags            []string `json:"tags"`
}

// JobRequest is the admin create/edit form.
type JobRequest struct {
	Title           string `form:"title" json:"title" binding:"required,max=100"`
	Company         string `form:"company" json:"company" binding:"required,max=100"`
	Location        string `form:"location" json:"location" binding:"required,max=100"`
	Description     string `form:"description" json:"description" binding:"required"`
	JobType         string `form:"job_type" json:"job_type" binding:"max=50"`
	ExperienceLevel string `form:"experience_level" json:"experience_level" binding:"max=50"`

	// Optional Fields, kept as text so a blank input stays distinguishable from zero.
	MinSalary  string `form:"min_salary" json:"min_salary" binding:"omitempty,number,max=10"`
	MaxSalary  string `form:"max_salary" json:"max_salary" binding:"omitempty,number,max=10"`
	CategoryID string `form:"category_id" json:"category_id" binding:"omitempty,number"`
	Tags       string `form:"tags" json:"tags" binding:"max=255"`
}

// FromJob fills the form for editing.
func FromJob(j *models.Job) JobRequest {
	req := JobRequest{
		Title:           j.Title,
		Company:         j.Company,
		Location:        j.Location,
		Description:     j.Description,
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		MinSalary:       formatOptional(j.MinSalary),
		MaxSalary:       formatOptional(j.MaxSalary),
		Tags:            j.Tags,
	}
	if j.CategoryID != nil {
		req.CategoryID = strconv.FormatUint(uint64(*j.CategoryID), 10)
	}
	return req
}

func formatOptional(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// JobSummary is one entry of the JSON filter endpoint.
type JobSummary struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	Type       string `json:"type"`
	Experience string `json:"experience"`
	Salary     *int   `json:"salary"`
	PostedOn   string `json:"posted_on"`
}

func NewJobSummary(j models.Job) JobSummary {
	return JobSummary{
		ID:         j.ID,
		Title:      j.Title,
		Company:    j.Company,
		Location:   j.Location,
		Type:       j.JobType,
		Experience: j.ExperienceLevel,
		Salary:     j.MinSalary,
		PostedOn:   j.PostedOn.Format(time.DateOnly),
	}
}
