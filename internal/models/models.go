package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
}

type Student struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// One student profile per user.
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Name       string   `gorm:"size:100;not null" json:"name"`
	Resume     string   `gorm:"size:255" json:"resume,omitempty"`
	GithubID   string   `gorm:"size:100" json:"github_id,omitempty"`
	LinkedinID string   `gorm:"size:100" json:"linkedin_id,omitempty"`
	CGPA       *float64 `json:"cgpa,omitempty"`
	Experience string   `gorm:"type:text" json:"experience,omitempty"`
	Portfolio  string   `gorm:"size:150" json:"portfolio,omitempty"`
	Phone      string   `gorm:"size:20" json:"phone,omitempty"`
	Address    string   `gorm:"size:250" json:"address,omitempty"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

type Job struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title           string `gorm:"size:100;not null" json:"title"`
	Company         string `gorm:"size:100;not null" json:"company"`
	Location        string `gorm:"size:100;not null" json:"location"`
	Description     string `gorm:"type:text;not null" json:"description"`
	JobType         string `gorm:"size:50" json:"job_type"`
	ExperienceLevel string `gorm:"size:50" json:"experience_level"`
	MinSalary       *int   `json:"min_salary,omitempty"`
	MaxSalary       *int   `json:"max_salary,omitempty"`

	// Optional; cleared when the category is deleted.
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	// Free-text comma list, e.g. "Python,Remote,Internship".
	Tags     string    `gorm:"size:255" json:"tags"`
	PostedOn time.Time `gorm:"index;not null" json:"posted_on"`
}

// TagList splits the comma separated tags, dropping blanks.
func (j Job) TagList() []string {
	var out []string
	for _, tag := range strings.Split(j.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists the closed set of status values in display order.
var ApplicationStatuses = []ApplicationStatus{StatusPending, StatusAccepted, StatusRejected}

// ParseApplicationStatus normalizes raw input and reports whether it names a known status.
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	status := ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range ApplicationStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

type Application struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudentID uint    `gorm:"not null;uniqueIndex:idx_applications_student_job" json:"student_id"`
	Student   Student `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	JobID     uint    `gorm:"not null;uniqueIndex:idx_applications_student_job;index" json:"job_id"`
	Job       Job     `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	AppliedOn time.Time         `gorm:"not null" json:"applied_on"`
	Status    ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

// ApplicationDetail is an application joined with the job and student columns
// the list views and exports need.
type ApplicationDetail struct {
	ID        uint              `json:"id"`
	StudentID uint              `json:"student_id"`
	JobID     uint              `json:"job_id"`
	AppliedOn time.Time         `json:"applied_on"`
	Status    ApplicationStatus `json:"status"`

	JobTitle      string `json:"job_title"`
	JobCompany    string `json:"job_company"`
	JobLocation   string `json:"job_location"`
	StudentName   string `json:"student_name"`
	StudentEmail  string `json:"student_email"`
	StudentResume string `json:"student_resume"`
}

// CategoryStat is a category with the number of jobs filed under it.
type CategoryStat struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	JobCount int64  `json:"job_count"`
}

// StudentAccount is a student profile joined with its login email.
type StudentAccount struct {
	Student
	Email string `json:"email"`
}
