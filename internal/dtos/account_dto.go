package dtos

import (
	"strconv"

	"github.com/justsurfingit/job-board/internal/models"
)

type RegisterRequest struct {
	Name            string `form:"name" binding:"required,min=2,max=100"`
	Email           string `form:"email" binding:"required,email,max=120"`
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type ProfileRequest struct {
	Name       string `form:"name" binding:"required,min=2,max=100"`
	GithubID   string `form:"github_id" binding:"max=100"`
	LinkedinID string `form:"linkedin_id" binding:"max=100"`
	CGPA       string `form:"cgpa" binding:"omitempty,numeric"`
	Experience string `form:"experience"`
	Portfolio  string `form:"portfolio" binding:"omitempty,url,max=150"`
	Phone      string `form:"phone" binding:"max=20"`
	Address    string `form:"address" binding:"max=250"`
}

type CategoryRequest struct {
	Name string `form:"name" binding:"required,max=100"`
}

type StatusUpdateRequest struct {
	Status string `form:"status" binding:"required"`
}

func FromStudent(s *models.Student) ProfileRequest {
	req := ProfileRequest{
		Name:       s.Name,
		GithubID:   s.GithubID,
		LinkedinID: s.LinkedinID,
		Experience: s.Experience,
		Portfolio:  s.Portfolio,
		Phone:      s.Phone,
		Address:    s.Address,
	}
	if s.CGPA != nil {
		req.CGPA = strconv.FormatFloat(*s.CGPA, 'f', -1, 64)
	}
	return req
}
