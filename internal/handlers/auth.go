package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/middleware"
	"github.com/justsurfingit/job-board/internal/services"
)

type AuthHandler struct {
	AuthService  *services.AuthService
	CookieSecure bool
}

func NewAuthHandler(a *services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{AuthService: a, CookieSecure: cookieSecure}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "auth/register", gin.H{"Form": dtos.RegisterRequest{}})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		req.Password, req.ConfirmPassword = "", ""
		render(c, http.StatusUnprocessableEntity, "auth/register", gin.H{
			"Form":   req,
			"Errors": dtos.FieldErrors(err),
		})
		return
	}

	session, err := h.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		if apperr.Is(err, apperr.CodeConflict) {
			addFlash(c, "warning", apperr.MessageOf(err))
			redirect(c, "/auth/login")
			return
		}
		renderError(c, err)
		return
	}

	h.setSession(c, session.Token, h.AuthService.Tokens.TTL())
	addFlash(c, "success", "Registration successful. Welcome!")
	redirect(c, "/student/dashboard")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "auth/login", gin.H{"Form": dtos.LoginRequest{}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		req.Password = ""
		render(c, http.StatusUnprocessableEntity, "auth/login", gin.H{
			"Form":   req,
			"Errors": dtos.FieldErrors(err),
		})
		return
	}

	session, err := h.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apperr.Is(err, apperr.CodeUnauthorized) {
			addFlash(c, "danger", apperr.MessageOf(err))
			render(c, http.StatusUnauthorized, "auth/login", gin.H{"Form": dtos.LoginRequest{Email: req.Email}})
			return
		}
		renderError(c, err)
		return
	}

	h.setSession(c, session.Token, h.AuthService.Tokens.TTL())
	addFlash(c, "success", "Logged in successfully.")
	if session.Principal.IsAdmin() {
		redirect(c, "/admin/dashboard")
		return
	}
	redirect(c, "/student/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSession(c, "", -time.Second)
	addFlash(c, "info", "You have been logged out.")
	redirect(c, "/")
}

func (h *AuthHandler) setSession(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(ttl.Seconds()), "/", "", h.CookieSecure, true)
}
