package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/services"
)

type HomeHandler struct {
	StatsService *services.StatsService
}

func NewHomeHandler(s *services.StatsService) *HomeHandler {
	return &HomeHandler{StatsService: s}
}

func (h *HomeHandler) Home(c *gin.Context) {
	counts, err := h.StatsService.Counts(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "home", gin.H{"Counts": counts})
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error", gin.H{
		"Status":  http.StatusNotFound,
		"Message": "Page not found",
	})
}
