package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
)

// render executes a named template with the values every page needs.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Principal"] = principal(c)
	data["Flashes"] = popFlashes(c)
	data["Path"] = c.Request.URL.Path
	c.HTML(status, name, data)
}

func principal(c *gin.Context) *auth.Principal {
	return auth.FromContext(c.Request.Context())
}

// redirect answers a form post with 303 so the browser follows with GET.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// renderError shows the error page with the status the error code maps to.
// Internal causes are logged, never shown.
func renderError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	status := apperr.HTTPStatus(code)
	if code == apperr.CodeInternal {
		_ = c.Error(err)
	}
	render(c, status, "error", gin.H{
		"Status":  status,
		"Message": apperr.MessageOf(err),
	})
}

// jsonError is the JSON flavour of renderError.
func jsonError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		_ = c.Error(err)
	}
	body := gin.H{"error": apperr.MessageOf(err)}
	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		body["fields"] = fields
	}
	c.JSON(apperr.HTTPStatus(code), body)
}

// idParam reads a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NotFound("Page not found")
	}
	return uint(id), nil
}
