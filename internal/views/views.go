// Package views holds the HTML templates, compiled into the binary.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
)

//go:embed templates
var files embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.DateOnly)
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	"salary": func(v *int) string {
		if v == nil {
			return "Not disclosed"
		}
		return strconv.Itoa(*v)
	},
	"intValue": func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	},
	"floatValue": func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', 2, 64)
	},
	"isCategory": func(selected *uint, id uint) bool {
		return selected != nil && *selected == id
	},
	"contains": func(list []string, v string) bool {
		for _, item := range list {
			if item == v {
				return true
			}
		}
		return false
	},
	"fieldError": func(errs map[string]string, name string) string {
		return errs[name]
	},
	// rows bundles the arguments of the application_rows partial.
	"rows": func(applications, statuses, jobID any, withJob bool) map[string]any {
		return map[string]any{
			"Applications": applications,
			"Statuses":     statuses,
			"JobID":        jobID,
			"WithJob":      withJob,
		}
	},
	"label": func(v any) string {
		s := fmt.Sprint(v)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

// Templates parses every page and partial. Pages are addressed by the name
// in their define block, e.g. "student/dashboard".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files,
		"templates/*.tmpl",
		"templates/auth/*.tmpl",
		"templates/student/*.tmpl",
		"templates/admin/*.tmpl",
	)
}

// MustTemplates is Templates for process start-up.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
