// Package jobfilter turns request facets into job predicates, both as a gorm
// scope for the database and as an in-memory match.
package jobfilter

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-board/internal/models"
)

// Filter is a conjunction of optional facets. Zero values impose no constraint;
// multi-value facets match any of their values.
type Filter struct {
	Query            string
	MinSalary        *int
	CategoryID       *uint
	JobTypes         []string
	ExperienceLevels []string
	Locations        []string
}

// Query parameter names.
const (
	ParamQuery      = "q"
	ParamMinSalary  = "min_salary"
	ParamCategoryID = "category_id"
	ParamJobType    = "job_type"
	ParamExperience = "experience"
	ParamLocation   = "location"
)

// textColumns are searched by the free-text query.
var textColumns = []string{"title", "company", "description", "tags", "location"}

// FromValues reads a Filter from query parameters. Blank values and numbers
// that do not parse to a positive value are treated as absent.
func FromValues(values url.Values) Filter {
	f := Filter{
		Query:            strings.TrimSpace(values.Get(ParamQuery)),
		JobTypes:         cleanList(values[ParamJobType]),
		ExperienceLevels: cleanList(values[ParamExperience]),
		Locations:        cleanList(values[ParamLocation]),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamMinSalary))); err == nil && n > 0 {
		f.MinSalary = &n
	}
	if n, err := strconv.ParseUint(strings.TrimSpace(values.Get(ParamCategoryID)), 10, 64); err == nil && n > 0 {
		id := uint(n)
		f.CategoryID = &id
	}
	return f
}

func (f Filter) IsEmpty() bool {
	return f.Query == "" && f.MinSalary == nil && f.CategoryID == nil &&
		len(f.JobTypes) == 0 && len(f.ExperienceLevels) == 0 && len(f.Locations) == 0
}

// Values is the inverse of FromValues, used to keep the filter form populated.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Query != "" {
		values.Set(ParamQuery, f.Query)
	}
	if f.MinSalary != nil {
		values.Set(ParamMinSalary, strconv.Itoa(*f.MinSalary))
	}
	if f.CategoryID != nil {
		values.Set(ParamCategoryID, strconv.FormatUint(uint64(*f.CategoryID), 10))
	}
	for _, v := range f.JobTypes {
		values.Add(ParamJobType, v)
	}
	for _, v := range f.ExperienceLevels {
		values.Add(ParamExperience, v)
	}
	for _, v := range f.Locations {
		values.Add(ParamLocation, v)
	}
	return values
}

// Scope applies the filter and the default newest-first ordering.
func (f Filter) Scope(db *gorm.DB) *gorm.DB {
	if f.Query != "" {
		pattern := "%" + escapeLike(f.Query) + "%"
		clauses := make([]string, len(textColumns))
		args := make([]interface{}, len(textColumns))
		for i, column := range textColumns {
			clauses[i] = column + " ILIKE ?"
			args[i] = pattern
		}
		db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	if f.MinSalary != nil {
		db = db.Where("min_salary >= ?", *f.MinSalary)
	}
	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}
	if len(f.JobTypes) > 0 {
		db = db.Where("job_type IN ?", f.JobTypes)
	}
	if len(f.ExperienceLevels) > 0 {
		db = db.Where("experience_level IN ?", f.ExperienceLevels)
	}
	if len(f.Locations) > 0 {
		db = db.Where("location IN ?", f.Locations)
	}
	return db.Order("posted_on DESC").Order("id DESC")
}

// Match evaluates the filter against a single job in memory.
func (f Filter) Match(job models.Job) bool {
	if f.Query != "" {
		needle := strings.ToLower(f.Query)
		fields := []string{job.Title, job.Company, job.Description, job.Tags, job.Location}
		found := false
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinSalary != nil && (job.MinSalary == nil || *job.MinSalary < *f.MinSalary) {
		return false
	}
	if f.CategoryID != nil && (job.CategoryID == nil || *job.CategoryID != *f.CategoryID) {
		return false
	}
	if len(f.JobTypes) > 0 && !contains(f.JobTypes, job.JobType) {
		return false
	}
	if len(f.ExperienceLevels) > 0 && !contains(f.ExperienceLevels, job.ExperienceLevel) {
		return false
	}
	if len(f.Locations) > 0 && !contains(f.Locations, job.Location) {
		return false
	}
	return true
}

func cleanList(in []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// escapeLike makes user input literal inside a LIKE pattern (postgres escapes with backslash).
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
