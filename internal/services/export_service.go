package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
)

const (
	exportSheet      = "Applicants"
	exportTimeLayout = "2006-01-02 15:04"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Export is a generated spreadsheet ready to download.
type Export struct {
	Filename string
	Data     []byte
}

// ExportService renders applicant lists as xlsx workbooks.
type ExportService struct {
	Applications *ApplicationService
}

func NewExportService(applications *ApplicationService) *ExportService {
	return &ExportService{Applications: applications}
}

func (s *ExportService) JobApplicants(ctx context.Context, p *auth.Principal, jobID uint) (*Export, error) {
	job, details, err := s.Applications.ListForJob(ctx, p, jobID)
	if err != nil {
		return nil, err
	}
	data, err := applicantsWorkbook(details, false)
	if err != nil {
		return nil, err
	}
	return &Export{Filename: fmt.Sprintf("%s_applicants.xlsx", slug(job.Title)), Data: data}, nil
}

func (s *ExportService) AllApplicants(ctx context.Context, p *auth.Principal) (*Export, error) {
	details, err := s.Applications.ListAll(ctx, p)
	if err != nil {
		return nil, err
	}
	data, err := applicantsWorkbook(details, true)
	if err != nil {
		return nil, err
	}
	return &Export{Filename: "all_applicants.xlsx", Data: data}, nil
}

func applicantsWorkbook(details []models.ApplicationDetail, withJob bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, apperr.Internal("could not build spreadsheet", err)
	}

	header := []interface{}{"Student Name", "Email", "Resume", "Status", "Applied On"}
	if withJob {
		header = append([]interface{}{"Job Title"}, header...)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, apperr.Internal("could not build spreadsheet", err)
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(exportSheet, "A1", last, bold)
	}

	for i, d := range details {
		row := []interface{}{
			d.StudentName,
			d.StudentEmail,
			d.StudentResume,
			string(d.Status),
			d.AppliedOn.Format(exportTimeLayout),
		}
		if withJob {
			row = append([]interface{}{d.JobTitle}, row...)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, apperr.Internal("could not build spreadsheet", err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, apperr.Internal("could not build spreadsheet", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperr.Internal("could not write spreadsheet", err)
	}
	return buf.Bytes(), nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	out := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "_"), "_")
	if out == "" {
		return "job"
	}
	return out
}
