package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/edutrack/studentbook/internal/repository"
)

// rosterSheet is the workbook sheet students are exported to.
const rosterSheet = "Students"

var rosterHeader = []interface{}{
	"ID", "Name", "Age", "Email", "Mobile", "Gender",
	"Date of Birth", "Pincode", "State", "City",
}

// ExportService renders student records into spreadsheet form.
type ExportService struct {
	repo   repository.StudentRepository
	logger zerolog.Logger
}

// NewExportService creates a new export service.
func NewExportService(repo repository.StudentRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{
		repo:   repo,
		logger: logger.With().Str("component", "export_service").Logger(),
	}
}

// RosterXLSX renders the full roster into an xlsx workbook, one row per
// student in id order, and returns the encoded bytes.
func (s *ExportService) RosterXLSX(ctx context.Context) ([]byte, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(rosterSheet, "A1", &rosterHeader); err != nil {
		return nil, err
	}

	for i, student := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			student.ID,
			student.Name,
			student.Age,
			student.Email,
			student.Mobile,
			string(student.Gender),
			student.DOB.Format(time.DateOnly),
			student.Address.Pincode,
			student.Address.State,
			student.Address.City,
		}
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Int("students", len(students)).Msg("Roster exported")
	return buf.Bytes(), nil
}
