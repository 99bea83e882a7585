package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/ward-roster-api/internal/models"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
	"github.com/noah-isme/ward-roster-api/pkg/export"
)

// Export formats supported by the roster export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export rendering.
type ExportConfig struct {
	PDFTitle string
}

// ExportResult carries a rendered roster document.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the committed roster of a month as CSV or PDF.
type ExportService struct {
	schedules summaryScheduleReader
	doctors   summaryDoctorReader
	services  summaryServiceReader
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(schedules summaryScheduleReader, doctors summaryDoctorReader, services summaryServiceReader, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PDFTitle == "" {
		cfg.PDFTitle = "Monthly Duty Roster"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		schedules: schedules,
		doctors:   doctors,
		services:  services,
		csv:       csv,
		pdf:       pdf,
		logger:    logger,
		cfg:       cfg,
	}
}

// Render builds the export document for the month.
func (s *ExportService) Render(ctx context.Context, year, month int, format string) (*ExportResult, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, appErrors.Clone(appErrors.ErrInvalidPeriod, "")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	dataset, err := s.buildDataset(ctx, year, month)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s %d-%02d", s.cfg.PDFTitle, year, month)
	var payload []byte
	var contentType string
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("roster-%d-%02d.%s", year, month, format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func (s *ExportService) buildDataset(ctx context.Context, year, month int) (export.Dataset, error) {
	schedules, err := s.schedules.ListByMonth(ctx, models.ScheduleFilter{Year: year, Month: month})
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedules")
	}
	doctors, err := s.doctors.ListAllWithServices(ctx)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load doctors")
	}
	services, err := s.services.ListAll(ctx)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load services")
	}

	doctorNames := make(map[string]string, len(doctors))
	for _, doc := range doctors {
		doctorNames[doc.ID] = doc.FullName()
	}
	serviceNames := make(map[string]string, len(services))
	for _, svc := range services {
		serviceNames[svc.ID] = svc.Name
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		if !schedules[i].Date.Equal(schedules[j].Date) {
			return schedules[i].Date.Before(schedules[j].Date)
		}
		if schedules[i].TimeSlot != schedules[j].TimeSlot {
			return schedules[i].TimeSlot < schedules[j].TimeSlot
		}
		return schedules[i].ServiceID < schedules[j].ServiceID
	})

	dataset := export.Dataset{
		Headers: []string{"Date", "Weekday", "Time Slot", "Service", "Doctor", "Hours"},
	}
	for _, sched := range schedules {
		name := serviceNames[sched.ServiceID]
		if name == "" {
			name = sched.ServiceID
		}
		doctor := doctorNames[sched.DoctorID]
		if doctor == "" {
			doctor = sched.DoctorID
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":      sched.Date.Format("2006-01-02"),
			"Weekday":   sched.Date.Weekday().String(),
			"Time Slot": string(sched.TimeSlot),
			"Service":   name,
			"Doctor":    doctor,
			"Hours":     fmt.Sprintf("%d", sched.TimeSlot.Hours()),
		})
	}
	return dataset, nil
}
