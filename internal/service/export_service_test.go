package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
	"github.com/noah-isme/ward-roster-api/pkg/export"
)

func newExportServiceForTest() *ExportService {
	data := fixtureMonthData()
	return NewExportService(data, data, data, ExportConfig{PDFTitle: "Duty Roster"}, nil, export.NewCSVExporter(), export.NewPDFExporter())
}

func TestExportServiceRenderCSV(t *testing.T) {
	svc := newExportServiceForTest()

	result, err := svc.Render(context.Background(), 2026, 3, "csv")
	require.NoError(t, err)
	require.Equal(t, "roster-2026-03.csv", result.Filename)
	require.Equal(t, "text/csv", result.ContentType)

	records, err := csv.NewReader(bytes.NewReader(result.Payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, []string{"Date", "Weekday", "Time Slot", "Service", "Doctor", "Hours"}, records[0])
	require.Equal(t, "2026-03-02", records[1][0])
	require.Equal(t, "2026-03-07", records[3][0])
	require.Equal(t, "Anna Bianchi", records[3][4])
	require.Equal(t, "12", records[3][5])
}

func TestExportServiceRenderPDF(t *testing.T) {
	svc := newExportServiceForTest()

	result, err := svc.Render(context.Background(), 2026, 3, "pdf")
	require.NoError(t, err)
	require.Equal(t, "roster-2026-03.pdf", result.Filename)
	require.Equal(t, "application/pdf", result.ContentType)
	require.NotEmpty(t, result.Payload)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest()

	_, err := svc.Render(context.Background(), 2026, 3, "xlsx")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRejectsBadPeriod(t *testing.T) {
	svc := newExportServiceForTest()

	_, err := svc.Render(context.Background(), 2026, 0, "csv")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidPeriod.Code, appErrors.FromError(err).Code)
}
