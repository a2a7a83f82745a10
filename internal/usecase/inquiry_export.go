package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"reliableteam-site/internal/domain"
	"reliableteam-site/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"ID", "RECEIVED AT", "NAME", "EMAIL", "COMPANY", "AI ROLE NEEDS", "STATUS", "SOURCE"}

// Export renders the filtered inquiry list as xlsx (default) or csv.
func (u *inquiryUsecase) Export(ctx context.Context, filter domain.InquiryFilter, format string) (*domain.InquiryExport, error) {
	if format != "" && format != "xlsx" && format != "csv" {
		return nil, apperror.BadRequest(fmt.Sprintf("unsupported export format: %s", format))
	}

	inquiries, err := u.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stamp := u.now().Format("20060102_150405")
	if format == "csv" {
		data, err := exportCSV(inquiries)
		if err != nil {
			return nil, err
		}
		return &domain.InquiryExport{
			Filename:    fmt.Sprintf("inquiries_%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	}

	data, err := exportExcel(inquiries)
	if err != nil {
		return nil, err
	}
	return &domain.InquiryExport{
		Filename:    fmt.Sprintf("inquiries_%s.xlsx", stamp),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

func inquiryRow(inq domain.Inquiry) []string {
	return []string{
		inq.ID.String(),
		inq.CreatedAt.UTC().Format(time.RFC3339),
		inq.Name,
		inq.Email,
		inq.Company,
		inq.Requirements,
		string(inq.Status),
		inq.Source,
	}
}

func exportExcel(inquiries []domain.Inquiry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Inquiries"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#059669"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, inq := range inquiries {
		for colIdx, value := range inquiryRow(inq) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := 20.0
		if exportHeaders[i] == "AI ROLE NEEDS" {
			width = 60
		}
		f.SetColWidth(sheetName, colName, colName, width)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(inquiries []domain.Inquiry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, inq := range inquiries {
		if err := w.Write(inquiryRow(inq)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}
