package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/models"
)

const exportDateLayout = "1/2/2006 15:04"

// ToCSV serializes ds back to UTF-8 CSV text: header row, canonical column
// order, no index column. The output reloads through Parse.
func ToCSV(ds *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, r := range ds.rows {
		if err := w.Write(recordFields(r)); err != nil {
			return nil, fmt.Errorf("write record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToXLSX serializes ds as a single-sheet spreadsheet with the same columns
// as the CSV export.
func ToXLSX(ds *Dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	for i, r := range ds.rows {
		for col, value := range recordFields(r) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

// recordFields formats one record in canonical column order.
func recordFields(r models.SalesRecord) []string {
	return []string{
		strconv.Itoa(r.OrderNumber),
		strconv.Itoa(r.QuantityOrdered),
		formatFloat(r.PriceEach),
		strconv.Itoa(r.OrderLineNumber),
		formatFloat(r.Sales),
		r.OrderDate.Format(exportDateLayout),
		r.Status,
		strconv.Itoa(r.QuarterID),
		r.ProductLine,
		r.ProductCode,
		r.CustomerName,
		r.Country,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
