// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report renders the roster as an Excel workbook.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/site-checkin/models"
)

// SheetName is the worksheet holding the roster
const SheetName = "Roster"

// ContentType is the MIME type of the workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Header is the first row of the roster sheet
var Header = []string{
	"ID", "First name", "Last name", "Job ID", "Phone",
	"Company", "Area", "Cluster", "Plant", "Timestamp",
}

// Filename returns the attachment name for a roster exported on day
func Filename(day string) string {
	return fmt.Sprintf("roster-%s.xlsx", day)
}

// WriteRosterXLSX writes rows as a single-sheet workbook to w
func WriteRosterXLSX(w io.Writer, rows []models.CheckIn) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.ID, row.FirstName, row.LastName, row.JobID, row.Phone,
			row.Company, row.Area, row.Cluster, row.Plant, row.TS,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.ID, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
