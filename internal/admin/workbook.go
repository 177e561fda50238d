package admin

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/careerit/examterm/internal/model"
	"github.com/careerit/examterm/internal/validator"
)

// Question workbook layout, first sheet, header row then one question
// per row:
//
//	Subject | Question | Option A | Option B | Option C | Option D | Correct (1-4)
const questionColumns = 7

// ReadQuestionWorkbook parses and validates a local MCQ workbook.
// Returns the parsed rows or the first row-level error encountered.
func ReadQuestionWorkbook(path string) ([]model.AddQuestionRequest, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no question rows")
	}

	out := make([]model.AddQuestionRequest, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after header
		if len(row) < questionColumns {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", rowNum, questionColumns, len(row))
		}

		correct, err := strconv.Atoi(row[6])
		if err != nil || correct < 1 || correct > 4 {
			return nil, fmt.Errorf("row %d: correct option must be 1-4, got %q", rowNum, row[6])
		}

		req := model.AddQuestionRequest{
			Subject:            row[0],
			Question:           row[1],
			Options:            []string{row[2], row[3], row[4], row[5]},
			CorrectAnswerIndex: correct - 1,
		}
		if fields := validator.Check(req); fields != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, &ValidationError{Fields: fields})
		}
		out = append(out, req)
	}
	return out, nil
}

// ExportReports writes report records to an .xlsx file matching the
// portal's download format: one Reports sheet with a header row.
func ExportReports(records []model.ReportRecord, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reports"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headers := []string{"Name", "Roll No", "Date", "Score (%)"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range records {
		rowNum := i + 2
		values := []interface{}{r.Name, r.RollNo, r.Date, r.Score}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return fmt.Errorf("cell row %d: %w", rowNum, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", rowNum, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
