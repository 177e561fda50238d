package admin

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/careerit/examterm/internal/model"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "questions.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

var workbookHeader = []interface{}{"Subject", "Question", "Option A", "Option B", "Option C", "Option D", "Correct (1-4)"}

func TestReadQuestionWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		workbookHeader,
		{"Aptitude", "What is 2+2?", "3", "4", "5", "6", 2},
		{"Logic", "Odd one out?", "cat", "dog", "car", "cow", 3},
	})

	rows, err := ReadQuestionWorkbook(path)
	if err != nil {
		t.Fatalf("ReadQuestionWorkbook: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.Subject != "Aptitude" || first.Question != "What is 2+2?" {
		t.Errorf("row 1 = %+v", first)
	}
	// The workbook's 1-based correct column maps to a 0-based index.
	if first.CorrectAnswerIndex != 1 {
		t.Errorf("CorrectAnswerIndex = %d, want 1", first.CorrectAnswerIndex)
	}
	if len(first.Options) != 4 || first.Options[1] != "4" {
		t.Errorf("Options = %v", first.Options)
	}
}

func TestReadQuestionWorkbookRowErrors(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]interface{}
		wantPart string
	}{
		{
			"header only",
			[][]interface{}{workbookHeader},
			"no question rows",
		},
		{
			"short row",
			[][]interface{}{workbookHeader, {"Aptitude", "Q?", "a", "b"}},
			"row 2",
		},
		{
			"correct out of range",
			[][]interface{}{workbookHeader, {"Aptitude", "Q?", "a", "b", "c", "d", 5}},
			"correct option must be 1-4",
		},
		{
			"correct not a number",
			[][]interface{}{workbookHeader, {"Aptitude", "Q?", "a", "b", "c", "d", "two"}},
			"correct option must be 1-4",
		},
		{
			"empty question cell",
			[][]interface{}{workbookHeader, {"Aptitude", "", "a", "b", "c", "d", 1}},
			"row 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWorkbook(t, tt.rows)
			_, err := ReadQuestionWorkbook(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not mention %q", err, tt.wantPart)
			}
		})
	}
}

func TestImportQuestionWorkbookValidatesBeforeUpload(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, zerolog.Nop())

	bad := writeWorkbook(t, [][]interface{}{
		workbookHeader,
		{"Aptitude", "Q?", "a", "b", "c", "d", 9},
	})
	if _, err := svc.ImportQuestionWorkbook(context.Background(), bad); err == nil {
		t.Fatal("invalid workbook accepted")
	}
	if gw.uploadCalls != 0 {
		t.Error("invalid workbook was uploaded")
	}

	good := writeWorkbook(t, [][]interface{}{
		workbookHeader,
		{"Aptitude", "Q?", "a", "b", "c", "d", 1},
	})
	n, err := svc.ImportQuestionWorkbook(context.Background(), good)
	if err != nil {
		t.Fatalf("ImportQuestionWorkbook: %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d rows, want 1", n)
	}
	if gw.uploadCalls != 1 {
		t.Errorf("uploads = %d, want 1", gw.uploadCalls)
	}
}

func TestExportReportsRoundTrip(t *testing.T) {
	records := []model.ReportRecord{
		{Name: "Asha Verma", RollNo: "21CS001", Date: "2025-06-02", Score: 84.5},
		{Name: "Ravi Kumar", RollNo: "21CS002", Date: "2025-06-02", Score: 60},
	}
	path := filepath.Join(t.TempDir(), "reports.xlsx")

	if err := ExportReports(records, path); err != nil {
		t.Fatalf("ExportReports: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Reports")
	if err != nil {
		t.Fatalf("read Reports sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][3] != "Score (%)" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "21CS001" {
		t.Errorf("row 1 roll = %s, want 21CS001", rows[1][1])
	}
	if rows[2][0] != "Ravi Kumar" {
		t.Errorf("row 2 name = %s", rows[2][0])
	}
}
