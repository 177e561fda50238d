package exam

import "testing"

func TestNewAnswerSheetComplete(t *testing.T) {
	sheet, err := NewAnswerSheet(4)
	if err != nil {
		t.Fatal(err)
	}
	if sheet.Len() != 4 {
		t.Fatalf("Len = %d, want 4", sheet.Len())
	}
	for i := 0; i < 4; i++ {
		if got := sheet.Answer(i); got != Unanswered {
			t.Errorf("Answer(%d) = %d, want Unanswered", i, got)
		}
	}
	if got := sheet.UnansweredCount(); got != 4 {
		t.Errorf("UnansweredCount = %d, want 4", got)
	}
}

func TestNewAnswerSheetRejectsEmpty(t *testing.T) {
	if _, err := NewAnswerSheet(0); err == nil {
		t.Error("zero questions accepted")
	}
	if _, err := NewAnswerSheet(-1); err == nil {
		t.Error("negative question count accepted")
	}
}

func TestAnswerSheetSelections(t *testing.T) {
	sheet, err := NewAnswerSheet(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := sheet.Select(0, 2); err != nil {
		t.Fatal(err)
	}
	if err := sheet.Select(2, 0); err != nil {
		t.Fatal(err)
	}

	sel := sheet.Selections()
	if len(sel) != 3 {
		t.Fatalf("Selections length = %d, want 3", len(sel))
	}
	if sel[0] == nil || *sel[0] != 2 {
		t.Errorf("sel[0] = %v, want 2", sel[0])
	}
	if sel[1] != nil {
		t.Errorf("sel[1] = %d, want nil", *sel[1])
	}
	if sel[2] == nil || *sel[2] != 0 {
		t.Errorf("sel[2] = %v, want 0", sel[2])
	}

	if got := sheet.AttemptedCount(); got != 2 {
		t.Errorf("AttemptedCount = %d, want 2", got)
	}
}

func TestAnswerSheetAnswerOutOfRange(t *testing.T) {
	sheet, _ := NewAnswerSheet(2)
	if got := sheet.Answer(9); got != Unanswered {
		t.Errorf("Answer(9) = %d, want Unanswered", got)
	}
	if err := sheet.Select(9, 0); err == nil {
		t.Error("out-of-range Select accepted")
	}
}
