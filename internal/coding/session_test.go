package coding

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/model"
)

type fakeJudge struct {
	questions    []model.CodingQuestion
	compileResp  *model.CompileResponse
	compileErr   error
	compileCalls int
	lastReq      model.CompileRequest
}

func (j *fakeJudge) FetchCodingQuestions(ctx context.Context) ([]model.CodingQuestion, error) {
	return j.questions, nil
}

func (j *fakeJudge) Compile(ctx context.Context, req model.CompileRequest) (*model.CompileResponse, error) {
	j.compileCalls++
	j.lastReq = req
	return j.compileResp, j.compileErr
}

func oneCodingQuestion() []model.CodingQuestion {
	return []model.CodingQuestion{{
		ID:    "cq1",
		Title: "Reverse a string",
		StarterCode: model.StarterCode{
			CPP:    "// cpp starter",
			Java:   "// java starter",
			Python: "# python starter",
		},
	}}
}

func allPassed() *model.CompileResponse {
	return &model.CompileResponse{
		Results:     []model.TestCaseResult{{Pass: true}},
		PassedCount: 1,
		Total:       1,
	}
}

func startedSession(t *testing.T, j *fakeJudge) *Session {
	t.Helper()
	s := NewSession(j, "stu-1", zerolog.Nop())
	if err := s.Start(context.Background(), 900); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestStartSeedsStarterCode(t *testing.T) {
	s := startedSession(t, &fakeJudge{questions: oneCodingQuestion()})

	if got := s.Language(); got != "cpp" {
		t.Errorf("Language = %s, want cpp", got)
	}
	if got := s.Code(); got != "// cpp starter" {
		t.Errorf("Code = %q, want cpp starter", got)
	}
	if got := s.Remaining(); got != 900 {
		t.Errorf("Remaining = %d, want 900", got)
	}
}

func TestStartNoQuestionsToday(t *testing.T) {
	s := NewSession(&fakeJudge{}, "stu-1", zerolog.Nop())
	if err := s.Start(context.Background(), 900); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("Start = %v, want ErrNoQuestions", err)
	}
}

func TestSetLanguageReseedsBuffer(t *testing.T) {
	s := startedSession(t, &fakeJudge{questions: oneCodingQuestion()})

	if err := s.SetCode("int main() { return 0; }"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLanguage("python"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}

	// Switching language discards edits and reseeds the starter.
	if got := s.Code(); got != "# python starter" {
		t.Errorf("Code after switch = %q, want python starter", got)
	}
	if err := s.SetLanguage("rust"); !errors.Is(err, ErrBadLanguage) {
		t.Errorf("SetLanguage(rust) = %v, want ErrBadLanguage", err)
	}
}

func TestRunIsRepeatable(t *testing.T) {
	j := &fakeJudge{questions: oneCodingQuestion(), compileResp: allPassed()}
	s := startedSession(t, j)

	for i := 0; i < 3; i++ {
		if _, err := s.Run(context.Background()); err != nil {
			t.Fatalf("Run %d: %v", i+1, err)
		}
	}
	if j.compileCalls != 3 {
		t.Errorf("judge calls = %d, want 3", j.compileCalls)
	}
	if j.lastReq.StudentID != "stu-1" || j.lastReq.QuestionID != "cq1" {
		t.Errorf("compile request = %+v, want studentId stu-1 / questionId cq1", j.lastReq)
	}
	if got := s.LastResult(); got == nil || got.PassedCount != 1 {
		t.Errorf("LastResult = %+v, want passed 1", got)
	}
}

func TestSubmitFinalIsOneWay(t *testing.T) {
	j := &fakeJudge{questions: oneCodingQuestion(), compileResp: allPassed()}
	s := startedSession(t, j)

	if _, err := s.SubmitFinal(context.Background()); err != nil {
		t.Fatalf("SubmitFinal: %v", err)
	}
	if !s.Finalized() {
		t.Error("session not finalized after SubmitFinal")
	}

	if err := s.SetCode("late edit"); !errors.Is(err, ErrFinalized) {
		t.Errorf("SetCode after finalize = %v, want ErrFinalized", err)
	}
	if _, err := s.Run(context.Background()); !errors.Is(err, ErrFinalized) {
		t.Errorf("Run after finalize = %v, want ErrFinalized", err)
	}
	if _, err := s.SubmitFinal(context.Background()); !errors.Is(err, ErrFinalized) {
		t.Errorf("second SubmitFinal = %v, want ErrFinalized", err)
	}
	if j.compileCalls != 1 {
		t.Errorf("judge calls = %d, want 1", j.compileCalls)
	}
}

func TestFinalizeSkippedWhenJudgeFails(t *testing.T) {
	j := &fakeJudge{questions: oneCodingQuestion(), compileErr: errors.New("judge down")}
	s := startedSession(t, j)

	if _, err := s.SubmitFinal(context.Background()); err == nil {
		t.Fatal("SubmitFinal should surface the judge failure")
	}
	// A failed final submission leaves the session editable for a retry.
	if s.Finalized() {
		t.Error("failed SubmitFinal must not finalize")
	}
	if err := s.SetCode("fix and retry"); err != nil {
		t.Errorf("SetCode after failed final = %v, want nil", err)
	}
}

func TestExpiryLocksEditing(t *testing.T) {
	j := &fakeJudge{questions: oneCodingQuestion(), compileResp: allPassed()}
	s := NewSession(j, "stu-1", zerolog.Nop())
	if err := s.Start(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	s.countdown.Tick()

	if err := s.SetCode("too late"); !errors.Is(err, ErrTimeUp) {
		t.Errorf("SetCode after expiry = %v, want ErrTimeUp", err)
	}
	if _, err := s.Run(context.Background()); !errors.Is(err, ErrTimeUp) {
		t.Errorf("Run after expiry = %v, want ErrTimeUp", err)
	}
	if got := s.Remaining(); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
}
