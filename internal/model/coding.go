package model

// StarterCode holds the per-language editor seed for a coding question.
type StarterCode struct {
	CPP    string `json:"cpp"`
	Java   string `json:"java"`
	Python string `json:"python"`
}

// TestCase is one input/expected pair checked by the remote judge.
type TestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// CodingQuestion represents a coding exercise as served by the portal.
type CodingQuestion struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StarterCode StarterCode `json:"starterCode"`
	TestCases   []TestCase  `json:"testCases"`
	Duration    int         `json:"duration,omitempty"`
	Date        string      `json:"date,omitempty"`
}

// CompileRequest is the payload for running code against a question's
// test cases. StudentID is used server-side for final submission control.
type CompileRequest struct {
	Code       string `json:"code"`
	Language   string `json:"language"`
	QuestionID string `json:"questionId"`
	StudentID  string `json:"studentId"`
}

// TestCaseResult is the judge's verdict for a single test case.
type TestCaseResult struct {
	Pass     bool   `json:"pass"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// CompileResponse is the judge's full verdict for one run.
type CompileResponse struct {
	Results     []TestCaseResult `json:"results"`
	PassedCount int              `json:"passedCount"`
	Total       int              `json:"total"`
}

// CodeSubmissionCheck reports whether a student already made their final
// coding submission today.
type CodeSubmissionCheck struct {
	Submitted bool `json:"submitted"`
}

// AddCodingQuestionRequest is the payload for publishing a coding question.
type AddCodingQuestionRequest struct {
	Title       string      `json:"title" validate:"required,min=1,max=255"`
	Description string      `json:"description" validate:"required,min=1"`
	StarterCode StarterCode `json:"starterCode"`
	TestCases   []TestCase  `json:"testCases" validate:"required,min=1,dive"`
	Duration    int         `json:"duration" validate:"min=60,max=14400"`
	Date        string      `json:"date" validate:"required,datetime=2006-01-02"`
}
