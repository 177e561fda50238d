package model

// Question represents a single MCQ item as served by the portal.
// Field names mirror the wire format exactly; the portal is the
// authority of record for this shape.
type Question struct {
	ID                 string   `json:"_id"`
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Subject            string   `json:"subject,omitempty"`
	CompanyID          string   `json:"companyId,omitempty"`
}

// SubmitTestRequest is the payload for recording a finished MCQ attempt.
// Answers are raw option selections (null for unanswered); the portal
// computes the score of record server-side.
type SubmitTestRequest struct {
	Answers     []*int   `json:"answers"`
	QuestionIDs []string `json:"questionIds"`
}

// Company is an organization a question bank belongs to.
type Company struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// AddQuestionRequest is the payload for adding an MCQ to the bank.
// The option list is fixed-size and position-indexed: the correct answer
// is identified by its index, so options are validated as a unit.
type AddQuestionRequest struct {
	CompanyID          string   `json:"companyId" validate:"omitempty"`
	Subject            string   `json:"subject" validate:"required,min=1,max=100"`
	Question           string   `json:"question" validate:"required,min=1,max=2000"`
	Options            []string `json:"options" validate:"required,len=4,dive,required,max=500"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" validate:"min=0,max=3"`
}
