package model

// LoginRequest is the credential payload for portal login.
// The portal's "email" field carries the roll number for students.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse is the portal's answer to a successful login.
type LoginResponse struct {
	Token   string       `json:"token"`
	Message string       `json:"message"`
	Student LoginStudent `json:"student"`
}

// LoginStudent is the embedded account summary in a login response.
type LoginStudent struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Section describes the nested org placement of a student.
type Section struct {
	SectionLabel string `json:"sectionLabel"`
	YearID       *Year  `json:"yearId,omitempty"`
}

// Year is an academic year within a department.
type Year struct {
	YearLabel    string      `json:"yearLabel"`
	DepartmentID *Department `json:"departmentId,omitempty"`
}

// Department is the top of the section hierarchy.
type Department struct {
	Name string `json:"name"`
}

// Profile is the dashboard payload for the logged-in account
// (served for both students and admins; Role discriminates).
type Profile struct {
	StudentID  string   `json:"studentId"`
	Name       string   `json:"name"`
	RollNumber string   `json:"rollNumber"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	SectionID  *Section `json:"sectionId,omitempty"`
}

// ResultEntry is one recorded MCQ attempt in the student's history.
type ResultEntry struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// Student is an account row in the admin student listing.
type Student struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	RollNumber string `json:"rollNumber"`
	Email      string `json:"email"`
}

// ResetTestRequest asks the portal to clear a student's attempt for today.
type ResetTestRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}

// ReportFilters narrows the admin report query. Empty fields are ignored
// server-side.
type ReportFilters struct {
	Department string `json:"department"`
	Year       string `json:"year"`
	Section    string `json:"section"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ReportRecord is one row of the filtered test report.
type ReportRecord struct {
	Name   string  `json:"name"`
	RollNo string  `json:"rollNo"`
	Date   string  `json:"date"`
	Score  float64 `json:"score"`
}
