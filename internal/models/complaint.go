package models

// ComplaintStatus tracks whether a teacher has answered.
type ComplaintStatus string

const (
	ComplaintPending   ComplaintStatus = "pending"
	ComplaintResponded ComplaintStatus = "responded"
)

// Complaint is a student's report awaiting or holding a teacher response.
// Response is set if and only if Status is ComplaintResponded.
type Complaint struct {
	ID          string             `json:"id"`
	StudentID   string             `json:"studentId"`
	StudentName string             `json:"studentName"`
	Class       string             `json:"kelas"`
	Date        string             `json:"date"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Response    *ComplaintResponse `json:"response,omitempty"`
	Status      ComplaintStatus    `json:"status"`
}

// ComplaintResponse is the teacher's answer.
type ComplaintResponse struct {
	TeacherID   string `json:"teacherId"`
	TeacherName string `json:"teacherName"`
	Date        string `json:"date"`
	Message     string `json:"message"`
}

// ComplaintInput is a complaint before the store assigns id, date and status.
type ComplaintInput struct {
	StudentID   string
	StudentName string
	Class       string
	Title       string
	Description string
}

// ResponseInput carries a teacher's reply to a complaint.
type ResponseInput struct {
	ComplaintID string
	TeacherID   string
	TeacherName string
	Message     string
}
