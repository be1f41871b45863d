package models

// DateLayout is the calendar-day format used for every record date.
const DateLayout = "2006-01-02"

// HealthRecord is a single temperature/weight/height submission by a student.
type HealthRecord struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	Class       string  `json:"kelas"`
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	Weight      float64 `json:"weight"`
	Height      float64 `json:"height"`
	Notes       string  `json:"notes,omitempty"`
}

// HealthRecordInput is a record before the store assigns its id and date.
type HealthRecordInput struct {
	StudentID   string
	StudentName string
	Class       string
	Temperature float64
	Weight      float64
	Height      float64
	Notes       string
}
