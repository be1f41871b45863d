package dto

import "github.com/noah-isme/uks-api/internal/models"

// LoginPage is rendered for anyone at /login.
type LoginPage struct {
	Title       string           `json:"title"`
	CurrentUser *models.UserInfo `json:"currentUser,omitempty"`
	DemoUsers   []DemoCredential `json:"demoUsers"`
}

// DemoCredential lists a seeded account shown on the login page.
type DemoCredential struct {
	Role     models.UserRole `json:"role"`
	Username string          `json:"username"`
	Password string          `json:"password"`
}

// LandingPage is rendered at / for anonymous visitors.
type LandingPage struct {
	Title string `json:"title"`
	Login string `json:"login"`
}

// NotFoundPage is rendered for unknown routes.
type NotFoundPage struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Home    string `json:"home"`
}

// StudentHomePage is the /siswa dashboard.
type StudentHomePage struct {
	User            models.UserInfo      `json:"user"`
	HealthCount     int                  `json:"healthCount"`
	ComplaintCount  int                  `json:"complaintCount"`
	RespondedCount  int                  `json:"respondedCount"`
	ResponseRate    float64              `json:"responseRate"`
	LatestRecord    *models.HealthRecord `json:"latestRecord,omitempty"`
	LatestComplaint *models.Complaint    `json:"latestComplaint,omitempty"`
}

// HealthFormDefaults seeds the /siswa/isi-data sliders.
type HealthFormDefaults struct {
	Temperature float64 `json:"temperature"`
	Weight      float64 `json:"weight"`
	Height      float64 `json:"height"`
}

// StudentHealthPage is the /siswa/isi-data page.
type StudentHealthPage struct {
	User     models.UserInfo       `json:"user"`
	Defaults HealthFormDefaults    `json:"defaults"`
	Records  []models.HealthRecord `json:"records"`
}

// StudentComplaintsPage is the /siswa/keluhan page.
type StudentComplaintsPage struct {
	User       models.UserInfo    `json:"user"`
	Complaints []models.Complaint `json:"complaints"`
}

// TeacherHomePage is the /guru dashboard.
type TeacherHomePage struct {
	User           models.UserInfo        `json:"user"`
	Class          string                 `json:"kelas"`
	HealthCount    int                    `json:"healthCount"`
	ComplaintCount int                    `json:"complaintCount"`
	PendingCount   int                    `json:"pendingCount"`
	RespondedCount int                    `json:"respondedCount"`
	ResponseRate   float64                `json:"responseRate"`
	Averages       models.HealthAverages  `json:"averages"`
	Chart          []models.DailyAverages `json:"chart"`
}

// StudentSummary pairs a student's latest record with their history.
type StudentSummary struct {
	StudentID   string                `json:"studentId"`
	StudentName string                `json:"studentName"`
	Latest      models.HealthRecord   `json:"latest"`
	History     []models.HealthRecord `json:"history"`
}

// TeacherStudentsPage is the /guru/daftar-siswa page.
type TeacherStudentsPage struct {
	User     models.UserInfo  `json:"user"`
	Class    string           `json:"kelas"`
	Search   string           `json:"search"`
	Students []StudentSummary `json:"students"`
}

// TeacherComplaintsPage is the /guru/keluhan page.
type TeacherComplaintsPage struct {
	User      models.UserInfo    `json:"user"`
	Class     string             `json:"kelas"`
	Search    string             `json:"search"`
	Pending   []models.Complaint `json:"pending"`
	Responded []models.Complaint `json:"responded"`
}

// AdminHomePage is the /admin dashboard.
type AdminHomePage struct {
	User              models.UserInfo        `json:"user"`
	TotalHealth       int                    `json:"totalHealth"`
	TotalComplaints   int                    `json:"totalComplaints"`
	PendingComplaints int                    `json:"pendingComplaints"`
	ResponseRate      float64                `json:"responseRate"`
	Timeline          []models.TimelinePoint `json:"timeline"`
	ClassDistribution []models.ClassCount    `json:"classDistribution"`
	RecentComplaints  []models.Complaint     `json:"recentComplaints"`
}

// AdminUsersPage is the /admin/kelola-pengguna page. Totals ignores the filter.
type AdminUsersPage struct {
	User   models.UserInfo         `json:"user"`
	Role   string                  `json:"role,omitempty"`
	Search string                  `json:"search"`
	Users  []models.UserInfo       `json:"users"`
	Totals map[models.UserRole]int `json:"totals"`
}

// AdminReportsPage is the /admin/laporan page.
type AdminReportsPage struct {
	User             models.UserInfo       `json:"user"`
	Filter           ReportFilterView      `json:"filter"`
	HealthRecords    []models.HealthRecord `json:"healthRecords,omitempty"`
	Complaints       []models.Complaint    `json:"complaints,omitempty"`
	AvailableClasses []string              `json:"availableClasses"`
	AvailableDates   []string              `json:"availableDates"`
}

// ReportFilterView echoes the applied report filter.
type ReportFilterView struct {
	Type   models.ReportType `json:"type"`
	Class  string            `json:"kelas"`
	Date   string            `json:"date"`
	Search string            `json:"search"`
}
