package service

import (
	"context"
	"strings"

	"github.com/noah-isme/uks-api/internal/analytics"
	"github.com/noah-isme/uks-api/internal/dto"
	"github.com/noah-isme/uks-api/internal/models"
	"github.com/noah-isme/uks-api/internal/repository"
	appErrors "github.com/noah-isme/uks-api/pkg/errors"
)

type userLister interface {
	List(ctx context.Context, filter models.UserFilter) []models.UserInfo
	CountByRole(ctx context.Context) map[models.UserRole]int
}

// Form defaults shown on the health submission page.
var healthFormDefaults = dto.HealthFormDefaults{Temperature: 36.5, Weight: 30, Height: 130}

// DashboardService assembles the view model of every page. Nothing is cached.
type DashboardService struct {
	health    healthReader
	users     userLister
	showDemos bool
}

// NewDashboardService constructs a DashboardService. showDemos lists the seeded logins on the login page.
func NewDashboardService(health healthReader, users userLister, showDemos bool) *DashboardService {
	return &DashboardService{health: health, users: users, showDemos: showDemos}
}

// Landing renders the anonymous index page.
func (s *DashboardService) Landing() dto.LandingPage {
	return dto.LandingPage{Title: "Peduli Kesehatan Anak SD", Login: "/login"}
}

// LoginPage renders the login form for anyone.
func (s *DashboardService) LoginPage(current *models.UserInfo) dto.LoginPage {
	page := dto.LoginPage{Title: "Peduli Kesehatan Anak SD", CurrentUser: current, DemoUsers: []dto.DemoCredential{}}
	if !s.showDemos {
		return page
	}
	for _, role := range []models.UserRole{models.RoleStudent, models.RoleTeacher, models.RoleAdmin} {
		for _, user := range repository.SeedUsers() {
			if user.Role == role {
				page.DemoUsers = append(page.DemoUsers, dto.DemoCredential{Role: role, Username: user.Username, Password: user.Password})
				break
			}
		}
	}
	return page
}

// StudentHome renders /siswa.
func (s *DashboardService) StudentHome(ctx context.Context, actor models.UserInfo) dto.StudentHomePage {
	records := s.health.HealthByStudent(ctx, actor.ID)
	complaints := s.health.ComplaintsByStudent(ctx, actor.ID)
	_, responded := analytics.StatusCounts(complaints)
	return dto.StudentHomePage{
		User:            actor,
		HealthCount:     len(records),
		ComplaintCount:  len(complaints),
		RespondedCount:  responded,
		ResponseRate:    analytics.ResponseRate(complaints),
		LatestRecord:    analytics.LatestRecord(records),
		LatestComplaint: analytics.LatestComplaint(complaints),
	}
}

// StudentHealth renders /siswa/isi-data.
func (s *DashboardService) StudentHealth(ctx context.Context, actor models.UserInfo) dto.StudentHealthPage {
	return dto.StudentHealthPage{
		User:     actor,
		Defaults: healthFormDefaults,
		Records:  analytics.RecordsNewestFirst(s.health.HealthByStudent(ctx, actor.ID)),
	}
}

// StudentComplaints renders /siswa/keluhan.
func (s *DashboardService) StudentComplaints(ctx context.Context, actor models.UserInfo) dto.StudentComplaintsPage {
	return dto.StudentComplaintsPage{
		User:       actor,
		Complaints: analytics.ComplaintsNewestFirst(s.health.ComplaintsByStudent(ctx, actor.ID)),
	}
}

// TeacherHome renders /guru for the teacher's class.
func (s *DashboardService) TeacherHome(ctx context.Context, actor models.UserInfo) dto.TeacherHomePage {
	class := actor.ClassName()
	records := s.health.HealthByClass(ctx, class)
	complaints := s.health.ComplaintsByClass(ctx, class)
	pending, responded := analytics.StatusCounts(complaints)
	return dto.TeacherHomePage{
		User:           actor,
		Class:          class,
		HealthCount:    len(records),
		ComplaintCount: len(complaints),
		PendingCount:   pending,
		RespondedCount: responded,
		ResponseRate:   analytics.ResponseRate(complaints),
		Averages:       analytics.ClassAverages(records),
		Chart:          analytics.DailyClassAverages(records),
	}
}

// TeacherStudents renders /guru/daftar-siswa. Latest records come from the whole
// class while the listed students follow the name search.
func (s *DashboardService) TeacherStudents(ctx context.Context, actor models.UserInfo, search string) dto.TeacherStudentsPage {
	class := actor.ClassName()
	records := s.health.HealthByClass(ctx, class)

	latest := make(map[string]models.HealthRecord)
	for _, record := range analytics.LatestPerStudent(records) {
		latest[record.StudentID] = record
	}

	order := make([]string, 0)
	history := make(map[string][]models.HealthRecord)
	for _, record := range analytics.SearchRecordsByStudent(records, search) {
		if _, ok := history[record.StudentID]; !ok {
			order = append(order, record.StudentID)
		}
		history[record.StudentID] = append(history[record.StudentID], record)
	}

	students := make([]dto.StudentSummary, 0, len(order))
	for _, studentID := range order {
		newest := latest[studentID]
		students = append(students, dto.StudentSummary{
			StudentID:   studentID,
			StudentName: newest.StudentName,
			Latest:      newest,
			History:     analytics.RecordsNewestFirst(history[studentID]),
		})
	}

	return dto.TeacherStudentsPage{User: actor, Class: class, Search: strings.TrimSpace(search), Students: students}
}

// TeacherComplaints renders /guru/keluhan.
func (s *DashboardService) TeacherComplaints(ctx context.Context, actor models.UserInfo, search string) dto.TeacherComplaintsPage {
	class := actor.ClassName()
	complaints := analytics.SearchComplaints(s.health.ComplaintsByClass(ctx, class), search)
	pending, responded := analytics.SplitByStatus(analytics.ComplaintsNewestFirst(complaints))
	return dto.TeacherComplaintsPage{
		User:      actor,
		Class:     class,
		Search:    strings.TrimSpace(search),
		Pending:   pending,
		Responded: responded,
	}
}

// AdminHome renders /admin.
func (s *DashboardService) AdminHome(ctx context.Context, actor models.UserInfo) dto.AdminHomePage {
	records := s.health.AllHealth(ctx)
	complaints := s.health.AllComplaints(ctx)
	pending, _ := analytics.StatusCounts(complaints)
	return dto.AdminHomePage{
		User:              actor,
		TotalHealth:       len(records),
		TotalComplaints:   len(complaints),
		PendingComplaints: pending,
		ResponseRate:      analytics.ResponseRate(complaints),
		Timeline:          analytics.Timeline(records),
		ClassDistribution: analytics.ClassDistribution(records),
		RecentComplaints:  analytics.ComplaintsNewestFirst(complaints),
	}
}

// AdminUsers renders /admin/kelola-pengguna.
func (s *DashboardService) AdminUsers(ctx context.Context, actor models.UserInfo, role, search string) (dto.AdminUsersPage, error) {
	filter := models.UserFilter{Search: search}
	role = strings.TrimSpace(role)
	if role != "" && role != "all" {
		r := models.UserRole(role)
		if !r.Valid() {
			return dto.AdminUsersPage{}, appErrors.Clone(appErrors.ErrValidation, msgInvalidRole)
		}
		filter.Role = &r
	}
	return dto.AdminUsersPage{
		User:   actor,
		Role:   string(derefRole(filter.Role)),
		Search: strings.TrimSpace(search),
		Users:  s.users.List(ctx, filter),
		Totals: s.users.CountByRole(ctx),
	}, nil
}

func derefRole(role *models.UserRole) models.UserRole {
	if role == nil {
		return ""
	}
	return *role
}

// AdminReports renders /admin/laporan. Only the selected dataset is filled.
func (s *DashboardService) AdminReports(ctx context.Context, actor models.UserInfo, filter models.ReportFilter) (dto.AdminReportsPage, error) {
	filter, err := normalizeReportFilter(filter)
	if err != nil {
		return dto.AdminReportsPage{}, err
	}
	records := s.health.AllHealth(ctx)
	complaints := s.health.AllComplaints(ctx)

	page := dto.AdminReportsPage{
		User: actor,
		Filter: dto.ReportFilterView{
			Type:   filter.Type,
			Class:  filter.Class,
			Date:   filter.Date,
			Search: filter.Search,
		},
		AvailableClasses: analytics.AvailableClasses(records, complaints),
		AvailableDates:   analytics.AvailableDates(records, complaints),
	}
	if filter.Type == models.ReportHealth {
		page.HealthRecords = analytics.FilterHealthReport(records, filter)
	} else {
		page.Complaints = analytics.FilterComplaintReport(complaints, filter)
	}
	return page, nil
}

// normalizeReportFilter defaults the type to health and treats class "all" as no filter.
func normalizeReportFilter(filter models.ReportFilter) (models.ReportFilter, error) {
	filter.Class = strings.TrimSpace(filter.Class)
	if filter.Class == "all" {
		filter.Class = ""
	}
	filter.Date = strings.TrimSpace(filter.Date)
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Type == "" {
		filter.Type = models.ReportHealth
	}
	if !filter.Type.Valid() {
		return filter, appErrors.Clone(appErrors.ErrValidation, "Jenis laporan tidak valid")
	}
	return filter, nil
}
