package access

import "github.com/noah-isme/uks-api/internal/models"

// Page is a routed page and the roles allowed to view it.
type Page struct {
	Path    string
	Allowed []models.UserRole
}

var (
	students = []models.UserRole{models.RoleStudent}
	teachers = []models.UserRole{models.RoleTeacher}
	admins   = []models.UserRole{models.RoleAdmin}
)

// Page paths.
const (
	PathIndex             = "/"
	PathLogin             = LoginPath
	PathStudentHome       = "/siswa"
	PathStudentHealthForm = "/siswa/isi-data"
	PathStudentComplaints = "/siswa/keluhan"
	PathTeacherHome       = "/guru"
	PathTeacherStudents   = "/guru/daftar-siswa"
	PathTeacherComplaints = "/guru/keluhan"
	PathAdminHome         = "/admin"
	PathAdminUsers        = "/admin/kelola-pengguna"
	PathAdminReports      = "/admin/laporan"
)

// Pages is the routed page table. Anything else is the not-found page.
var Pages = []Page{
	{Path: PathIndex},
	{Path: PathLogin},
	{Path: PathStudentHome, Allowed: students},
	{Path: PathStudentHealthForm, Allowed: students},
	{Path: PathStudentComplaints, Allowed: students},
	{Path: PathTeacherHome, Allowed: teachers},
	{Path: PathTeacherStudents, Allowed: teachers},
	{Path: PathTeacherComplaints, Allowed: teachers},
	{Path: PathAdminHome, Allowed: admins},
	{Path: PathAdminUsers, Allowed: admins},
	{Path: PathAdminReports, Allowed: admins},
}

// Lookup finds the page for an exact path.
func Lookup(path string) (Page, bool) {
	for _, page := range Pages {
		if page.Path == path {
			return page, true
		}
	}
	return Page{}, false
}

// Evaluate decides a routed page. The index sends an authenticated identity home.
func Evaluate(page Page, identity *models.UserInfo) Decision {
	if page.Path == PathIndex && identity != nil {
		return Decision{Outcome: OutcomeHome, Location: HomeFor(identity.Role)}
	}
	return Decide(identity, page.Allowed)
}
