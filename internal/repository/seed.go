package repository

import "github.com/noah-isme/uks-api/internal/models"

func classPtr(class string) *string {
	return &class
}

// SeedUsers returns the demo identities with plaintext passwords; they are hashed on install.
func SeedUsers() []models.User {
	return []models.User{
		{ID: "1", Name: "Admin Utama", Username: "admin", Password: "admin123", Role: models.RoleAdmin},
		{ID: "2", Name: "Budi Santoso", Username: "budi", Password: "budi123", Role: models.RoleStudent, Class: classPtr("6A")},
		{ID: "3", Name: "Siti Nurhaliza", Username: "siti", Password: "siti123", Role: models.RoleStudent, Class: classPtr("6A")},
		{ID: "4", Name: "Ibu Wati", Username: "guru", Password: "guru123", Role: models.RoleTeacher, Class: classPtr("6A")},
		{ID: "5", Name: "Pak Dedi", Username: "dedi", Password: "dedi123", Role: models.RoleTeacher, Class: classPtr("5B")},
	}
}

// SeedHealthRecords returns the demo health entries.
func SeedHealthRecords() []models.HealthRecord {
	return []models.HealthRecord{
		{ID: "1", StudentID: "2", StudentName: "Budi Santoso", Class: "6A", Date: "2025-05-20", Temperature: 36.5, Weight: 35, Height: 145, Notes: "Kondisi sehat"},
		{ID: "2", StudentID: "3", StudentName: "Siti Nurhaliza", Class: "6A", Date: "2025-05-20", Temperature: 36.7, Weight: 33, Height: 142, Notes: "Sedikit batuk"},
	}
}

// SeedComplaints returns the demo complaints, one answered and one pending.
func SeedComplaints() []models.Complaint {
	return []models.Complaint{
		{
			ID:          "1",
			StudentID:   "2",
			StudentName: "Budi Santoso",
			Class:       "6A",
			Date:        "2025-05-19",
			Title:       "Sakit Kepala",
			Description: "Saya merasa pusing sejak pagi hari",
			Response: &models.ComplaintResponse{
				TeacherID:   "4",
				TeacherName: "Ibu Wati",
				Date:        "2025-05-19",
				Message:     "Budi sebaiknya istirahat di UKS dan minum air putih yang cukup.",
			},
			Status: models.ComplaintResponded,
		},
		{
			ID:          "2",
			StudentID:   "3",
			StudentName: "Siti Nurhaliza",
			Class:       "6A",
			Date:        "2025-05-20",
			Title:       "Batuk",
			Description: "Saya batuk sejak kemarin malam",
			Status:      models.ComplaintPending,
		},
	}
}
