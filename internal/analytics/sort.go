package analytics

import (
	"sort"

	"github.com/noah-isme/uks-api/internal/models"
)

// RecordsNewestFirst returns a copy sorted by date descending; equal dates keep insertion order.
func RecordsNewestFirst(records []models.HealthRecord) []models.HealthRecord {
	sorted := append([]models.HealthRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateBefore(sorted[j].Date, sorted[i].Date)
	})
	return sorted
}

// ComplaintsNewestFirst returns a copy sorted by date descending; equal dates keep insertion order.
func ComplaintsNewestFirst(complaints []models.Complaint) []models.Complaint {
	sorted := append([]models.Complaint(nil), complaints...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateBefore(sorted[j].Date, sorted[i].Date)
	})
	return sorted
}

// LatestRecord returns the newest record, or nil.
func LatestRecord(records []models.HealthRecord) *models.HealthRecord {
	if len(records) == 0 {
		return nil
	}
	latest := RecordsNewestFirst(records)[0]
	return &latest
}

// LatestComplaint returns the newest complaint, or nil.
func LatestComplaint(complaints []models.Complaint) *models.Complaint {
	if len(complaints) == 0 {
		return nil
	}
	latest := ComplaintsNewestFirst(complaints)[0]
	return &latest
}
