package analytics

import (
	"sort"
	"strings"

	"github.com/noah-isme/uks-api/internal/models"
)

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func normalizeSearch(search string) string {
	return strings.ToLower(strings.TrimSpace(search))
}

// FilterHealthReport applies class, date and search (student name or notes).
func FilterHealthReport(records []models.HealthRecord, filter models.ReportFilter) []models.HealthRecord {
	search := normalizeSearch(filter.Search)
	result := make([]models.HealthRecord, 0, len(records))
	for _, record := range records {
		if filter.Class != "" && record.Class != filter.Class {
			continue
		}
		if filter.Date != "" && record.Date != filter.Date {
			continue
		}
		if search != "" && !contains(record.StudentName, search) && !contains(record.Notes, search) {
			continue
		}
		result = append(result, record)
	}
	return result
}

// FilterComplaintReport applies class, date and search over student name, title,
// description and response message.
func FilterComplaintReport(complaints []models.Complaint, filter models.ReportFilter) []models.Complaint {
	search := normalizeSearch(filter.Search)
	result := make([]models.Complaint, 0, len(complaints))
	for _, complaint := range complaints {
		if filter.Class != "" && complaint.Class != filter.Class {
			continue
		}
		if filter.Date != "" && complaint.Date != filter.Date {
			continue
		}
		if search != "" && !complaintMatches(complaint, search, true) {
			continue
		}
		result = append(result, complaint)
	}
	return result
}

func complaintMatches(c models.Complaint, search string, includeResponse bool) bool {
	if contains(c.StudentName, search) || contains(c.Title, search) || contains(c.Description, search) {
		return true
	}
	return includeResponse && c.Response != nil && contains(c.Response.Message, search)
}

// SearchComplaints matches student name, title or description.
func SearchComplaints(complaints []models.Complaint, search string) []models.Complaint {
	search = normalizeSearch(search)
	if search == "" {
		return complaints
	}
	result := make([]models.Complaint, 0, len(complaints))
	for _, complaint := range complaints {
		if complaintMatches(complaint, search, false) {
			result = append(result, complaint)
		}
	}
	return result
}

// SearchRecordsByStudent matches the student name.
func SearchRecordsByStudent(records []models.HealthRecord, search string) []models.HealthRecord {
	search = normalizeSearch(search)
	if search == "" {
		return records
	}
	result := make([]models.HealthRecord, 0, len(records))
	for _, record := range records {
		if contains(record.StudentName, search) {
			result = append(result, record)
		}
	}
	return result
}

// SplitByStatus separates pending from responded complaints, preserving order.
func SplitByStatus(complaints []models.Complaint) (pending, responded []models.Complaint) {
	pending = make([]models.Complaint, 0)
	responded = make([]models.Complaint, 0)
	for _, complaint := range complaints {
		if complaint.Status == models.ComplaintResponded {
			responded = append(responded, complaint)
		} else {
			pending = append(pending, complaint)
		}
	}
	return pending, responded
}

// AvailableClasses lists the distinct classes of both collections, sorted.
func AvailableClasses(records []models.HealthRecord, complaints []models.Complaint) []string {
	seen := make(map[string]struct{})
	for _, record := range records {
		seen[record.Class] = struct{}{}
	}
	for _, complaint := range complaints {
		seen[complaint.Class] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// AvailableDates lists the distinct dates of both collections, newest first.
func AvailableDates(records []models.HealthRecord, complaints []models.Complaint) []string {
	seen := make(map[string]struct{})
	for _, record := range records {
		seen[record.Date] = struct{}{}
	}
	for _, complaint := range complaints {
		seen[complaint.Date] = struct{}{}
	}
	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dateBefore(dates[j], dates[i])
	})
	return dates
}
