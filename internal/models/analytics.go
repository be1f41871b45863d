package models

// TimelinePoint is one date group of health records.
type TimelinePoint struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	AvgTemp float64 `json:"avgTemp"`
}

// ClassCount is the number of health records for a class.
type ClassCount struct {
	Class string `json:"kelas"`
	Count int    `json:"count"`
}

// HealthAverages summarises a set of health records.
type HealthAverages struct {
	AvgTemp   float64 `json:"avgTemp"`
	AvgWeight float64 `json:"avgWeight"`
	AvgHeight float64 `json:"avgHeight"`
}

// DailyAverages is HealthAverages for a single date.
type DailyAverages struct {
	Date string `json:"date"`
	HealthAverages
}

// ReportType selects the dataset of the admin reports page.
type ReportType string

const (
	ReportHealth     ReportType = "health"
	ReportComplaints ReportType = "complaints"
)

// Valid reports whether the type is known.
func (t ReportType) Valid() bool {
	return t == ReportHealth || t == ReportComplaints
}

// ReportFilter narrows the admin reports view. Empty fields match everything.
type ReportFilter struct {
	Type   ReportType
	Class  string
	Date   string
	Search string
}
