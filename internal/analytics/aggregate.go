// Package analytics derives dashboard views from repository snapshots.
// Every function is pure and recomputed on each read.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/noah-isme/uks-api/internal/models"
)

// roundHalfUp rounds to the given decimals with halves going up.
func roundHalfUp(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Floor(value*scale+0.5) / scale
}

// dateBefore orders calendar dates; unparsable dates fall back to string order.
func dateBefore(a, b string) bool {
	ta, errA := time.Parse(models.DateLayout, a)
	tb, errB := time.Parse(models.DateLayout, b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ta.Before(tb)
}

type dateGroup struct {
	date    string
	records []models.HealthRecord
}

// groupByDate keeps first-seen date order.
func groupByDate(records []models.HealthRecord) []*dateGroup {
	index := make(map[string]*dateGroup)
	groups := make([]*dateGroup, 0)
	for _, record := range records {
		group, ok := index[record.Date]
		if !ok {
			group = &dateGroup{date: record.Date}
			index[record.Date] = group
			groups = append(groups, group)
		}
		group.records = append(group.records, record)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return dateBefore(groups[i].date, groups[j].date)
	})
	return groups
}

// Timeline groups records per date with a 1-decimal mean temperature, ascending by date.
func Timeline(records []models.HealthRecord) []models.TimelinePoint {
	groups := groupByDate(records)
	points := make([]models.TimelinePoint, 0, len(groups))
	for _, group := range groups {
		total := 0.0
		for _, record := range group.records {
			total += record.Temperature
		}
		points = append(points, models.TimelinePoint{
			Date:    group.date,
			Count:   len(group.records),
			AvgTemp: roundHalfUp(total/float64(len(group.records)), 1),
		})
	}
	return points
}

// ClassDistribution counts records per class in first-seen order.
func ClassDistribution(records []models.HealthRecord) []models.ClassCount {
	index := make(map[string]int)
	counts := make([]models.ClassCount, 0)
	for _, record := range records {
		i, ok := index[record.Class]
		if !ok {
			i = len(counts)
			index[record.Class] = i
			counts = append(counts, models.ClassCount{Class: record.Class})
		}
		counts[i].Count++
	}
	return counts
}

// StatusCounts returns the number of pending and responded complaints.
func StatusCounts(complaints []models.Complaint) (pending, responded int) {
	for _, complaint := range complaints {
		switch complaint.Status {
		case models.ComplaintResponded:
			responded++
		case models.ComplaintPending:
			pending++
		}
	}
	return pending, responded
}

// ResponseRate is responded/total*100, and 0 for an empty set.
func ResponseRate(complaints []models.Complaint) float64 {
	if len(complaints) == 0 {
		return 0
	}
	_, responded := StatusCounts(complaints)
	return float64(responded) / float64(len(complaints)) * 100
}

// ClassAverages averages temperature to 1 decimal and weight and height to integers.
// An empty set yields zeros.
func ClassAverages(records []models.HealthRecord) models.HealthAverages {
	if len(records) == 0 {
		return models.HealthAverages{}
	}
	var temp, weight, height float64
	for _, record := range records {
		temp += record.Temperature
		weight += record.Weight
		height += record.Height
	}
	n := float64(len(records))
	return models.HealthAverages{
		AvgTemp:   roundHalfUp(temp/n, 1),
		AvgWeight: roundHalfUp(weight/n, 0),
		AvgHeight: roundHalfUp(height/n, 0),
	}
}

// DailyClassAverages applies ClassAverages per date, ascending by date.
func DailyClassAverages(records []models.HealthRecord) []models.DailyAverages {
	groups := groupByDate(records)
	result := make([]models.DailyAverages, 0, len(groups))
	for _, group := range groups {
		result = append(result, models.DailyAverages{
			Date:           group.date,
			HealthAverages: ClassAverages(group.records),
		})
	}
	return result
}

// LatestPerStudent keeps one record per student with the greatest date, in
// first-seen student order. Among records sharing the latest date the earliest
// inserted one is kept.
func LatestPerStudent(records []models.HealthRecord) []models.HealthRecord {
	index := make(map[string]int)
	latest := make([]models.HealthRecord, 0)
	for _, record := range records {
		i, ok := index[record.StudentID]
		if !ok {
			index[record.StudentID] = len(latest)
			latest = append(latest, record)
			continue
		}
		if dateBefore(latest[i].Date, record.Date) {
			latest[i] = record
		}
	}
	return latest
}
