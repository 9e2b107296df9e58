package viewmodel

import "github.com/Veraticus/grievance-intel/internal/model"

// ClearanceRatePlaceholder is shown until the backend reports a clearance rate.
const ClearanceRatePlaceholder = "0%"

// StatsView is the stats card data.
type StatsView struct {
	ClearanceRate   string
	TotalGrievances int
}

// BuildStats derives the stats cards from the current list.
func BuildStats(grievances []model.Grievance) StatsView {
	return StatsView{
		TotalGrievances: len(grievances),
		ClearanceRate:   ClearanceRatePlaceholder,
	}
}
