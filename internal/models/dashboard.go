package models

import "time"

// DashboardSnapshot is the console-wide statistics block shown on the
// admin dashboard and analytics pages. It is pure read-aggregation and
// safe to recompute at any time.
type DashboardSnapshot struct {
	TotalMembers     int           `json:"total_members"`
	NewMembers24h    int           `json:"new_members_24h"`
	Events           int           `json:"events"`
	News             int           `json:"news"`
	LibraryPaths     int           `json:"library_paths"`
	OpenJoinRequests int           `json:"open_join_requests"`
	RecentMembers    []Profile     `json:"recent_members"`
	RecentRequests   []JoinRequest `json:"recent_requests"`
	JoinsByDay       []DailyPoint  `json:"joins_by_day"`
	RefreshedAt      time.Time     `json:"refreshed_at"`
}

// DailyPoint is one bar of the 7-day join-request histogram.
type DailyPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}
