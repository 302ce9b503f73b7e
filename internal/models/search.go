package models

// Search result categories, in the fixed order results are returned.
const (
	CategoryProfiles     = "profiles"
	CategoryJoinRequests = "join_requests"
	CategoryEvents       = "events"
	CategoryNews         = "news"
	CategoryLibrary      = "library"
)

// SearchHit is one categorized match from the console-wide search.
type SearchHit struct {
	Category string `json:"category"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	// Target is the console navigation path for the hit's category.
	Target string `json:"target"`
}
