package models

import "time"

// Content kinds managed by the admin console. The three kinds have
// their own field sets but share the archive/restore lifecycle.
const (
	KindNews    = "news"
	KindEvent   = "events"
	KindLibrary = "library"
)

// News is a published article. At most one news row may be featured at
// any time.
type News struct {
	ID         string     `json:"id"`
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary,omitempty"`
	Category   string     `json:"category,omitempty"`
	Tag        string     `json:"tag,omitempty"`
	Date       string     `json:"date,omitempty"`
	ReadTime   string     `json:"read_time,omitempty"`
	Body       string     `json:"body,omitempty"`
	IsFeatured bool       `json:"is_featured"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Event is a club event, upcoming or past.
type Event struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Date            string     `json:"date"`
	Time            string     `json:"time,omitempty"`
	Location        string     `json:"location,omitempty"`
	Category        string     `json:"category,omitempty"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status,omitempty"`
	RegistrationURL string     `json:"registration_url,omitempty"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// LibraryPath is a learning path in the library.
type LibraryPath struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	Modules     int        `json:"modules"`
	Difficulty  string     `json:"difficulty,omitempty"`
	Instructors int        `json:"instructors"`
	Rating      float64    `json:"rating"`
	Students    int        `json:"students"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ContentDraft is the union request shape for creating or updating any
// content kind; which fields are mandatory depends on the kind.
type ContentDraft struct {
	// News fields.
	Slug       string `json:"slug,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Tag        string `json:"tag,omitempty"`
	ReadTime   string `json:"read_time,omitempty"`
	Body       string `json:"body,omitempty"`
	IsFeatured bool   `json:"is_featured,omitempty"`

	// Shared fields.
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`

	// Event fields.
	Time            string `json:"time,omitempty"`
	Location        string `json:"location,omitempty"`
	Description     string `json:"description,omitempty"`
	Status          string `json:"status,omitempty"`
	RegistrationURL string `json:"registration_url,omitempty"`

	// Library fields.
	Modules     int     `json:"modules,omitempty"`
	Difficulty  string  `json:"difficulty,omitempty"`
	Instructors int     `json:"instructors,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Students    int     `json:"students,omitempty"`
}

// ContentCollection is everything the admin content page works with.
type ContentCollection struct {
	News    []News        `json:"news"`
	Events  []Event       `json:"events"`
	Library []LibraryPath `json:"library"`
}
