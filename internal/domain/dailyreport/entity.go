package dailyreport

import "time"

// Kind is the reporting period of a post.
type Kind string

const (
	KindDaily     Kind = "daily"
	KindWeekly    Kind = "weekly"
	KindMonthly   Kind = "monthly"
	KindQuarterly Kind = "quarterly"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindDaily, KindWeekly, KindMonthly, KindQuarterly:
		return true
	}
	return false
}

// Post is a report posted to a room for a date.
type Post struct {
	ID         string
	RoomID     string
	EmployeeID string
	Kind       Kind
	Date       time.Time
	Sections   []Section
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Section is one titled part of a post with its own review status.
type Section struct {
	ID           string
	PostID       string
	SortNo       int
	Title        string
	Content      string
	Status       Status
	RejectReason *string
	ReviewedBy   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Progress summarises the statuses of a post's sections.
func (p Post) Progress() map[Status]int {
	out := make(map[Status]int, len(p.Sections))
	for _, s := range p.Sections {
		out[s.Status]++
	}
	return out
}
