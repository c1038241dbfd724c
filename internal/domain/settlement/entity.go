package settlement

import "time"

// Record is one travel expense line. DisplayNo orders the lines of a single day.
type Record struct {
	TNo            int64
	EmployeeID     string
	DisplayNo      int
	Date           time.Time
	Form           Form
	Method         Method
	Departure      string
	Arrival        string
	Transportation string
	Cost           int64
	Total          int64
	Note           *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ComputeTotal returns cost, doubled for a round trip.
func ComputeTotal(cost int64, m Method) int64 {
	return cost * m.Multiplier()
}

// ApplyTotal sets Total from Cost and Method.
func (r *Record) ApplyTotal() {
	r.Total = ComputeTotal(r.Cost, r.Method)
}

func (r Record) SameDay(o Record) bool {
	return r.EmployeeID == o.EmployeeID && r.Date.Equal(o.Date)
}
