package domain

// KPIs is the summary block shown at the top of an event's dashboard.
// DaysUntilWedding is a raw millisecond-difference ceiling: a past wedding
// date yields a negative number, and the value shifts with the time of day
// rather than at midnight.
type KPIs struct {
	DaysUntilWedding int     `json:"daysUntilWedding"`
	BudgetUsed       float64 `json:"budgetUsed"`
	BudgetTotal      float64 `json:"budgetTotal"`
	TotalGuests      int     `json:"totalGuests"`
	ConfirmedGuests  int     `json:"confirmedGuests"`
	PendingTasks     int     `json:"pendingTasks"`
}

// AreaProgress reports checklist completion for one category. Categories with
// no tasks are absent from the dashboard, not zero-filled.
type AreaProgress struct {
	Category   TaskCategory `json:"category"`
	Total      int          `json:"total"`
	Completed  int          `json:"completed"`
	Percentage int          `json:"percentage"`
}
