package domain

import (
	"regexp"
	"time"
)

type TimelineStatus string

const (
	TimelinePending    TimelineStatus = "pending"
	TimelineInProgress TimelineStatus = "in_progress"
	TimelineCompleted  TimelineStatus = "completed"
)

func ParseTimelineStatus(s string) (TimelineStatus, bool) {
	switch TimelineStatus(s) {
	case TimelinePending, TimelineInProgress, TimelineCompleted:
		return TimelineStatus(s), true
	}
	return "", false
}

var timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type TimelineTask struct {
	ID          string         `json:"id"`
	EventID     string         `json:"eventId"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Date        time.Time      `json:"date"`
	Time        *string        `json:"time,omitempty"` // HH:MM
	Status      TimelineStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type CreateTimelineTaskRequest struct {
	EventID     string    `json:"eventId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Time        *string   `json:"time,omitempty"`
}

func (r *CreateTimelineTaskRequest) Validate() error {
	var v ValidationError
	if r.EventID == "" {
		v.Add("eventId", "event id is required")
	}
	if r.Title == "" {
		v.Add("title", "title is required")
	}
	if r.Date.IsZero() {
		v.Add("date", "date is required")
	}
	if r.Time != nil && !timeOfDayRe.MatchString(*r.Time) {
		v.Add("time", "time must be in HH:MM format")
	}
	return v.OrNil()
}

type TimelineTaskPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
	Time        *string         `json:"time,omitempty"`
	Status      *TimelineStatus `json:"status,omitempty"`
}

func (p *TimelineTaskPatch) Validate() error {
	var v ValidationError
	if p.Title != nil && *p.Title == "" {
		v.Add("title", "title must not be empty")
	}
	if p.Time != nil && !timeOfDayRe.MatchString(*p.Time) {
		v.Add("time", "time must be in HH:MM format")
	}
	if p.Status != nil {
		if _, ok := ParseTimelineStatus(string(*p.Status)); !ok {
			v.Add("status", "invalid status")
		}
	}
	return v.OrNil()
}

type TimelineFilters struct {
	Status *TimelineStatus
	Search string
}

type TimelineStats struct {
	Total            int `json:"total"`
	Completed        int `json:"completed"`
	InProgress       int `json:"inProgress"`
	Pending          int `json:"pending"`
	DaysUntilWedding int `json:"daysUntilWedding"`
}
