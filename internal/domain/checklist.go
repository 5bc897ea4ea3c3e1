package domain

import "time"

type TaskCategory string

const (
	CategoryVenue       TaskCategory = "venue"
	CategoryCatering    TaskCategory = "catering"
	CategoryDecoration  TaskCategory = "decoration"
	CategoryPhotography TaskCategory = "photography"
	CategoryMusic       TaskCategory = "music"
	CategoryAttire      TaskCategory = "attire"
	CategoryInvitations TaskCategory = "invitations"
	CategoryOther       TaskCategory = "other"
)

func ParseTaskCategory(s string) (TaskCategory, bool) {
	switch TaskCategory(s) {
	case CategoryVenue, CategoryCatering, CategoryDecoration, CategoryPhotography,
		CategoryMusic, CategoryAttire, CategoryInvitations, CategoryOther:
		return TaskCategory(s), true
	}
	return "", false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func ParseTaskPriority(s string) (TaskPriority, bool) {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return TaskPriority(s), true
	}
	return "", false
}

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case TaskPending, TaskCompleted:
		return TaskStatus(s), true
	}
	return "", false
}

type ChecklistTask struct {
	ID          string       `json:"id"`
	EventID     string       `json:"eventId"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Category    TaskCategory `json:"category"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type CreateChecklistTaskRequest struct {
	EventID     string       `json:"eventId"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Category    TaskCategory `json:"category"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
}

func (r *CreateChecklistTaskRequest) Normalize() {
	if r.Category == "" {
		r.Category = CategoryOther
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
}

func (r *CreateChecklistTaskRequest) Validate() error {
	var v ValidationError
	if r.EventID == "" {
		v.Add("eventId", "event id is required")
	}
	if r.Title == "" {
		v.Add("title", "title is required")
	}
	if _, ok := ParseTaskCategory(string(r.Category)); !ok {
		v.Add("category", "invalid category")
	}
	if _, ok := ParseTaskPriority(string(r.Priority)); !ok {
		v.Add("priority", "invalid priority")
	}
	return v.OrNil()
}

type ChecklistTaskPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *TaskCategory `json:"category,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
}

func (p *ChecklistTaskPatch) Validate() error {
	var v ValidationError
	if p.Title != nil && *p.Title == "" {
		v.Add("title", "title must not be empty")
	}
	if p.Category != nil {
		if _, ok := ParseTaskCategory(string(*p.Category)); !ok {
			v.Add("category", "invalid category")
		}
	}
	if p.Priority != nil {
		if _, ok := ParseTaskPriority(string(*p.Priority)); !ok {
			v.Add("priority", "invalid priority")
		}
	}
	if p.Status != nil {
		if _, ok := ParseTaskStatus(string(*p.Status)); !ok {
			v.Add("status", "invalid status")
		}
	}
	return v.OrNil()
}

type ChecklistFilters struct {
	Status   *TaskStatus
	Category *TaskCategory
	Priority *TaskPriority
	Search   string
}

type ChecklistStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	Percentage int `json:"percentage"`
}

// UpcomingTask is the projection returned by the dashboard's upcoming-tasks
// view.
type UpcomingTask struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	DueDate  time.Time    `json:"dueDate"`
	Priority TaskPriority `json:"priority"`
	Category TaskCategory `json:"category"`
}
