package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventInProgress EventStatus = "in-progress"
	EventCompleted  EventStatus = "completed"
	EventCancelled  EventStatus = "cancelled"
)

func ParseEventStatus(s string) (EventStatus, bool) {
	switch EventStatus(s) {
	case EventInProgress, EventCompleted, EventCancelled:
		return EventStatus(s), true
	}
	return "", false
}

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

type Event struct {
	ID              string      `json:"id"`
	EventType       string      `json:"eventType"`
	Date            time.Time   `json:"date"`
	Venue           *string     `json:"venue,omitempty"`
	Budget          *float64    `json:"budget,omitempty"`
	Status          EventStatus `json:"status"`
	InviteCode      string      `json:"inviteCode"`
	OverallProgress int         `json:"overallProgress"`
	OwnerID         string      `json:"ownerId"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// EventMember links a user to an event with a role. At most one row may exist
// per (event, user) pair; the storage layer enforces this with a unique
// constraint.
type EventMember struct {
	ID        string     `json:"id"`
	EventID   string     `json:"eventId"`
	UserID    string     `json:"userId"`
	Role      MemberRole `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

type MemberInfo struct {
	User     Profile    `json:"user"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}

// EventDetails is an event annotated with the caller's role, the owner
// profile and the full member list.
type EventDetails struct {
	Event
	Owner    Profile      `json:"owner"`
	Members  []MemberInfo `json:"members"`
	UserRole MemberRole   `json:"userRole"`
}

type CreateEventRequest struct {
	EventType string    `json:"eventType"`
	Date      time.Time `json:"date"`
	Venue     *string   `json:"venue,omitempty"`
	Budget    *float64  `json:"budget,omitempty"`
}

func (r *CreateEventRequest) Validate() error {
	var v ValidationError
	if r.EventType == "" {
		v.Add("eventType", "event type is required")
	}
	if r.Date.IsZero() {
		v.Add("date", "date is required")
	}
	if r.Budget != nil && *r.Budget <= 0 {
		v.Add("budget", "budget must be positive")
	}
	return v.OrNil()
}

// EventPatch is a partial update; nil fields are left unchanged.
type EventPatch struct {
	EventType *string      `json:"eventType,omitempty"`
	Date      *time.Time   `json:"date,omitempty"`
	Venue     *string      `json:"venue,omitempty"`
	Status    *EventStatus `json:"status,omitempty"`
	Budget    *float64     `json:"budget,omitempty"`
}

func (p *EventPatch) Validate() error {
	var v ValidationError
	if p.EventType != nil && *p.EventType == "" {
		v.Add("eventType", "event type must not be empty")
	}
	if p.Status != nil {
		if _, ok := ParseEventStatus(string(*p.Status)); !ok {
			v.Add("status", "invalid status")
		}
	}
	if p.Budget != nil && *p.Budget <= 0 {
		v.Add("budget", "budget must be positive")
	}
	return v.OrNil()
}

// Changed lists the fields the patch touches, for change notifications.
func (p *EventPatch) Changed() []string {
	var fields []string
	if p.EventType != nil {
		fields = append(fields, "eventType")
	}
	if p.Date != nil {
		fields = append(fields, "date")
	}
	if p.Venue != nil {
		fields = append(fields, "venue")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.Budget != nil {
		fields = append(fields, "budget")
	}
	return fields
}

type JoinEventRequest struct {
	InviteCode string `json:"inviteCode"`
}

func (r *JoinEventRequest) Validate() error {
	var v ValidationError
	if _, err := uuid.Parse(r.InviteCode); err != nil {
		v.Add("inviteCode", "invalid invite code")
	}
	return v.OrNil()
}
