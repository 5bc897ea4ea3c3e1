package domain

import (
	"net/mail"
	"time"
)

type GuestType string

const (
	GuestAdult GuestType = "adult"
	GuestChild GuestType = "child"
)

func ParseGuestType(s string) (GuestType, bool) {
	switch GuestType(s) {
	case GuestAdult, GuestChild:
		return GuestType(s), true
	}
	return "", false
}

type GuestSide string

const (
	SideGroom       GuestSide = "groom"
	SideBride       GuestSide = "bride"
	SideGroomFamily GuestSide = "groom-family"
	SideBrideFamily GuestSide = "bride-family"
	SideFriends     GuestSide = "friends"
)

func ParseGuestSide(s string) (GuestSide, bool) {
	switch GuestSide(s) {
	case SideGroom, SideBride, SideGroomFamily, SideBrideFamily, SideFriends:
		return GuestSide(s), true
	}
	return "", false
}

type GuestStatus string

const (
	GuestPending   GuestStatus = "pending"
	GuestConfirmed GuestStatus = "confirmed"
	GuestDeclined  GuestStatus = "declined"
)

func ParseGuestStatus(s string) (GuestStatus, bool) {
	switch GuestStatus(s) {
	case GuestPending, GuestConfirmed, GuestDeclined:
		return GuestStatus(s), true
	}
	return "", false
}

type Guest struct {
	ID           string      `json:"id"`
	EventID      string      `json:"eventId"`
	Name         string      `json:"name"`
	Email        *string     `json:"email,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	Type         GuestType   `json:"type"`
	Side         GuestSide   `json:"side"`
	Status       GuestStatus `json:"status"`
	TableNumber  *int        `json:"tableNumber,omitempty"`
	DietaryNotes *string     `json:"dietaryNotes,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

type CreateGuestRequest struct {
	EventID      string      `json:"eventId"`
	Name         string      `json:"name"`
	Email        *string     `json:"email,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	Type         GuestType   `json:"type"`
	Side         GuestSide   `json:"side"`
	Status       GuestStatus `json:"status"`
	TableNumber  *int        `json:"tableNumber,omitempty"`
	DietaryNotes *string     `json:"dietaryNotes,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
}

func (r *CreateGuestRequest) Normalize() {
	if r.Type == "" {
		r.Type = GuestAdult
	}
	if r.Side == "" {
		r.Side = SideFriends
	}
	if r.Status == "" {
		r.Status = GuestPending
	}
}

func (r *CreateGuestRequest) Validate() error {
	var v ValidationError
	if r.EventID == "" {
		v.Add("eventId", "event id is required")
	}
	if r.Name == "" {
		v.Add("name", "name is required")
	}
	if r.Email != nil && *r.Email != "" {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			v.Add("email", "invalid email")
		}
	}
	if _, ok := ParseGuestType(string(r.Type)); !ok {
		v.Add("type", "invalid guest type")
	}
	if _, ok := ParseGuestSide(string(r.Side)); !ok {
		v.Add("side", "invalid guest side")
	}
	if _, ok := ParseGuestStatus(string(r.Status)); !ok {
		v.Add("status", "invalid guest status")
	}
	if r.TableNumber != nil && *r.TableNumber <= 0 {
		v.Add("tableNumber", "table number must be positive")
	}
	return v.OrNil()
}

type GuestPatch struct {
	Name         *string      `json:"name,omitempty"`
	Email        *string      `json:"email,omitempty"`
	Phone        *string      `json:"phone,omitempty"`
	Type         *GuestType   `json:"type,omitempty"`
	Side         *GuestSide   `json:"side,omitempty"`
	Status       *GuestStatus `json:"status,omitempty"`
	TableNumber  *int         `json:"tableNumber,omitempty"`
	DietaryNotes *string      `json:"dietaryNotes,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
}

func (p *GuestPatch) Validate() error {
	var v ValidationError
	if p.Name != nil && *p.Name == "" {
		v.Add("name", "name must not be empty")
	}
	if p.Email != nil && *p.Email != "" {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			v.Add("email", "invalid email")
		}
	}
	if p.Type != nil {
		if _, ok := ParseGuestType(string(*p.Type)); !ok {
			v.Add("type", "invalid guest type")
		}
	}
	if p.Side != nil {
		if _, ok := ParseGuestSide(string(*p.Side)); !ok {
			v.Add("side", "invalid guest side")
		}
	}
	if p.Status != nil {
		if _, ok := ParseGuestStatus(string(*p.Status)); !ok {
			v.Add("status", "invalid guest status")
		}
	}
	if p.TableNumber != nil && *p.TableNumber <= 0 {
		v.Add("tableNumber", "table number must be positive")
	}
	return v.OrNil()
}

type GuestFilters struct {
	Status *GuestStatus
	Type   *GuestType
	Side   *GuestSide
	Search string
}

type GuestStats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
	Declined  int `json:"declined"`
}
