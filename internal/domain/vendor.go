package domain

import (
	"net/mail"
	"time"
)

type VendorStatus string

const (
	VendorPaid    VendorStatus = "paid"
	VendorPending VendorStatus = "pending"
	VendorOverdue VendorStatus = "overdue"
)

func ParseVendorStatus(s string) (VendorStatus, bool) {
	switch VendorStatus(s) {
	case VendorPaid, VendorPending, VendorOverdue:
		return VendorStatus(s), true
	}
	return "", false
}

type Vendor struct {
	ID        string        `json:"id"`
	EventID   string        `json:"eventId"`
	Name      string        `json:"name"`
	Category  SpendCategory `json:"category"`
	Contact   *string       `json:"contact,omitempty"`
	Phone     *string       `json:"phone,omitempty"`
	Email     *string       `json:"email,omitempty"`
	Value     *float64      `json:"value,omitempty"`
	Status    VendorStatus  `json:"status"`
	Notes     *string       `json:"notes,omitempty"`
	Rating    *int          `json:"rating,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type CreateVendorRequest struct {
	EventID  string        `json:"eventId"`
	Name     string        `json:"name"`
	Category SpendCategory `json:"category"`
	Contact  *string       `json:"contact,omitempty"`
	Phone    *string       `json:"phone,omitempty"`
	Email    *string       `json:"email,omitempty"`
	Value    *float64      `json:"value,omitempty"`
	Notes    *string       `json:"notes,omitempty"`
	Rating   *int          `json:"rating,omitempty"`
}

func (r *CreateVendorRequest) Validate() error {
	var v ValidationError
	if r.EventID == "" {
		v.Add("eventId", "event id is required")
	}
	if len(r.Name) < 2 || len(r.Name) > 100 {
		v.Add("name", "vendor name must be between 2 and 100 characters")
	}
	if _, ok := ParseSpendCategory(string(r.Category)); !ok {
		v.Add("category", "invalid category")
	}
	if r.Email != nil && *r.Email != "" {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			v.Add("email", "invalid email")
		}
	}
	if r.Value != nil {
		if *r.Value <= 0 {
			v.Add("value", "value must be positive")
		} else if *r.Value > MaxMoneyValue {
			v.Add("value", "value too high")
		}
	}
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		v.Add("rating", "rating must be between 1 and 5")
	}
	return v.OrNil()
}

type VendorPatch struct {
	Name     *string        `json:"name,omitempty"`
	Category *SpendCategory `json:"category,omitempty"`
	Contact  *string        `json:"contact,omitempty"`
	Phone    *string        `json:"phone,omitempty"`
	Email    *string        `json:"email,omitempty"`
	Value    *float64       `json:"value,omitempty"`
	Status   *VendorStatus  `json:"status,omitempty"`
	Notes    *string        `json:"notes,omitempty"`
	Rating   *int           `json:"rating,omitempty"`
}

func (p *VendorPatch) Validate() error {
	var v ValidationError
	if p.Name != nil && (len(*p.Name) < 2 || len(*p.Name) > 100) {
		v.Add("name", "vendor name must be between 2 and 100 characters")
	}
	if p.Category != nil {
		if _, ok := ParseSpendCategory(string(*p.Category)); !ok {
			v.Add("category", "invalid category")
		}
	}
	if p.Email != nil && *p.Email != "" {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			v.Add("email", "invalid email")
		}
	}
	if p.Value != nil {
		if *p.Value <= 0 {
			v.Add("value", "value must be positive")
		} else if *p.Value > MaxMoneyValue {
			v.Add("value", "value too high")
		}
	}
	if p.Status != nil {
		if _, ok := ParseVendorStatus(string(*p.Status)); !ok {
			v.Add("status", "invalid status")
		}
	}
	if p.Rating != nil && (*p.Rating < 1 || *p.Rating > 5) {
		v.Add("rating", "rating must be between 1 and 5")
	}
	return v.OrNil()
}

type VendorFilters struct {
	Status   *VendorStatus
	Category *SpendCategory
	Search   string
}

// VendorStatusCount buckets vendors by payment status. Total reflects every
// fetched row, including rows whose status matches none of the three buckets.
type VendorStatusCount struct {
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
	Total   int `json:"total"`
}

type VendorStats struct {
	Total        int     `json:"total"`
	Paid         int     `json:"paid"`
	Pending      int     `json:"pending"`
	Overdue      int     `json:"overdue"`
	TotalValue   float64 `json:"totalValue"`
	PaidValue    float64 `json:"paidValue"`
	PendingValue float64 `json:"pendingValue"`
}
