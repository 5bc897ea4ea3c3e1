package domain

import "time"

// MaxMoneyValue is the largest value accepted for budget and vendor amounts,
// matching the NUMERIC(8,2) columns in the schema.
const MaxMoneyValue = 999999.99

// SpendCategory is shared by budgets and vendors.
type SpendCategory string

const (
	SpendFotografia    SpendCategory = "Fotografia"
	SpendDJ            SpendCategory = "DJ"
	SpendLocal         SpendCategory = "Local"
	SpendBuffet        SpendCategory = "Buffet"
	SpendDecoracao     SpendCategory = "Decoracao"
	SpendConvites      SpendCategory = "Convites"
	SpendFlores        SpendCategory = "Flores"
	SpendVestidos      SpendCategory = "Vestidos"
	SpendBolo          SpendCategory = "Bolo"
	SpendLembrancinhas SpendCategory = "Lembrancinhas"
	SpendTransporte    SpendCategory = "Transporte"
	SpendOutro         SpendCategory = "Outro"
)

func ParseSpendCategory(s string) (SpendCategory, bool) {
	switch SpendCategory(s) {
	case SpendFotografia, SpendDJ, SpendLocal, SpendBuffet, SpendDecoracao,
		SpendConvites, SpendFlores, SpendVestidos, SpendBolo,
		SpendLembrancinhas, SpendTransporte, SpendOutro:
		return SpendCategory(s), true
	}
	return "", false
}

type BudgetStatus string

const (
	BudgetPending  BudgetStatus = "pending"
	BudgetApproved BudgetStatus = "approved"
	BudgetRejected BudgetStatus = "rejected"
)

func ParseBudgetStatus(s string) (BudgetStatus, bool) {
	switch BudgetStatus(s) {
	case BudgetPending, BudgetApproved, BudgetRejected:
		return BudgetStatus(s), true
	}
	return "", false
}

// Budget is a vendor quote tracked against the event's spending plan. Money
// is stored as fixed-point decimal and coerced to float64 for JSON output;
// this is a planning tool, not a ledger.
type Budget struct {
	ID          string        `json:"id"`
	EventID     string        `json:"eventId"`
	VendorName  string        `json:"vendorName"`
	Category    SpendCategory `json:"category"`
	Description *string       `json:"description,omitempty"`
	Value       float64       `json:"value"`
	Status      BudgetStatus  `json:"status"`
	ValidUntil  *time.Time    `json:"validUntil,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type CreateBudgetRequest struct {
	EventID     string        `json:"eventId"`
	VendorName  string        `json:"vendorName"`
	Category    SpendCategory `json:"category"`
	Description *string       `json:"description,omitempty"`
	Value       float64       `json:"value"`
	ValidUntil  *time.Time    `json:"validUntil,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
}

func (r *CreateBudgetRequest) Validate() error {
	var v ValidationError
	if r.EventID == "" {
		v.Add("eventId", "event id is required")
	}
	if len(r.VendorName) < 2 || len(r.VendorName) > 100 {
		v.Add("vendorName", "vendor name must be between 2 and 100 characters")
	}
	if _, ok := ParseSpendCategory(string(r.Category)); !ok {
		v.Add("category", "invalid category")
	}
	if r.Value <= 0 {
		v.Add("value", "value must be positive")
	} else if r.Value > MaxMoneyValue {
		v.Add("value", "value too high")
	}
	return v.OrNil()
}

type BudgetPatch struct {
	VendorName  *string        `json:"vendorName,omitempty"`
	Category    *SpendCategory `json:"category,omitempty"`
	Description *string        `json:"description,omitempty"`
	Value       *float64       `json:"value,omitempty"`
	Status      *BudgetStatus  `json:"status,omitempty"`
	ValidUntil  *time.Time     `json:"validUntil,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

func (p *BudgetPatch) Validate() error {
	var v ValidationError
	if p.VendorName != nil && (len(*p.VendorName) < 2 || len(*p.VendorName) > 100) {
		v.Add("vendorName", "vendor name must be between 2 and 100 characters")
	}
	if p.Category != nil {
		if _, ok := ParseSpendCategory(string(*p.Category)); !ok {
			v.Add("category", "invalid category")
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
		if _, ok := ParseBudgetStatus(string(*p.Status)); !ok {
			v.Add("status", "invalid status")
		}
	}
	return v.OrNil()
}

type BudgetFilters struct {
	Status   *BudgetStatus
	Category *SpendCategory
	Search   string
}

type BudgetStats struct {
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	ApprovedValue float64 `json:"approvedValue"`
}

type CategoryTotal struct {
	Category SpendCategory `json:"category"`
	Total    float64       `json:"total"`
}

type BudgetSnapshot struct {
	ByCategory []CategoryTotal `json:"byCategory"`
	Total      float64         `json:"total"`
}
