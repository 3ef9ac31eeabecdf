package loan

import (
	"time"

	"gorm.io/gorm"
)

// State is the overall lifecycle state of a loan. It is strictly derived
// from the four gates plus the return marker (see ComputeState); the column
// exists so SQL can filter on it, and is recomputed on every save.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateActive   State = "active" // external alias of approved, never written here
	StateRejected State = "rejected"
	StateReturned State = "returned"
)

// Unresolved reports whether the loan still holds its asset for purposes of
// the exclusivity invariant: at most one unresolved loan per asset.
func (s State) Unresolved() bool {
	return s == StatePending || s == StateApproved || s == StateActive
}

// CheckedOut reports whether the loan is eligible for return. "active" and
// "approved" both mean checked out; the two labels are never distinguished.
func (s State) CheckedOut() bool {
	return s == StateApproved || s == StateActive
}

type GateStatus string

const (
	GatePending  GateStatus = "pending"
	GateApproved GateStatus = "approved"
	GateRejected GateStatus = "rejected"
)

// Gate names the four approval checkpoints, in sign-off order.
type Gate string

const (
	GateRequesterLead  Gate = "requester_lead"
	GateAssetOwnerLead Gate = "asset_owner_lead"
	GateFacilities     Gate = "facilities"
	GateExecutive      Gate = "executive"
)

// AllGates is the fixed evaluation order.
var AllGates = []Gate{GateRequesterLead, GateAssetOwnerLead, GateFacilities, GateExecutive}

type Loan struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	Code        string `gorm:"size:16;uniqueIndex:ux_loans_code" json:"code"`
	AssetID     string `gorm:"size:32;index:idx_loans_asset" json:"asset_id"`
	RequesterID string `gorm:"size:32;index:idx_loans_requester" json:"requester_id"`

	LoanDate            time.Time  `json:"loan_date"`
	RequestedReturnDate time.Time  `json:"requested_return_date"`
	ActualReturnDate    *time.Time `json:"actual_return_date,omitempty"`

	Reason string `gorm:"type:text" json:"reason"`
	Notes  string `gorm:"type:text" json:"notes"`

	RequesterLeadStatus  GateStatus `gorm:"size:10;default:'pending'" json:"requester_lead_status"`
	RequesterLeadBy      string     `gorm:"size:32" json:"requester_lead_by,omitempty"`
	RequesterLeadAt      *time.Time `json:"requester_lead_at,omitempty"`
	AssetOwnerLeadStatus GateStatus `gorm:"size:10;default:'pending'" json:"asset_owner_lead_status"`
	AssetOwnerLeadBy     string     `gorm:"size:32" json:"asset_owner_lead_by,omitempty"`
	AssetOwnerLeadAt     *time.Time `json:"asset_owner_lead_at,omitempty"`
	FacilitiesStatus     GateStatus `gorm:"size:10;default:'pending'" json:"facilities_status"`
	FacilitiesBy         string     `gorm:"size:32" json:"facilities_by,omitempty"`
	FacilitiesAt         *time.Time `json:"facilities_at,omitempty"`
	ExecutiveStatus      GateStatus `gorm:"size:10;default:'pending'" json:"executive_status"`
	ExecutiveBy          string     `gorm:"size:32" json:"executive_by,omitempty"`
	ExecutiveAt          *time.Time `json:"executive_at,omitempty"`

	State State `gorm:"size:10;default:'pending';index:idx_loans_state" json:"state"`
	// ExclusiveAssetID mirrors AssetID while the loan is unresolved and is
	// NULL otherwise. Its unique index is what makes two concurrent creates
	// for one asset lose deterministically (NULLs never collide). MySQL has
	// no partial unique indexes, hence the mirrored column.
	ExclusiveAssetID *string `gorm:"size:32;uniqueIndex:ux_loans_asset_active" json:"-"`

	StateUpdatedAt time.Time `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// GateState returns the current status of the named gate.
func (l *Loan) GateState(g Gate) GateStatus {
	switch g {
	case GateRequesterLead:
		return l.RequesterLeadStatus
	case GateAssetOwnerLead:
		return l.AssetOwnerLeadStatus
	case GateFacilities:
		return l.FacilitiesStatus
	case GateExecutive:
		return l.ExecutiveStatus
	}
	return ""
}

// SetGate records a gate decision with its approver and timestamp.
func (l *Loan) SetGate(g Gate, st GateStatus, by string, at time.Time) {
	switch g {
	case GateRequesterLead:
		l.RequesterLeadStatus, l.RequesterLeadBy, l.RequesterLeadAt = st, by, &at
	case GateAssetOwnerLead:
		l.AssetOwnerLeadStatus, l.AssetOwnerLeadBy, l.AssetOwnerLeadAt = st, by, &at
	case GateFacilities:
		l.FacilitiesStatus, l.FacilitiesBy, l.FacilitiesAt = st, by, &at
	case GateExecutive:
		l.ExecutiveStatus, l.ExecutiveBy, l.ExecutiveAt = st, by, &at
	}
}

// Snapshot is the gate/state view the approval policy decides on.
type Snapshot struct {
	State State
	Gates map[Gate]GateStatus
}

func (l *Loan) Snapshot() Snapshot {
	gs := make(map[Gate]GateStatus, len(AllGates))
	for _, g := range AllGates {
		gs[g] = l.GateState(g)
	}
	return Snapshot{State: l.State, Gates: gs}
}

// ComputeState derives the overall state from the gates and the return
// marker. Precedence: returned, then rejected, then approved, then pending.
func (l *Loan) ComputeState() State {
	if l.ActualReturnDate != nil {
		return StateReturned
	}
	allApproved := true
	for _, g := range AllGates {
		switch l.GateState(g) {
		case GateRejected:
			return StateRejected
		case GateApproved:
		default:
			allApproved = false
		}
	}
	if allApproved {
		return StateApproved
	}
	return StatePending
}

// BeforeSave is the single write path for the derived columns: the overall
// state and the exclusivity mirror are recomputed on every insert/update so
// they can never drift from the gates.
func (l *Loan) BeforeSave(tx *gorm.DB) error {
	prev := l.State
	l.State = l.ComputeState()
	if l.State != prev {
		l.StateUpdatedAt = time.Now().UTC()
	}
	if l.State.Unresolved() {
		key := l.AssetID
		l.ExclusiveAssetID = &key
	} else {
		l.ExclusiveAssetID = nil
	}
	return nil
}
