// Package approval holds the pure gate-transition policy for the loan
// workflow. It decides which gates an actor may flip given the loan's
// current snapshot; it performs no I/O and knows nothing about persistence.
package approval

import (
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/loan"
)

type Role string

const (
	RoleSuperadmin        Role = "superadmin"
	RoleExecutive         Role = "executive"
	RoleFacilitiesManager Role = "facilities_manager"
	RoleUnitLead          Role = "unit_lead"
	RoleRequester         Role = "requester"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleExecutive, RoleFacilitiesManager, RoleUnitLead, RoleRequester:
		return true
	}
	return false
}

// Actor is the authenticated caller plus its organizational relation to the
// loan at hand, resolved by the surrounding service layer.
type Actor struct {
	ID   string
	Role Role
	// LeadsRequesterUnit: the actor leads the requester's unit.
	LeadsRequesterUnit bool
	// LeadsAssetUnit: the actor leads the asset-owning unit.
	LeadsAssetUnit bool
}

// GateChange is one gate mutation the policy has committed to.
type GateChange struct {
	Gate loan.Gate
	To   loan.GateStatus
}

// Decision is the set of gate mutations an allowed call produces. A single
// call may flip more than one gate (a lead who leads both units, or a
// superadmin override).
type Decision struct {
	Changes []GateChange
}

// Decide evaluates an approval attempt. Rules, in precedence order:
// superadmin overrides everything still pending; unit leads act on the lead
// gate(s) matching their relation; facilities requires both lead gates
// approved; executive requires facilities approved. "You may never do this"
// is loan.ErrUnauthorized; "you may, but not yet" is
// loan.ErrPrecedingGateIncomplete.
func Decide(a Actor, s loan.Snapshot) (Decision, error) {
	if !s.State.Unresolved() || s.State.CheckedOut() {
		// Terminal or already fully approved: nothing left to approve.
		return Decision{}, loan.ErrInvalidState
	}

	switch a.Role {
	case RoleSuperadmin:
		var d Decision
		for _, g := range loan.AllGates {
			if s.Gates[g] == loan.GatePending {
				d.Changes = append(d.Changes, GateChange{Gate: g, To: loan.GateApproved})
			}
		}
		if len(d.Changes) == 0 {
			return Decision{}, loan.ErrInvalidState
		}
		return d, nil

	case RoleUnitLead:
		var d Decision
		if a.LeadsRequesterUnit && s.Gates[loan.GateRequesterLead] == loan.GatePending {
			d.Changes = append(d.Changes, GateChange{Gate: loan.GateRequesterLead, To: loan.GateApproved})
		}
		if a.LeadsAssetUnit && s.Gates[loan.GateAssetOwnerLead] == loan.GatePending {
			d.Changes = append(d.Changes, GateChange{Gate: loan.GateAssetOwnerLead, To: loan.GateApproved})
		}
		if len(d.Changes) == 0 {
			return Decision{}, loan.ErrUnauthorized
		}
		return d, nil

	case RoleFacilitiesManager:
		if s.Gates[loan.GateFacilities] != loan.GatePending {
			return Decision{}, loan.ErrUnauthorized
		}
		if s.Gates[loan.GateRequesterLead] != loan.GateApproved ||
			s.Gates[loan.GateAssetOwnerLead] != loan.GateApproved {
			return Decision{}, loan.ErrPrecedingGateIncomplete
		}
		return Decision{Changes: []GateChange{{Gate: loan.GateFacilities, To: loan.GateApproved}}}, nil

	case RoleExecutive:
		if s.Gates[loan.GateExecutive] != loan.GatePending {
			return Decision{}, loan.ErrUnauthorized
		}
		if s.Gates[loan.GateFacilities] != loan.GateApproved {
			return Decision{}, loan.ErrPrecedingGateIncomplete
		}
		return Decision{Changes: []GateChange{{Gate: loan.GateExecutive, To: loan.GateApproved}}}, nil
	}

	return Decision{}, loan.ErrUnauthorized
}

// DecideReject evaluates a rejection attempt. Each role may only force its
// own still-pending gate(s) to rejected; a superadmin forces every pending
// gate. Rejection has no ordering precondition.
func DecideReject(a Actor, s loan.Snapshot) (Decision, error) {
	if s.State != loan.StatePending {
		return Decision{}, loan.ErrInvalidState
	}

	reject := func(gates ...loan.Gate) (Decision, error) {
		var d Decision
		for _, g := range gates {
			if s.Gates[g] == loan.GatePending {
				d.Changes = append(d.Changes, GateChange{Gate: g, To: loan.GateRejected})
			}
		}
		if len(d.Changes) == 0 {
			return Decision{}, loan.ErrUnauthorized
		}
		return d, nil
	}

	switch a.Role {
	case RoleSuperadmin:
		return reject(loan.AllGates...)
	case RoleUnitLead:
		var gates []loan.Gate
		if a.LeadsRequesterUnit {
			gates = append(gates, loan.GateRequesterLead)
		}
		if a.LeadsAssetUnit {
			gates = append(gates, loan.GateAssetOwnerLead)
		}
		return reject(gates...)
	case RoleFacilitiesManager:
		return reject(loan.GateFacilities)
	case RoleExecutive:
		return reject(loan.GateExecutive)
	}

	return Decision{}, loan.ErrUnauthorized
}
