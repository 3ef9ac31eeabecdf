package loan

import (
	"time"

	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/loan"
)

type CreateLoanInput struct {
	AssetID             string    `json:"asset_id"`
	RequesterID         string    `json:"requester_id"`
	RequestedReturnDate time.Time `json:"requested_return_date"`
	Reason              string    `json:"reason"`
}

type GateView struct {
	Status string     `json:"status"`
	By     string     `json:"by,omitempty"`
	At     *time.Time `json:"at,omitempty"`
}

type LoanDTO struct {
	Code                string              `json:"code"`
	AssetID             string              `json:"asset_id"`
	RequesterID         string              `json:"requester_id"`
	State               string              `json:"state"`
	LoanDate            time.Time           `json:"loan_date"`
	RequestedReturnDate time.Time           `json:"requested_return_date"`
	ActualReturnDate    *time.Time          `json:"actual_return_date,omitempty"`
	Reason              string              `json:"reason,omitempty"`
	Notes               string              `json:"notes,omitempty"`
	Gates               map[string]GateView `json:"gates"`
	CreatedAt           time.Time           `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		Code:                l.Code,
		AssetID:             l.AssetID,
		RequesterID:         l.RequesterID,
		State:               string(l.State),
		LoanDate:            l.LoanDate,
		RequestedReturnDate: l.RequestedReturnDate,
		ActualReturnDate:    l.ActualReturnDate,
		Reason:              l.Reason,
		Notes:               l.Notes,
		Gates: map[string]GateView{
			string(loan.GateRequesterLead):  {Status: string(l.RequesterLeadStatus), By: l.RequesterLeadBy, At: l.RequesterLeadAt},
			string(loan.GateAssetOwnerLead): {Status: string(l.AssetOwnerLeadStatus), By: l.AssetOwnerLeadBy, At: l.AssetOwnerLeadAt},
			string(loan.GateFacilities):     {Status: string(l.FacilitiesStatus), By: l.FacilitiesBy, At: l.FacilitiesAt},
			string(loan.GateExecutive):      {Status: string(l.ExecutiveStatus), By: l.ExecutiveBy, At: l.ExecutiveAt},
		},
		CreatedAt: l.CreatedAt,
	}
}
