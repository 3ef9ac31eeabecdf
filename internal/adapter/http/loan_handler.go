package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/approval"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/asset"
	loanDomain "github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/loan"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/usecase/loan"
	"github.com/RizkiAgung007/tools-asset-management-sub000/pkg/loancode"
)

// Actor identity headers, injected by the surrounding auth layer. Transport
// of authentication itself is out of scope here; the handlers only trust
// what that layer resolved.
const (
	HeaderActorID            = "X-Actor-Id"
	HeaderActorRole          = "X-Actor-Role"
	HeaderLeadsRequesterUnit = "X-Actor-Leads-Requester-Unit"
	HeaderLeadsAssetUnit     = "X-Actor-Leads-Asset-Unit"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func actorFromHeaders(c echo.Context) (approval.Actor, bool) {
	a := approval.Actor{
		ID:                 c.Request().Header.Get(HeaderActorID),
		Role:               approval.Role(c.Request().Header.Get(HeaderActorRole)),
		LeadsRequesterUnit: c.Request().Header.Get(HeaderLeadsRequesterUnit) == "true",
		LeadsAssetUnit:     c.Request().Header.Get(HeaderLeadsAssetUnit) == "true",
	}
	return a, a.ID != "" && a.Role.Valid()
}

type createLoanReq struct {
	AssetID             string `json:"asset_id"              validate:"required"`
	RequestedReturnDate string `json:"requested_return_date" validate:"required,datetime=2006-01-02"`
	Reason              string `json:"reason"`
}

type rejectLoanReq struct {
	Reason string `json:"reason"`
}

type returnLoanReq struct {
	Notes string `json:"notes"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	requesterID := c.Request().Header.Get(HeaderActorID)
	if requesterID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + HeaderActorID})
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	due, _ := time.Parse("2006-01-02", req.RequestedReturnDate)

	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		AssetID:             req.AssetID,
		RequesterID:         requesterID,
		RequestedReturnDate: due,
		Reason:              req.Reason,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("code"), actor)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	actor, ok := actorFromHeaders(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	var req rejectLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("code"), actor, req.Reason)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ReturnLoan(c echo.Context) error {
	actorID := c.Request().Header.Get(HeaderActorID)
	if actorID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing " + HeaderActorID})
	}
	var req returnLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Return(c.Request().Context(), c.Param("code"), actorID, req.Notes)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// writeDomainErr maps the domain error taxonomy to HTTP statuses.
func writeDomainErr(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, loanDomain.ErrNotFound), errors.Is(err, asset.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, loanDomain.ErrValidation), errors.Is(err, loanDomain.ErrAssetNotDeployable):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, loanDomain.ErrAssetBusy),
		errors.Is(err, loanDomain.ErrPrecedingGateIncomplete),
		errors.Is(err, loanDomain.ErrInvalidState),
		errors.Is(err, loanDomain.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, loanDomain.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, loancode.ErrCapacityExceeded):
		code = http.StatusServiceUnavailable
	default:
		code = http.StatusInternalServerError
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
