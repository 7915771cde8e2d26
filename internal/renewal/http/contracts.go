package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
)

type ContractsHandler struct {
	ContractService *service.ContractService
	Location        *time.Location
	Now             service.Clock
}

func (h *ContractsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

func (h *ContractsHandler) render(c domain.Contract) renewalsdk.Contract {
	return toContract(c, h.now(), h.Location)
}

// HandleList godoc
//
//	@Summary		List Contracts
//	@Description	List the caller's contracts, optionally filtered by status.
//	@Tags			Contracts
//	@Produce		json
//	@Param			status	query		string					false	"active, renewed or terminated"
//	@Success		200		{object}	renewalsdk.ContractList	"contracts"
//	@Failure		400		{object}	renewalsdk.ErrorResponse
//	@Failure		401		{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/contracts [get].
func (h *ContractsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := domain.ContractFilter{
		Status: domain.ContractStatus(strings.ToLower(r.URL.Query().Get("status"))),
	}
	contracts, err := h.ContractService.List(r.Context(), tenantFrom(r.Context()), filter)
	if err != nil {
		writeServiceError(w, r, err, "list contracts")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, renewalsdk.ContractList{
		Contracts: toContracts(contracts, h.now(), h.Location),
	})
}

// HandleCreate godoc
//
//	@Summary		Create Contract
//	@Description	Register a new contract. Refused with 403 when the caller's plan limit of active contracts is reached.
//	@Tags			Contracts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		renewalsdk.ContractRequest	true	"Contract"
//	@Success		201		{object}	renewalsdk.Contract
//	@Failure		400		{object}	renewalsdk.ErrorResponse
//	@Failure		401		{object}	renewalsdk.ErrorResponse
//	@Failure		403		{object}	renewalsdk.ErrorResponse	"plan_limit_exceeded"
//	@Security		BearerAuth
//	@Router			/contracts [post].
func (h *ContractsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req renewalsdk.ContractRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	in, ok := contractInput(w, req)
	if !ok {
		return
	}

	c, err := h.ContractService.Create(r.Context(), tenantFrom(r.Context()), in)
	if err != nil {
		writeServiceError(w, r, err, "create contract")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, h.render(c))
}

// HandleGet godoc
//
//	@Summary	Get Contract
//	@Tags		Contracts
//	@Produce	json
//	@Param		id	path		string	true	"Contract ID"
//	@Success	200	{object}	renewalsdk.Contract
//	@Failure	401	{object}	renewalsdk.ErrorResponse
//	@Failure	404	{object}	renewalsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/contracts/{id} [get].
func (h *ContractsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.ContractService.Get(r.Context(), tenantFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "load contract")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(c))
}

// HandleUpdate godoc
//
//	@Summary		Update Contract
//	@Description	Replace the editable fields of a contract. Status and savings only change through renew, terminate and keep.
//	@Tags			Contracts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Contract ID"
//	@Param			request	body		renewalsdk.ContractRequest	true	"Contract"
//	@Success		200		{object}	renewalsdk.Contract
//	@Failure		400		{object}	renewalsdk.ErrorResponse
//	@Failure		401		{object}	renewalsdk.ErrorResponse
//	@Failure		404		{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/contracts/{id} [put].
func (h *ContractsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req renewalsdk.ContractRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	in, ok := contractInput(w, req)
	if !ok {
		return
	}

	c, err := h.ContractService.Update(r.Context(), tenantFrom(r.Context()), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err, "update contract")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(c))
}

// HandleDelete godoc
//
//	@Summary		Delete Contract
//	@Description	Delete a contract. Contracts with recorded savings require confirm=true.
//	@Tags			Contracts
//	@Param			id		path	string	true	"Contract ID"
//	@Param			confirm	query	bool	false	"Confirm removal of recorded savings"
//	@Success		204
//	@Failure		400	{object}	renewalsdk.ErrorResponse	"confirmation_required"
//	@Failure		401	{object}	renewalsdk.ErrorResponse
//	@Failure		404	{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/contracts/{id} [delete].
func (h *ContractsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := h.ContractService.Delete(r.Context(), tenantFrom(r.Context()), r.PathValue("id"), confirm); err != nil {
		writeServiceError(w, r, err, "delete contract")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRenew godoc
//
//	@Summary		Renew Contract
//	@Description	Set a new expiry date and reactivate the contract from any status. Recorded savings are kept.
//	@Tags			Contracts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Contract ID"
//	@Param			request	body		renewalsdk.RenewRequest	true	"Next expiry"
//	@Success		200		{object}	renewalsdk.Contract
//	@Failure		400		{object}	renewalsdk.ErrorResponse
//	@Failure		401		{object}	renewalsdk.ErrorResponse
//	@Failure		404		{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/contracts/{id}/renew [post].
func (h *ContractsHandler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	var req renewalsdk.RenewRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	next, err := domain.ParseDate(req.NextExpiresAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, renewalsdk.CodeInvalidRequest, "next_expires_at must be a date in YYYY-MM-DD format")
		return
	}

	c, err := h.ContractService.Renew(r.Context(), tenantFrom(r.Context()), r.PathValue("id"), next)
	if err != nil {
		writeServiceError(w, r, err, "renew contract")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(c))
}

// HandleTerminate godoc
//
//	@Summary		Terminate Contract
//	@Description	Record a cancellation and add the saved amount, converted to KRW, to the caller's savings total.
//	@Tags			Contracts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Contract ID"
//	@Param			request	body		renewalsdk.TerminateRequest	true	"Saved amount in the contract currency"
//	@Success		200		{object}	renewalsdk.TerminateResponse
//	@Failure		400		{object}	renewalsdk.ErrorResponse	"invalid_request, invalid_transition"
//	@Failure		401		{object}	renewalsdk.ErrorResponse
//	@Failure		404		{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/contracts/{id}/terminate [post].
func (h *ContractsHandler) HandleTerminate(w http.ResponseWriter, r *http.Request) {
	var req renewalsdk.TerminateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.ContractService.Terminate(r.Context(), tenantFrom(r.Context()), r.PathValue("id"), req.SavedAmount)
	if err != nil {
		writeServiceError(w, r, err, "terminate contract")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTerminateResponse(res, h.now(), h.Location))
}

// HandleKeep godoc
//
//	@Summary		Keep Contract
//	@Description	Record the decision to continue a contract so it leaves the dashboard alerts.
//	@Tags			Contracts
//	@Produce		json
//	@Param			id	path		string	true	"Contract ID"
//	@Success		200	{object}	renewalsdk.Contract
//	@Failure		400	{object}	renewalsdk.ErrorResponse	"invalid_transition"
//	@Failure		401	{object}	renewalsdk.ErrorResponse
//	@Failure		404	{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/contracts/{id}/keep [post].
func (h *ContractsHandler) HandleKeep(w http.ResponseWriter, r *http.Request) {
	c, err := h.ContractService.Keep(r.Context(), tenantFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "keep contract")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.render(c))
}

// contractInput converts a validated request. On failure the 400 response
// has already been written.
func contractInput(w http.ResponseWriter, req renewalsdk.ContractRequest) (service.ContractInput, bool) {
	expires, err := domain.ParseDate(req.ExpiresAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, renewalsdk.CodeInvalidRequest, "expires_at must be a date in YYYY-MM-DD format")
		return service.ContractInput{}, false
	}
	notice := renewalsdk.DefaultNoticeDays
	if req.NoticeDays != nil {
		notice = *req.NoticeDays
	}
	return service.ContractInput{
		Name:       req.Name,
		Memo:       req.Memo,
		Amount:     *req.Amount,
		Currency:   domain.Currency(strings.ToUpper(req.Currency)),
		Cycle:      domain.Cycle(req.Cycle),
		ExpiresAt:  expires,
		NoticeDays: notice,
		AutoRenew:  req.AutoRenew,
		GuideSlug:  req.GuideSlug,
	}, true
}
