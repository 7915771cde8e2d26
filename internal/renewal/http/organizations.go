package http

import (
	"net/http"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
)

type OrganizationsHandler struct {
	OrganizationService *service.OrganizationService
}

// HandleCreate godoc
//
//	@Summary		Create Organization
//	@Description	Create an organization owned by the caller. Requires a plan with the organizations feature.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		renewalsdk.OrganizationRequest	true	"Organization"
//	@Success		201		{object}	renewalsdk.Organization
//	@Failure		400		{object}	renewalsdk.ErrorResponse
//	@Failure		401		{object}	renewalsdk.ErrorResponse
//	@Failure		403		{object}	renewalsdk.ErrorResponse	"feature_unavailable"
//	@Security		BearerAuth
//	@Router			/organizations [post].
func (h *OrganizationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req renewalsdk.OrganizationRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	m, err := h.OrganizationService.Create(r.Context(), tenantFrom(r.Context()), req.Name)
	if err != nil {
		writeServiceError(w, r, err, "create organization")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toOrganization(m))
}

// HandleList godoc
//
//	@Summary	List Organizations
//	@Tags		Organizations
//	@Produce	json
//	@Success	200	{object}	renewalsdk.OrganizationList
//	@Failure	401	{object}	renewalsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/organizations [get].
func (h *OrganizationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ms, err := h.OrganizationService.List(r.Context(), tenantFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "list organizations")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, renewalsdk.OrganizationList{Organizations: toOrganizations(ms)})
}

// HandleMembers godoc
//
//	@Summary	List Organization Members
//	@Tags		Organizations
//	@Produce	json
//	@Param		id	path		string	true	"Organization ID"
//	@Success	200	{object}	renewalsdk.MemberList
//	@Failure	401	{object}	renewalsdk.ErrorResponse
//	@Failure	403	{object}	renewalsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/organizations/{id}/members [get].
func (h *OrganizationsHandler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.OrganizationService.Members(r.Context(), tenantFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "list members")
		return
	}
	out := renewalsdk.MemberList{Members: make([]renewalsdk.Member, 0, len(members))}
	for _, m := range members {
		out.Members = append(out.Members, toMember(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func toMember(m domain.Member) renewalsdk.Member {
	return renewalsdk.Member{
		UserID:   m.UserID,
		Email:    m.Email,
		Role:     string(m.Role),
		JoinedAt: m.CreatedAt,
	}
}
