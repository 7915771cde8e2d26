package http

import (
	"net/http"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Invite Member
//	@Description	Invite an email address into the organization selected by X-Organization-ID. Owners and admins only.
//	@Description	The raw token is returned once; only its fingerprint is stored.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			X-Organization-ID	header		string							true	"Organization ID"
//	@Param			request				body		renewalsdk.InvitationRequest	true	"Invitation"
//	@Success		201					{object}	renewalsdk.InvitationCreated
//	@Failure		400					{object}	renewalsdk.ErrorResponse	"invalid_request, invitation_pending, already_member"
//	@Failure		401					{object}	renewalsdk.ErrorResponse
//	@Failure		403					{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req renewalsdk.InvitationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	created, err := h.InvitationService.Create(r.Context(), tenantFrom(r.Context()), req.Email, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err, "create invitation")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, renewalsdk.InvitationCreated{
		Invitation: toInvitation(created.Invitation),
		Token:      created.Token,
		Link:       created.Link,
	})
}

// HandleList godoc
//
//	@Summary		List Pending Invitations
//	@Tags			Invitations
//	@Produce		json
//	@Param			X-Organization-ID	header		string	true	"Organization ID"
//	@Success		200					{object}	renewalsdk.InvitationList
//	@Failure		401					{object}	renewalsdk.ErrorResponse
//	@Failure		403					{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	invs, err := h.InvitationService.List(r.Context(), tenantFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "list invitations")
		return
	}
	out := renewalsdk.InvitationList{Invitations: make([]renewalsdk.Invitation, 0, len(invs))}
	for _, inv := range invs {
		out.Invitations = append(out.Invitations, toInvitation(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRevoke godoc
//
//	@Summary	Revoke Invitation
//	@Tags		Invitations
//	@Param		id	path	string	true	"Invitation ID"
//	@Success	204
//	@Failure	401	{object}	renewalsdk.ErrorResponse
//	@Failure	403	{object}	renewalsdk.ErrorResponse
//	@Failure	404	{object}	renewalsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/invitations/{id} [delete].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.InvitationService.Revoke(r.Context(), tenantFrom(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "revoke invitation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleValidate godoc
//
//	@Summary		Preview Invitation
//	@Description	Public endpoint used by the accept page. Does not consume the invitation.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string	true	"Invitation token"
//	@Success		200		{object}	renewalsdk.InvitationPreview
//	@Failure		400		{object}	renewalsdk.ErrorResponse	"invitation_accepted, invitation_expired"
//	@Failure		404		{object}	renewalsdk.ErrorResponse	"invitation_not_found"
//	@Router			/invitations/validate/{token} [get].
func (h *InvitationsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	preview, err := h.InvitationService.Validate(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err, "validate invitation")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, renewalsdk.InvitationPreview{
		OrganizationName: preview.OrganizationName,
		Email:            preview.Email,
		Role:             string(preview.Role),
		ExpiresAt:        preview.ExpiresAt,
	})
}

// HandleAccept godoc
//
//	@Summary		Accept Invitation
//	@Description	Join the inviting organization as the authenticated user.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string	true	"Invitation token"
//	@Success		200		{object}	renewalsdk.Organization
//	@Failure		400		{object}	renewalsdk.ErrorResponse	"invitation_accepted, invitation_expired, already_member"
//	@Failure		401		{object}	renewalsdk.ErrorResponse
//	@Failure		404		{object}	renewalsdk.ErrorResponse	"invitation_not_found"
//	@Security		BearerAuth
//	@Router			/invitations/{token}/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	m, err := h.InvitationService.Accept(r.Context(), tenantFrom(r.Context()), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err, "accept invitation")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrganization(m))
}
