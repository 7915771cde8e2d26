package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
	"github.com/stretchr/testify/require"
)

// proUser returns a user on the pro plan, which may create organizations.
func proUser(t *testing.T, h *harness, email string) (string, string) {
	t.Helper()
	id, tok := h.user(t, email)
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/me", tok, nil).Code)
	require.NoError(t, h.store.Users().SetPlan(context.Background(), id, domain.PlanPro, testNow))
	return id, tok
}

func TestCreateOrganizationRequiresFeature(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "free@example.com")

	rec := h.do(t, http.MethodPost, "/organizations", tok, renewalsdk.OrganizationRequest{Name: "Acme"})
	requireError(t, rec, http.StatusForbidden, renewalsdk.CodeFeatureUnavailable)
}

func TestInvitationFlow(t *testing.T) {
	h := newHarness(t)
	ownerID, owner := proUser(t, h, "owner@example.com")
	_, invitee := h.user(t, "member@example.com")

	// 1. Create the organization
	rec := h.do(t, http.MethodPost, "/organizations", owner, renewalsdk.OrganizationRequest{Name: "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	org := decodeBody[renewalsdk.Organization](t, rec)
	require.Equal(t, "owner", org.Role)

	asOrg := []string{renewalsdk.OrganizationHeader, org.ID}

	// 2. Invite without selecting the organization
	rec = h.do(t, http.MethodPost, "/invitations", owner, renewalsdk.InvitationRequest{Email: "member@example.com", Role: "member"})
	requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvalidRequest)

	// 3. Invite
	rec = h.do(t, http.MethodPost, "/invitations", owner,
		renewalsdk.InvitationRequest{Email: "Member@Example.com", Role: "member"}, asOrg...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[renewalsdk.InvitationCreated](t, rec)
	require.NotEmpty(t, created.Token)
	require.Contains(t, created.Link, created.Token)
	require.Equal(t, "member@example.com", created.Email)
	require.Equal(t, ownerID, created.InvitedBy)

	rec = h.do(t, http.MethodPost, "/invitations", owner,
		renewalsdk.InvitationRequest{Email: "member@example.com", Role: "member"}, asOrg...)
	requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvitationPending)

	pending := decodeBody[renewalsdk.InvitationList](t, h.do(t, http.MethodGet, "/invitations", owner, nil, asOrg...))
	require.Len(t, pending.Invitations, 1)

	// 4. Preview without a token
	rec = h.do(t, http.MethodGet, "/invitations/validate/"+created.Token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	preview := decodeBody[renewalsdk.InvitationPreview](t, rec)
	require.Equal(t, "Acme", preview.OrganizationName)
	require.Equal(t, "member", preview.Role)

	rec = h.do(t, http.MethodGet, "/invitations/validate/not-a-token", "", nil)
	requireError(t, rec, http.StatusNotFound, renewalsdk.CodeInvitationNotFound)

	// 5. Accept
	rec = h.do(t, http.MethodPost, "/invitations/"+created.Token+"/accept", invitee, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	joined := decodeBody[renewalsdk.Organization](t, rec)
	require.Equal(t, org.ID, joined.ID)
	require.Equal(t, "member", joined.Role)

	rec = h.do(t, http.MethodGet, "/invitations/validate/"+created.Token, "", nil)
	requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvitationAccepted)

	rec = h.do(t, http.MethodPost, "/invitations/"+created.Token+"/accept", invitee, nil)
	requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvitationAccepted)

	// 6. Membership is visible to both sides
	members := decodeBody[renewalsdk.MemberList](t, h.do(t, http.MethodGet, "/organizations/"+org.ID+"/members", invitee, nil))
	require.Len(t, members.Members, 2)

	orgs := decodeBody[renewalsdk.OrganizationList](t, h.do(t, http.MethodGet, "/organizations", invitee, nil))
	require.Len(t, orgs.Organizations, 1)
	require.Equal(t, "member", orgs.Organizations[0].Role)

	// 7. Plain members cannot manage invitations
	rec = h.do(t, http.MethodGet, "/invitations", invitee, nil, asOrg...)
	requireError(t, rec, http.StatusForbidden, renewalsdk.CodeForbidden)

	rec = h.do(t, http.MethodPost, "/invitations", invitee,
		renewalsdk.InvitationRequest{Email: "other@example.com", Role: "admin"}, asOrg...)
	requireError(t, rec, http.StatusForbidden, renewalsdk.CodeForbidden)
}

func TestRevokeInvitation(t *testing.T) {
	h := newHarness(t)
	_, owner := proUser(t, h, "owner@example.com")
	_, outsider := h.user(t, "outsider@example.com")

	org := decodeBody[renewalsdk.Organization](t,
		h.do(t, http.MethodPost, "/organizations", owner, renewalsdk.OrganizationRequest{Name: "Acme"}))
	asOrg := []string{renewalsdk.OrganizationHeader, org.ID}

	created := decodeBody[renewalsdk.InvitationCreated](t, h.do(t, http.MethodPost, "/invitations", owner,
		renewalsdk.InvitationRequest{Email: "new@example.com", Role: "admin"}, asOrg...))
	require.NotEmpty(t, created.ID)

	rec := h.do(t, http.MethodDelete, "/invitations/"+created.ID, outsider, nil)
	requireError(t, rec, http.StatusForbidden, renewalsdk.CodeForbidden)

	rec = h.do(t, http.MethodDelete, "/invitations/"+created.ID, owner, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/invitations/validate/"+created.Token, "", nil)
	requireError(t, rec, http.StatusNotFound, renewalsdk.CodeInvitationNotFound)
}

func TestMembersOfForeignOrganization(t *testing.T) {
	h := newHarness(t)
	_, owner := proUser(t, h, "owner@example.com")
	_, outsider := h.user(t, "outsider@example.com")

	org := decodeBody[renewalsdk.Organization](t,
		h.do(t, http.MethodPost, "/organizations", owner, renewalsdk.OrganizationRequest{Name: "Acme"}))

	rec := h.do(t, http.MethodGet, "/organizations/"+org.ID+"/members", outsider, nil)
	requireError(t, rec, http.StatusForbidden, renewalsdk.CodeForbidden)
}

func TestGuides(t *testing.T) {
	h := newHarness(t)
	adminID, admin := h.user(t, "admin@example.com")
	_, user := h.user(t, "user@example.com")

	req := renewalsdk.GuideRequest{
		ServiceName: "Netflix",
		URL:         "https://www.netflix.com/cancelplan",
		Steps:       []string{"Open Account", "Choose Cancel Membership"},
	}

	rec := h.do(t, http.MethodPut, "/cancellation-guides/netflix", user, req)
	requireError(t, rec, http.StatusForbidden, renewalsdk.CodeForbidden)

	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/me", admin, nil).Code)
	require.NoError(t, h.store.Users().GrantSuperAdmin(context.Background(), adminID, testNow))

	me := decodeBody[renewalsdk.Profile](t, h.do(t, http.MethodGet, "/me", admin, nil))
	require.True(t, me.SuperAdmin)

	rec = h.do(t, http.MethodPut, "/cancellation-guides/netflix", admin, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodPut, "/cancellation-guides/Not_A_Slug", admin, req)
	requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvalidRequest)

	rec = h.do(t, http.MethodGet, "/cancellation-guides/netflix", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	g := decodeBody[renewalsdk.Guide](t, rec)
	require.Equal(t, "Netflix", g.ServiceName)
	require.Len(t, g.Steps, 2)

	list := decodeBody[renewalsdk.GuideList](t, h.do(t, http.MethodGet, "/cancellation-guides", user, nil))
	require.Len(t, list.Guides, 1)

	rec = h.do(t, http.MethodGet, "/cancellation-guides/missing", user, nil)
	requireError(t, rec, http.StatusNotFound, renewalsdk.CodeNotFound)
}
