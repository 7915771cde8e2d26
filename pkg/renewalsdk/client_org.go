package renewalsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) CreateOrganization(ctx context.Context, name string) (*Organization, error) {
	var out Organization
	if err := c.send(ctx, http.MethodPost, "/organizations", OrganizationRequest{Name: name}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var out OrganizationList
	if err := c.get(ctx, "/organizations", &out); err != nil {
		return nil, err
	}
	return out.Organizations, nil
}

func (c *Client) ListMembers(ctx context.Context, orgID string) ([]Member, error) {
	var out MemberList
	if err := c.get(ctx, "/organizations/"+url.PathEscape(orgID)+"/members", &out); err != nil {
		return nil, err
	}
	return out.Members, nil
}

// CreateInvitation invites email into the client's OrganizationID.
func (c *Client) CreateInvitation(ctx context.Context, req InvitationRequest) (*InvitationCreated, error) {
	var out InvitationCreated
	if err := c.send(ctx, http.MethodPost, "/invitations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListInvitations(ctx context.Context) ([]Invitation, error) {
	var out InvitationList
	if err := c.get(ctx, "/invitations", &out); err != nil {
		return nil, err
	}
	return out.Invitations, nil
}

func (c *Client) RevokeInvitation(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/invitations/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) ValidateInvitation(ctx context.Context, token string) (*InvitationPreview, error) {
	var out InvitationPreview
	if err := c.get(ctx, "/invitations/validate/"+url.PathEscape(token), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptInvitation(ctx context.Context, token string) (*Organization, error) {
	var out Organization
	if err := c.send(ctx, http.MethodPost, "/invitations/"+url.PathEscape(token)+"/accept", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
