package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/pkg/cryptox"
	"github.com/aussiebroadwan/renewal/pkg/idx"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
)

type InvitationService struct {
	Store store.Store
	Now   Clock

	// AcceptURL is the base of the link handed to invitees; the token is
	// appended as a path segment.
	AcceptURL string
	TTL       time.Duration
}

// CreatedInvitation carries the raw token. It is only available here; the
// store keeps a fingerprint.
type CreatedInvitation struct {
	Invitation domain.Invitation
	Token      string
	Link       string
}

// Create invites email into the tenant's organization.
func (s *InvitationService) Create(ctx context.Context, t domain.Tenant, email string, role domain.Role) (CreatedInvitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorize against the selected organization
	if !t.InOrganization() {
		return CreatedInvitation{}, ErrOrganizationRequired
	}
	if !t.IsAdmin() {
		log.Warn("non-admin attempted to invite",
			slog.String("organization_id", t.OrganizationID),
			slog.String("role", string(t.Role)),
		)
		return CreatedInvitation{}, ErrForbidden
	}

	// 2. Validate input
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return CreatedInvitation{}, invalid(ErrInvalidInvitation, "role must be admin or member")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return CreatedInvitation{}, err
	}

	// 3. Reject duplicates
	now := s.Now.now()
	member, err := s.Store.Organizations().HasMemberWithEmail(ctx, t.OrganizationID, email)
	if err != nil {
		return CreatedInvitation{}, err
	}
	if member {
		return CreatedInvitation{}, ErrAlreadyMember
	}
	pending, err := s.Store.Invitations().HasPending(ctx, t.OrganizationID, email, now)
	if err != nil {
		return CreatedInvitation{}, err
	}
	if pending {
		return CreatedInvitation{}, ErrInvitationPending
	}

	// 4. Generate the token and store its fingerprint
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return CreatedInvitation{}, err
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = domain.InvitationTTL
	}
	inv := domain.Invitation{
		ID:             idx.NewString(),
		OrganizationID: t.OrganizationID,
		Email:          email,
		Role:           role,
		TokenHash:      cryptox.FingerprintToken(token),
		InvitedBy:      t.UserID,
		ExpiresAt:      now.Add(ttl),
		CreatedAt:      now,
	}
	if err := s.Store.Invitations().Create(ctx, inv); err != nil {
		log.Error("failed to create invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return CreatedInvitation{}, err
	}

	// 5. Deliver. Email is out of band; the link goes to the log.
	link := s.link(token)
	log.Info("invitation link issued",
		slog.String("invitation_id", inv.ID),
		slog.String("organization_id", inv.OrganizationID),
		slog.String("email", email),
		slog.String("link", link),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	return CreatedInvitation{Invitation: inv, Token: token, Link: link}, nil
}

// List returns the pending invitations of the tenant's organization.
func (s *InvitationService) List(ctx context.Context, t domain.Tenant) ([]domain.Invitation, error) {
	if !t.InOrganization() {
		return nil, ErrOrganizationRequired
	}
	if !t.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.Store.Invitations().ListPending(ctx, t.OrganizationID, s.Now.now())
}

// Validate previews an invitation without consuming it.
func (s *InvitationService) Validate(ctx context.Context, token string) (domain.InvitationPreview, error) {
	inv, err := s.lookup(ctx, token)
	if err != nil {
		return domain.InvitationPreview{}, err
	}
	org, err := s.Store.Organizations().Get(ctx, inv.OrganizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InvitationPreview{}, ErrInvitationNotFound
		}
		return domain.InvitationPreview{}, err
	}
	return domain.InvitationPreview{
		OrganizationName: org.Name,
		Email:            inv.Email,
		Role:             inv.Role,
		ExpiresAt:        inv.ExpiresAt,
	}, nil
}

// Accept joins the caller to the inviting organization. The membership and
// the accepted mark commit together, so a token adds at most one member.
// A mark failure other than "already accepted" is only logged.
func (s *InvitationService) Accept(ctx context.Context, t domain.Tenant, token string) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	// 1. Re-validate the token
	inv, err := s.lookup(ctx, token)
	if err != nil {
		return domain.Membership{}, err
	}
	org, err := s.Store.Organizations().Get(ctx, inv.OrganizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrInvitationNotFound
		}
		return domain.Membership{}, err
	}

	now := s.Now.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 2. Insert the membership
		err := tx.Organizations().AddMember(ctx, domain.Member{
			OrganizationID: inv.OrganizationID,
			UserID:         t.UserID,
			Email:          t.Email,
			Role:           inv.Role,
			CreatedAt:      now,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyMember
			}
			return fmt.Errorf("add member: %w", err)
		}

		// 3. Claim the invitation. Losing the claim undoes the membership.
		err = tx.Invitations().MarkAccepted(ctx, inv.ID, t.UserID, now)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ErrInvitationAccepted
		case err != nil:
			log.Error("failed to mark invitation accepted",
				slog.String("invitation_id", inv.ID),
				slog.Any("error", err),
			)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAlreadyMember) && !errors.Is(err, ErrInvitationAccepted) {
			log.Error("failed to accept invitation",
				slog.String("invitation_id", inv.ID),
				slog.Any("error", err),
			)
		}
		return domain.Membership{}, err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("organization_id", inv.OrganizationID),
	)
	return domain.Membership{Organization: org, Role: inv.Role}, nil
}

// Revoke deletes an invitation. The caller must be an owner or admin of the
// organization the invitation belongs to.
func (s *InvitationService) Revoke(ctx context.Context, t domain.Tenant, id string) error {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}

	m, err := s.Store.Organizations().GetMember(ctx, inv.OrganizationID, t.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err != nil || !m.Role.Privileged() {
		log.Warn("unauthorized invitation revoke",
			slog.String("invitation_id", id),
			slog.String("organization_id", inv.OrganizationID),
		)
		return ErrForbidden
	}

	if err := s.Store.Invitations().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}
	log.Info("invitation revoked", slog.String("invitation_id", id))
	return nil
}

func (s *InvitationService) lookup(ctx context.Context, token string) (domain.Invitation, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Invitation{}, ErrInvitationNotFound
	}
	inv, err := s.Store.Invitations().GetByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		return domain.Invitation{}, err
	}
	switch inv.State(s.Now.now()) {
	case domain.InvitationAccepted:
		return domain.Invitation{}, ErrInvitationAccepted
	case domain.InvitationExpired:
		return domain.Invitation{}, ErrInvitationExpired
	}
	return inv, nil
}

func (s *InvitationService) link(token string) string {
	if s.AcceptURL == "" {
		return "/invitations/" + url.PathEscape(token)
	}
	return strings.TrimSuffix(s.AcceptURL, "/") + "/" + url.PathEscape(token)
}

func normalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", invalid(ErrInvalidInvitation, "email is not a valid address")
	}
	return strings.ToLower(addr.Address), nil
}
