package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingRemovesStaleInvitations(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	clock := newClock(testNow)
	invites := &InvitationService{Store: s, Now: clock.Now}
	admin := newOrganization(t, s, newUser(t, s, "owner@example.com"))

	old, err := invites.Create(ctx, admin, "old@example.com", domain.RoleMember)
	require.NoError(t, err)

	clock.Advance(40 * 24 * time.Hour)
	fresh, err := invites.Create(ctx, admin, "fresh@example.com", domain.RoleMember)
	require.NoError(t, err)

	hk := NewHousekeepingService(s, slogx.Discard(), time.Hour, 30*24*time.Hour)
	hk.Now = clock.Now
	require.EqualValues(t, 1, hk.Cleanup(ctx))

	_, err = s.Invitations().Get(ctx, old.Invitation.ID)
	require.Error(t, err)
	_, err = s.Invitations().Get(ctx, fresh.Invitation.ID)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	s := newStore(t)
	hk := NewHousekeepingService(s, slogx.Discard(), 0, 0)
	require.Equal(t, time.Hour, hk.Interval)
	require.Equal(t, DefaultInvitationRetention, hk.Retention)

	hk.Start()
	hk.Stop()
}
