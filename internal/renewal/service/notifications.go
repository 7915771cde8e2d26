package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/pkg/idx"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
)

// Dispatcher delivers one reminder.
type Dispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification) error
}

// LogDispatcher writes reminders to the log.
type LogDispatcher struct {
	Logger *slog.Logger
}

func (d LogDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	log := d.Logger
	if log == nil {
		log = slogx.FromContext(ctx)
	}
	log.Info("notification dispatched",
		slog.String("contract_id", n.ContractID),
		slog.String("user_id", n.UserID),
		slog.String("email", n.Email),
		slog.String("contract", n.ContractName),
		slog.String("type", n.Type),
		slog.String("expires_at", domain.FormatDate(n.ExpiresAt)),
	)
	return nil
}

// NotificationScheduler sends expiry reminders at fixed lead times. Each
// (contract, lead time) pair is claimed in the notification log before it is
// dispatched, so a reminder goes out at most once.
type NotificationScheduler struct {
	Store      store.Store
	Plans      domain.Plans
	Dispatcher Dispatcher
	Location   *time.Location
	Now        Clock
}

// Run processes every lead time for the current day.
func (s *NotificationScheduler) Run(ctx context.Context) ([]domain.LeadResult, error) {
	return s.RunAt(ctx, s.Now.now())
}

// RunAt processes every lead time as of now. On error it returns the counts
// gathered so far; ledger rows already written stay.
func (s *NotificationScheduler) RunAt(ctx context.Context, now time.Time) ([]domain.LeadResult, error) {
	log := slogx.FromContext(ctx)
	today := domain.DateOf(now, locationOrDefault(s.Location))
	owners := make(map[string]ownerInfo)

	results := make([]domain.LeadResult, 0, len(domain.LeadTimes))
	for _, lead := range domain.LeadTimes {
		res := domain.LeadResult{LeadDays: lead, Type: domain.NotificationType(lead)}
		target := domain.AddDays(today, lead)

		contracts, err := s.Store.Contracts().ListExpiringOn(ctx, target)
		if err != nil {
			return append(results, res), fmt.Errorf("list contracts expiring %s: %w", domain.FormatDate(target), err)
		}

		for _, c := range contracts {
			sent, err := s.remind(ctx, c, lead, res.Type, now, owners)
			if err != nil {
				return append(results, res), err
			}
			if sent {
				res.Sent++
			}
		}

		log.Info("notification lead time processed",
			slog.String("type", res.Type),
			slog.String("target", domain.FormatDate(target)),
			slog.Int("candidates", len(contracts)),
			slog.Int("sent", res.Sent),
		)
		results = append(results, res)
	}
	return results, nil
}

type ownerInfo struct {
	email string
	plan  domain.Plan
}

func (s *NotificationScheduler) remind(ctx context.Context, c domain.Contract, lead int, typ string, now time.Time, owners map[string]ownerInfo) (bool, error) {
	log := slogx.FromContext(ctx)

	// 1. Plan window
	owner, err := s.owner(ctx, c.UserID, owners)
	if err != nil {
		return false, err
	}
	if !owner.plan.AllowsWindow(lead) {
		log.Debug("lead time outside plan",
			slog.String("contract_id", c.ID),
			slog.String("plan", owner.plan.Name),
			slog.String("type", typ),
		)
		return false, nil
	}

	// 2. Already sent
	exists, err := s.Store.NotificationLogs().Exists(ctx, c.ID, typ)
	if err != nil {
		return false, fmt.Errorf("check notification log: %w", err)
	}
	if exists {
		return false, nil
	}

	// 3. Claim the pair. A concurrent run that got here first wins.
	err = s.Store.NotificationLogs().Insert(ctx, domain.NotificationLog{
		ID:         idx.NewString(),
		ContractID: c.ID,
		Type:       typ,
		SentAt:     now,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert notification log: %w", err)
	}

	// 4. Dispatch
	err = s.Dispatcher.Dispatch(ctx, domain.Notification{
		ContractID:   c.ID,
		UserID:       c.UserID,
		Email:        owner.email,
		ContractName: c.Name,
		ExpiresAt:    c.ExpiresAt,
		LeadDays:     lead,
		Type:         typ,
		NoticeDays:   c.NoticeDays,
		AutoRenew:    c.AutoRenew,
	})
	if err != nil {
		return false, fmt.Errorf("dispatch %s for contract %s: %w", typ, c.ID, err)
	}
	return true, nil
}

func (s *NotificationScheduler) owner(ctx context.Context, userID string, cache map[string]ownerInfo) (ownerInfo, error) {
	if o, ok := cache[userID]; ok {
		return o, nil
	}
	plans := s.Plans
	if plans == nil {
		plans = domain.DefaultPlans()
	}

	var o ownerInfo
	u, err := s.Store.Users().Get(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		o.plan = plans.Lookup("")
	case err != nil:
		return ownerInfo{}, fmt.Errorf("load contract owner: %w", err)
	default:
		o.email = u.Email
		o.plan = plans.Lookup(u.Plan)
	}
	cache[userID] = o
	return o, nil
}
