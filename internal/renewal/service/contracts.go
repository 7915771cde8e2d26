package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/pkg/idx"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
	"github.com/shopspring/decimal"
)

// RateProvider yields the current USD to KRW rate. It never fails; when no
// live value is available it reports a fallback rate.
type RateProvider interface {
	Current(ctx context.Context) domain.ExchangeRate
}

// ContractService runs the contract lifecycle for one tenant at a time.
type ContractService struct {
	Store    store.Store
	Rates    RateProvider
	Plans    domain.Plans
	Schema   *SchemaFlags
	Location *time.Location
	Now      Clock
}

// ContractInput carries the user-editable fields of a contract.
type ContractInput struct {
	Name       string
	Memo       string
	Amount     decimal.Decimal
	Currency   domain.Currency
	Cycle      domain.Cycle
	ExpiresAt  time.Time
	NoticeDays int
	AutoRenew  bool
	GuideSlug  string
}

func (in ContractInput) apply(c *domain.Contract) {
	c.Name = strings.TrimSpace(in.Name)
	c.Memo = in.Memo
	c.Amount = in.Amount
	c.Currency = domain.Currency(strings.ToUpper(string(in.Currency)))
	c.Cycle = in.Cycle
	c.ExpiresAt = in.ExpiresAt
	c.NoticeDays = in.NoticeDays
	c.AutoRenew = in.AutoRenew
	c.GuideSlug = in.GuideSlug
}

// TerminateResult reports a termination and its effect on the savings total.
type TerminateResult struct {
	Contract           domain.Contract
	SavedKRW           decimal.Decimal
	Rate               *domain.ExchangeRate // set when a conversion was needed
	AccumulatorUpdated bool
}

func (s *ContractService) Create(ctx context.Context, t domain.Tenant, in ContractInput) (domain.Contract, error) {
	log := slogx.FromContext(ctx)
	now := s.Now.now()

	c := domain.Contract{
		ID:             idx.NewString(),
		UserID:         t.UserID,
		OrganizationID: t.OrganizationID,
		Status:         domain.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	in.apply(&c)
	if err := c.Validate(); err != nil {
		return domain.Contract{}, invalid(ErrInvalidContract, err)
	}

	// The user row lock serializes creates per user; without it two READ
	// COMMITTED transactions could both count under the limit.
	var plan domain.Plan
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().Lock(ctx, t.UserID); err != nil {
			return fmt.Errorf("lock user: %w", err)
		}
		var err error
		if plan, err = lookupPlan(ctx, tx, s.Plans, t.UserID); err != nil {
			return err
		}
		if !plan.Unlimited() {
			n, err := tx.Contracts().CountActive(ctx, t.UserID)
			if err != nil {
				return err
			}
			if n >= plan.MaxContracts {
				return &PlanLimitError{Plan: plan.Name, Limit: plan.MaxContracts}
			}
		}
		return tx.Contracts().Create(ctx, c)
	})
	if err != nil {
		if errors.Is(err, ErrPlanLimitExceeded) {
			log.Info("contract refused by plan limit", slog.String("plan", plan.Name))
		}
		return domain.Contract{}, err
	}

	log.Info("contract created", slog.String("contract_id", c.ID))
	return c, nil
}

func (s *ContractService) Get(ctx context.Context, t domain.Tenant, id string) (domain.Contract, error) {
	c, err := s.Store.Contracts().Get(ctx, id, t.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Contract{}, ErrContractNotFound
	}
	return c, err
}

func (s *ContractService) List(ctx context.Context, t domain.Tenant, f domain.ContractFilter) ([]domain.Contract, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid(ErrInvalidContract, "unknown status "+string(f.Status))
	}
	return s.Store.Contracts().List(ctx, t.UserID, f)
}

// Update replaces the editable fields. Status, savings and decisions only
// change through the lifecycle operations.
func (s *ContractService) Update(ctx context.Context, t domain.Tenant, id string, in ContractInput) (domain.Contract, error) {
	c, err := s.Get(ctx, t, id)
	if err != nil {
		return domain.Contract{}, err
	}
	in.apply(&c)
	if err := c.Validate(); err != nil {
		return domain.Contract{}, invalid(ErrInvalidContract, err)
	}
	c.UpdatedAt = s.Now.now()

	if err := s.Store.Contracts().Update(ctx, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Contract{}, ErrContractNotFound
		}
		return domain.Contract{}, err
	}
	return c, nil
}

// Renew reactivates a contract with a new expiry date in a single write.
// It works from any status; recorded savings are kept.
func (s *ContractService) Renew(ctx context.Context, t domain.Tenant, id string, next time.Time) (domain.Contract, error) {
	if next.IsZero() {
		return domain.Contract{}, invalid(ErrInvalidContract, "next_expires_at is required")
	}
	now := s.Now.now()

	err := s.withDecisions(ctx, func(decisions bool) error {
		return s.Store.Contracts().Renew(ctx, id, t.UserID, next, decisions, now)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Contract{}, ErrContractNotFound
		}
		return domain.Contract{}, err
	}

	slogx.FromContext(ctx).Info("contract renewed",
		slog.String("contract_id", id),
		slog.String("expires_at", domain.FormatDate(next)),
	)
	return s.Get(ctx, t, id)
}

// Terminate records a cancellation and adds the savings, converted to KRW,
// to the owner's running total. The contract change stands even when the
// total cannot be updated; AccumulatorUpdated reports that case.
func (s *ContractService) Terminate(ctx context.Context, t domain.Tenant, id string, saved *decimal.Decimal) (TerminateResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	if saved == nil {
		return TerminateResult{}, invalid(ErrInvalidContract, "saved_amount is required")
	}
	if err := domain.ValidateSavedAmount(*saved); err != nil {
		return TerminateResult{}, invalid(ErrInvalidContract, err)
	}

	// 2. Load and check the transition
	c, err := s.Get(ctx, t, id)
	if err != nil {
		return TerminateResult{}, err
	}
	if c.Status == domain.StatusTerminated {
		return TerminateResult{}, invalid(ErrInvalidTransition, "contract is already terminated")
	}

	// 3. Record the termination. The statement skips terminated rows, so a
	// concurrent request that got here first surfaces as not found.
	now := s.Now.now()
	err = s.withDecisions(ctx, func(decisions bool) error {
		return s.Store.Contracts().Terminate(ctx, id, t.UserID, *saved, decisions, now)
	})
	if errors.Is(err, store.ErrNotFound) {
		return TerminateResult{}, invalid(ErrInvalidTransition, "contract is already terminated")
	}
	if err != nil {
		return TerminateResult{}, err
	}

	// 4. Convert and accumulate
	res := TerminateResult{SavedKRW: *saved}
	if c.Currency != domain.CurrencyKRW {
		rate := s.Rates.Current(ctx)
		res.Rate = &rate
		res.SavedKRW = domain.ToKRW(*saved, c.Currency, rate.Rate)
	}
	if err := s.Store.Users().IncrementSavedKRW(ctx, t.UserID, res.SavedKRW, now); err != nil {
		log.Error("failed to update savings total",
			slog.String("contract_id", id),
			slog.String("saved_krw", res.SavedKRW.String()),
			slog.Any("error", err),
		)
	} else {
		res.AccumulatorUpdated = true
	}

	log.Info("contract terminated",
		slog.String("contract_id", id),
		slog.String("saved_krw", res.SavedKRW.String()),
	)

	res.Contract, err = s.Get(ctx, t, id)
	if err != nil {
		return TerminateResult{}, err
	}
	return res, nil
}

// Keep records the decision to continue a contract. Without decision columns
// the contract is marked renewed instead.
func (s *ContractService) Keep(ctx context.Context, t domain.Tenant, id string) (domain.Contract, error) {
	c, err := s.Get(ctx, t, id)
	if err != nil {
		return domain.Contract{}, err
	}
	if c.Status == domain.StatusTerminated {
		return domain.Contract{}, invalid(ErrInvalidTransition, "a terminated contract cannot be kept")
	}

	now := s.Now.now()
	err = s.withDecisions(ctx, func(decisions bool) error {
		if decisions {
			return s.Store.Contracts().Keep(ctx, id, t.UserID, now)
		}
		return s.Store.Contracts().MarkRenewed(ctx, id, t.UserID, now)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Contract{}, ErrContractNotFound
		}
		return domain.Contract{}, err
	}

	slogx.FromContext(ctx).Info("contract kept", slog.String("contract_id", id))
	return s.Get(ctx, t, id)
}

// Delete removes a contract. Contracts with recorded savings need confirm.
func (s *ContractService) Delete(ctx context.Context, t domain.Tenant, id string, confirm bool) error {
	c, err := s.Get(ctx, t, id)
	if err != nil {
		return err
	}
	if c.HasSavings() && !confirm {
		return ErrConfirmationRequired
	}
	if err := s.Store.Contracts().Delete(ctx, id, t.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrContractNotFound
		}
		return err
	}
	slogx.FromContext(ctx).Info("contract deleted", slog.String("contract_id", id))
	return nil
}

// withDecisions runs op in decision mode when the schema supports it. If the
// columns vanish underneath us the flag is downgraded and op retried once
// without them.
func (s *ContractService) withDecisions(ctx context.Context, op func(decisions bool) error) error {
	return retryWithoutDecisions(ctx, s.Schema, op)
}

func retryWithoutDecisions(ctx context.Context, flags *SchemaFlags, op func(decisions bool) error) error {
	decisions := flags.Decisions()
	err := op(decisions)
	if decisions && errors.Is(err, store.ErrUnknownColumn) {
		flags.DowngradeDecisions(ctx)
		err = op(false)
	}
	return err
}

func lookupPlan(ctx context.Context, st store.Store, plans domain.Plans, userID string) (domain.Plan, error) {
	if plans == nil {
		plans = domain.DefaultPlans()
	}
	u, err := st.Users().Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return plans.Lookup(""), nil
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("load user plan: %w", err)
	}
	return plans.Lookup(u.Plan), nil
}
