package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
)

// DashboardService assembles the caller's dashboard summary.
type DashboardService struct {
	Store    store.Store
	Rates    RateProvider
	Schema   *SchemaFlags
	Location *time.Location
	Now      Clock
}

// Summary reduces the active contracts that still await a decision.
// Without decision columns every active contract counts.
func (s *DashboardService) Summary(ctx context.Context, t domain.Tenant) (domain.Summary, error) {
	var contracts []domain.Contract
	err := retryWithoutDecisions(ctx, s.Schema, func(undecidedOnly bool) error {
		var err error
		contracts, err = s.Store.Contracts().ListActive(ctx, t.UserID, undecidedOnly)
		return err
	})
	if err != nil {
		return domain.Summary{}, fmt.Errorf("list active contracts: %w", err)
	}

	rate := s.Rates.Current(ctx)
	return domain.Summarize(contracts, rate, s.Now.now(), locationOrDefault(s.Location)), nil
}
