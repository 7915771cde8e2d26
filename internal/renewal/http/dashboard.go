package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService
	Location         *time.Location
	Now              service.Clock
}

// ServeHTTP godoc
//
//	@Summary		Dashboard Summary
//	@Description	Urgency counts, currency-normalized totals and the contracts inside their notice window.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	renewalsdk.DashboardSummary
//	@Failure		401	{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/dashboard/summary [get].
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	summary, err := h.DashboardService.Summary(r.Context(), tenantFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "load dashboard")
		return
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now()
	}
	httpx.WriteJSON(w, http.StatusOK, toSummary(summary, now, h.Location))
}

// ExchangeRateCacheSeconds is how long clients may reuse a live rate.
const ExchangeRateCacheSeconds = 3600

// ExchangeRateHandler godoc
//
//	@Summary		USD to KRW Exchange Rate
//	@Description	Current rate with provenance. source is "fallback" when no live value could be fetched.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	renewalsdk.ExchangeRate
//	@Failure		401	{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/exchange-rate [get].
func ExchangeRateHandler(rates service.RateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rate := rates.Current(r.Context())
		if rate.Source == domain.RateSourceLive {
			httpx.Cacheable(w, ExchangeRateCacheSeconds)
		}
		httpx.WriteJSON(w, http.StatusOK, toRate(rate))
	}
}
