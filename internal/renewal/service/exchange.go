package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultExchangeRateURL = "https://open.er-api.com/v6/latest/USD"
	DefaultExchangeRateTTL = time.Hour
)

// RateCache stores the last live rate. Implementations may be shared between
// replicas.
type RateCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context) (rate domain.ExchangeRate, ok bool, err error)
	Set(ctx context.Context, rate domain.ExchangeRate, ttl time.Duration) error
}

// ExchangeRateService resolves the USD to KRW rate from a public endpoint,
// caching live answers and substituting a fixed rate on any failure.
type ExchangeRateService struct {
	URL      string
	Client   *http.Client
	Cache    RateCache
	TTL      time.Duration
	Fallback decimal.Decimal
	Now      Clock

	group singleflight.Group
}

func NewExchangeRateService(url string, cache RateCache, ttl time.Duration, fallback decimal.Decimal) *ExchangeRateService {
	if url == "" {
		url = DefaultExchangeRateURL
	}
	if ttl <= 0 {
		ttl = DefaultExchangeRateTTL
	}
	if !fallback.IsPositive() {
		fallback = domain.DefaultFallbackRate
	}
	if cache == nil {
		cache = &MemoryRateCache{}
	}
	return &ExchangeRateService{
		URL:      url,
		Client:   &http.Client{Timeout: 5 * time.Second},
		Cache:    cache,
		TTL:      ttl,
		Fallback: fallback,
	}
}

// Current never fails. The Source field tells live data from the fallback.
func (s *ExchangeRateService) Current(ctx context.Context) domain.ExchangeRate {
	log := slogx.FromContext(ctx)

	if s.Cache != nil {
		rate, ok, err := s.Cache.Get(ctx)
		if err != nil {
			log.Warn("exchange rate cache read failed", slog.Any("error", err))
		} else if ok {
			return rate
		}
	}

	v, _, _ := s.group.Do("USD/KRW", func() (any, error) {
		return s.refresh(ctx), nil
	})
	return v.(domain.ExchangeRate)
}

func (s *ExchangeRateService) refresh(ctx context.Context) domain.ExchangeRate {
	log := slogx.FromContext(ctx)
	now := s.Now.now()

	rate, err := s.fetch(ctx)
	if err != nil {
		log.Warn("using fallback exchange rate",
			slog.String("rate", s.fallback().String()),
			slog.Any("error", err),
		)
		return domain.FallbackRate(s.fallback(), now)
	}

	live := domain.ExchangeRate{
		Base:      domain.CurrencyUSD,
		Quote:     domain.CurrencyKRW,
		Rate:      rate,
		Source:    domain.RateSourceLive,
		FetchedAt: now,
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, live, s.ttl()); err != nil {
			log.Warn("exchange rate cache write failed", slog.Any("error", err))
		}
	}
	return live
}

type rateResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (s *ExchangeRateService) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("fetch rate: unexpected status %d", resp.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decode rate: %w", err)
	}
	krw, ok := body.Rates[string(domain.CurrencyKRW)]
	if !ok {
		return decimal.Zero, fmt.Errorf("decode rate: KRW missing")
	}
	if !krw.IsPositive() {
		return decimal.Zero, fmt.Errorf("decode rate: KRW rate %s is not positive", krw)
	}
	return krw, nil
}

func (s *ExchangeRateService) fallback() decimal.Decimal {
	if s.Fallback.IsPositive() {
		return s.Fallback
	}
	return domain.DefaultFallbackRate
}

func (s *ExchangeRateService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultExchangeRateTTL
}

// MemoryRateCache keeps the rate in process.
type MemoryRateCache struct {
	Now Clock

	mu      sync.Mutex
	rate    domain.ExchangeRate
	expires time.Time
}

func (c *MemoryRateCache) Get(context.Context) (domain.ExchangeRate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expires.IsZero() || !c.Now.now().Before(c.expires) {
		return domain.ExchangeRate{}, false, nil
	}
	return c.rate, true, nil
}

func (c *MemoryRateCache) Set(_ context.Context, rate domain.ExchangeRate, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rate = rate
	c.expires = c.Now.now().Add(ttl)
	return nil
}
