package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/stretchr/testify/require"
)

func rateServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestExchangeRateLiveIsCached(t *testing.T) {
	srv, hits := rateServer(t, http.StatusOK, `{"result":"success","rates":{"USD":1,"KRW":1385.52}}`)
	clock := newClock(testNow)
	svc := NewExchangeRateService(srv.URL, &MemoryRateCache{Now: clock.Now}, time.Hour, dec("1400"))
	svc.Now = clock.Now

	rate := svc.Current(context.Background())
	require.Equal(t, domain.RateSourceLive, rate.Source)
	require.True(t, dec("1385.52").Equal(rate.Rate), rate.Rate.String())
	require.Equal(t, domain.CurrencyUSD, rate.Base)

	svc.Current(context.Background())
	require.EqualValues(t, 1, hits.Load())

	clock.Advance(time.Hour)
	svc.Current(context.Background())
	require.EqualValues(t, 2, hits.Load())
}

func TestExchangeRateFallback(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"server error":   {http.StatusInternalServerError, `{"rates":{"KRW":1300}}`},
		"malformed json": {http.StatusOK, `{"rates":`},
		"missing krw":    {http.StatusOK, `{"rates":{"USD":1}}`},
		"zero rate":      {http.StatusOK, `{"rates":{"KRW":0}}`},
		"negative rate":  {http.StatusOK, `{"rates":{"KRW":-5}}`},
		"not a number":   {http.StatusOK, `{"rates":{"KRW":"NaN"}}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv, hits := rateServer(t, tc.status, tc.body)
			svc := NewExchangeRateService(srv.URL, nil, time.Hour, dec("1400"))

			rate := svc.Current(context.Background())
			require.Equal(t, domain.RateSourceFallback, rate.Source)
			require.True(t, dec("1400").Equal(rate.Rate))

			// fallback values are not cached
			svc.Current(context.Background())
			require.EqualValues(t, 2, hits.Load())
		})
	}
}

func TestExchangeRateUnreachable(t *testing.T) {
	srv, _ := rateServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	svc := NewExchangeRateService(url, nil, 0, dec("0"))
	rate := svc.Current(context.Background())
	require.Equal(t, domain.RateSourceFallback, rate.Source)
	require.True(t, domain.DefaultFallbackRate.Equal(rate.Rate))
}
