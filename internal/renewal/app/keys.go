package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/renewal/pkg/cryptox"
	"github.com/aussiebroadwan/renewal/pkg/jwtx"
)

// InitAuthKeys loads the verification keys of the hosted auth provider.
//
// Key sources:
//   - AUTH_JWKS_JSON: a static key set, loaded once. Used by tests and
//     deployments without outbound access to the provider.
//   - AUTH_JWKS_URL: fetched now and then refreshed by a KeyRefresher. A
//     failed first fetch is not fatal; /readyz reports degraded until a
//     refresh succeeds.
//
// The returned refresher is nil for static keys.
func InitAuthKeys(ctx context.Context, cfg Config, logger *slog.Logger) (*jwtx.KeySet, *jwtx.KeyVerifier, *KeyRefresher, error) {
	keys := jwtx.NewKeySet()
	var refresher *KeyRefresher

	switch {
	case cfg.JWKSJSON != "":
		jwks, err := jwtx.ParseJWKS([]byte(cfg.JWKSJSON))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to parse AUTH_JWKS_JSON: %w", err)
		}
		if err := keys.ResetFromJWKS(jwks); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load AUTH_JWKS_JSON: %w", err)
		}
		logger.Info("static verification keys loaded", "num_keys", keys.Len())

	case cfg.JWKSURL != "":
		refresher = NewKeyRefresher(cfg.JWKSURL, keys, cfg.JWKSRefresh, logger)
		if err := refresher.Refresh(ctx); err != nil {
			logger.Warn("initial jwks fetch failed, will retry", "url", cfg.JWKSURL, "error", err)
		}

	default:
		return nil, nil, nil, errors.New("no verification key source configured")
	}

	verifier, err := jwtx.NewVerifier(cfg.AuthAlgorithm, keys, cfg.AuthIssuer, cfg.AuthAudience)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("token verifier ready",
		"algorithm", verifier.Alg(),
		"issuer", cfg.AuthIssuer,
		"audience", cfg.AuthAudience,
	)
	return keys, verifier, refresher, nil
}

// KeyRefresher periodically replaces the key set from the provider's JWKS
// endpoint. A failed refresh keeps the previous keys.
type KeyRefresher struct {
	URL      string
	Client   *http.Client
	Keys     *jwtx.KeySet
	Interval time.Duration
	Logger   *slog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewKeyRefresher defaults interval to 1 hour.
func NewKeyRefresher(url string, keys *jwtx.KeySet, interval time.Duration, logger *slog.Logger) *KeyRefresher {
	if interval <= 0 {
		interval = time.Hour
	}
	return &KeyRefresher{
		URL:      url,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Keys:     keys,
		Interval: interval,
		Logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Refresh fetches the key set once.
func (k *KeyRefresher) Refresh(ctx context.Context) error {
	jwks, err := jwtx.FetchJWKS(ctx, k.Client, k.URL)
	if err != nil {
		return err
	}
	if err := k.Keys.ResetFromJWKS(jwks); err != nil {
		return err
	}
	k.Logger.Info("verification keys refreshed", "num_keys", k.Keys.Len())
	return nil
}

// Start runs the refresher in the background until Stop is called.
func (k *KeyRefresher) Start() {
	go k.run()
	k.Logger.Info("jwks refresher started", "interval", k.Interval)
}

// Stop blocks until an in-progress refresh has finished.
func (k *KeyRefresher) Stop() {
	close(k.stopCh)
	<-k.doneCh
	k.Logger.Info("jwks refresher stopped")
}

func (k *KeyRefresher) run() {
	defer close(k.doneCh)

	ticker := time.NewTicker(k.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := k.Refresh(ctx); err != nil {
				k.Logger.Error("jwks refresh failed, keeping previous keys", "error", err)
			}
			cancel()
		case <-k.stopCh:
			return
		}
	}
}

// CronSecretChecker builds the check for the batch trigger. A configured
// hash wins over the plain secret; with neither every request is refused.
func CronSecretChecker(cfg Config, logger *slog.Logger) func(string) bool {
	switch {
	case cfg.CronSecretHash != "":
		return func(secret string) bool {
			return cryptox.VerifySecret(secret, cfg.CronSecretHash) == nil
		}
	case cfg.CronSecret != "":
		return func(secret string) bool {
			return cryptox.EqualSecrets(secret, cfg.CronSecret)
		}
	}
	logger.Warn("CRON_SECRET not configured, batch trigger disabled")
	return func(string) bool { return false }
}
