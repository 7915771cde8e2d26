// Package cache holds the redis-backed pieces shared between replicas: the
// exchange rate cache and the reminder publisher.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	DefaultRateKey             = "renewal:exchange-rate:USD:KRW"
	DefaultNotificationChannel = "renewal:notifications"
)

// NewClient connects to the redis server named by url (redis://...) and
// checks the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RateCache stores the live exchange rate under a single key with a TTL.
type RateCache struct {
	Client *redis.Client
	Key    string
}

func NewRateCache(client *redis.Client) *RateCache {
	return &RateCache{Client: client, Key: DefaultRateKey}
}

type ratePayload struct {
	Base      domain.Currency   `json:"base"`
	Quote     domain.Currency   `json:"quote"`
	Rate      decimal.Decimal   `json:"rate"`
	Source    domain.RateSource `json:"source"`
	FetchedAt time.Time         `json:"fetched_at"`
}

func (c *RateCache) Get(ctx context.Context) (domain.ExchangeRate, bool, error) {
	raw, err := c.Client.Get(ctx, c.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ExchangeRate{}, false, nil
	}
	if err != nil {
		return domain.ExchangeRate{}, false, fmt.Errorf("redis get %s: %w", c.Key, err)
	}

	var p ratePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.ExchangeRate{}, false, fmt.Errorf("decode cached rate: %w", err)
	}
	return domain.ExchangeRate(p), true, nil
}

func (c *RateCache) Set(ctx context.Context, rate domain.ExchangeRate, ttl time.Duration) error {
	raw, err := json.Marshal(ratePayload(rate))
	if err != nil {
		return fmt.Errorf("encode rate: %w", err)
	}
	if err := c.Client.Set(ctx, c.Key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.Key, err)
	}
	return nil
}

// Publisher dispatches reminders as JSON messages on a pub/sub channel for
// a mailer or push worker to consume.
type Publisher struct {
	Client  *redis.Client
	Channel string
}

func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultNotificationChannel
	}
	return &Publisher{Client: client, Channel: channel}
}

// Message is the published form of a reminder.
type Message struct {
	ContractID   string `json:"contract_id"`
	UserID       string `json:"user_id"`
	Email        string `json:"email,omitempty"`
	ContractName string `json:"contract_name"`
	ExpiresAt    string `json:"expires_at"`
	LeadDays     int    `json:"lead_days"`
	Type         string `json:"type"`
	NoticeDays   int    `json:"notice_days"`
	AutoRenew    bool   `json:"auto_renew"`
}

func (p *Publisher) Dispatch(ctx context.Context, n domain.Notification) error {
	raw, err := json.Marshal(Message{
		ContractID:   n.ContractID,
		UserID:       n.UserID,
		Email:        n.Email,
		ContractName: n.ContractName,
		ExpiresAt:    domain.FormatDate(n.ExpiresAt),
		LeadDays:     n.LeadDays,
		Type:         n.Type,
		NoticeDays:   n.NoticeDays,
		AutoRenew:    n.AutoRenew,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := p.Client.Publish(ctx, p.Channel, raw).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
