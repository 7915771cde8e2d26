package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User mirrors an identity of the hosted auth provider. ID is the provider
// uuid.
type User struct {
	ID            string
	Email         string
	Plan          string
	TotalSavedKRW decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CancellationGuide struct {
	Slug        string
	ServiceName string
	URL         string
	Steps       []string
	Notes       string
	UpdatedAt   time.Time
}
