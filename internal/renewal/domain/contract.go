package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyKRW Currency = "KRW"
	CurrencyUSD Currency = "USD"
)

func (c Currency) Valid() bool { return c == CurrencyKRW || c == CurrencyUSD }

type Cycle string

const (
	CycleMonthly Cycle = "monthly"
	CycleYearly  Cycle = "yearly"
	CycleOnetime Cycle = "onetime"
)

func (c Cycle) Valid() bool {
	switch c {
	case CycleMonthly, CycleYearly, CycleOnetime:
		return true
	}
	return false
}

type ContractStatus string

const (
	StatusActive     ContractStatus = "active"
	StatusRenewed    ContractStatus = "renewed"
	StatusTerminated ContractStatus = "terminated"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case StatusActive, StatusRenewed, StatusTerminated:
		return true
	}
	return false
}

// Decision is the optional marker layered on top of the status. Empty means
// no decision has been recorded.
type Decision string

const (
	DecisionNone       Decision = ""
	DecisionKept       Decision = "kept"
	DecisionTerminated Decision = "terminated"
)

type Contract struct {
	ID             string
	UserID         string
	OrganizationID string // empty for personal contracts
	Name           string
	Memo           string
	Amount         decimal.Decimal
	Currency       Currency
	Cycle          Cycle
	ExpiresAt      time.Time // calendar date, midnight UTC
	NoticeDays     int
	AutoRenew      bool
	Status         ContractStatus
	Decision       Decision
	DecisionDate   *time.Time
	SavedAmount    decimal.NullDecimal // native currency, set on termination
	GuideSlug      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasSavings reports whether deleting the contract would drop recorded
// savings from the statistics.
func (c Contract) HasSavings() bool {
	return c.SavedAmount.Valid && c.SavedAmount.Decimal.IsPositive()
}

var (
	errNameRequired     = errors.New("name is required")
	errNegativeAmount   = errors.New("amount must not be negative")
	errCurrency         = errors.New("currency must be KRW or USD")
	errCycle            = errors.New("cycle must be monthly, yearly or onetime")
	errNegativeNotice   = errors.New("notice_days must not be negative")
	errExpiresRequired  = errors.New("expires_at is required")
	errNegativeSavedAmt = errors.New("saved_amount must not be negative")
)

// Validate checks the user-editable fields.
func (c Contract) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errNameRequired)
	}
	if c.Amount.IsNegative() {
		errs = append(errs, errNegativeAmount)
	}
	if !c.Currency.Valid() {
		errs = append(errs, errCurrency)
	}
	if !c.Cycle.Valid() {
		errs = append(errs, errCycle)
	}
	if c.NoticeDays < 0 {
		errs = append(errs, errNegativeNotice)
	}
	if c.ExpiresAt.IsZero() {
		errs = append(errs, errExpiresRequired)
	}
	return errors.Join(errs...)
}

// ValidateSavedAmount rejects negative savings so the accumulator never
// decreases.
func ValidateSavedAmount(v decimal.Decimal) error {
	if v.IsNegative() {
		return errNegativeSavedAmt
	}
	return nil
}

// ContractFilter narrows a contract listing. Zero value lists everything.
type ContractFilter struct {
	Status         ContractStatus
	OrganizationID string
}
