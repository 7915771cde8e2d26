package domain

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Alert is a contract inside its own notice window.
type Alert struct {
	Contract  Contract
	DaysUntil int
	Urgency   Urgency
}

type Summary struct {
	Urgent  int
	Warning int
	Normal  int

	TotalMonthlyKRW decimal.Decimal
	TotalMonthlyUSD decimal.Decimal
	TotalMonthly    decimal.Decimal // KRW, USD converted at Rate
	TotalYearly     decimal.Decimal // KRW, annualized

	Alerts   []Alert
	Featured *Alert

	Rate ExchangeRate
}

// Summarize reduces active contracts into urgency buckets, currency
// normalized totals and the alert window. It has no side effects; callers
// pass only the contracts they want counted.
func Summarize(contracts []Contract, rate ExchangeRate, now time.Time, loc *time.Location) Summary {
	s := Summary{
		TotalMonthlyKRW: decimal.Zero,
		TotalMonthlyUSD: decimal.Zero,
		TotalYearly:     decimal.Zero,
		Alerts:          []Alert{},
		Rate:            rate,
	}

	for _, c := range contracts {
		days := DaysUntil(c.ExpiresAt, now, loc)
		urgency := UrgencyOf(days)

		switch urgency {
		case UrgencyDanger:
			s.Urgent++
		case UrgencyWarning:
			s.Warning++
		default:
			s.Normal++
		}

		monthly := MonthlyAmount(c.Amount, c.Cycle)
		if c.Currency == CurrencyUSD {
			s.TotalMonthlyUSD = s.TotalMonthlyUSD.Add(monthly)
		} else {
			s.TotalMonthlyKRW = s.TotalMonthlyKRW.Add(monthly)
		}
		s.TotalYearly = s.TotalYearly.Add(ToKRW(AnnualizedSavings(c.Amount, c.Cycle), c.Currency, rate.Rate))

		if days <= c.NoticeDays {
			s.Alerts = append(s.Alerts, Alert{Contract: c, DaysUntil: days, Urgency: urgency})
		}
	}

	s.TotalMonthly = s.TotalMonthlyKRW.Add(s.TotalMonthlyUSD.Mul(rate.Rate))

	slices.SortFunc(s.Alerts, func(a, b Alert) int {
		if c := a.Contract.ExpiresAt.Compare(b.Contract.ExpiresAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Contract.ID, b.Contract.ID)
	})

	for i := range s.Alerts {
		if s.Alerts[i].Urgency == UrgencyDanger {
			featured := s.Alerts[i]
			s.Featured = &featured
			break
		}
	}

	return s
}
