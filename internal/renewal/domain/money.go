package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RateSource tells callers whether a rate is real market data.
type RateSource string

const (
	RateSourceLive     RateSource = "live"
	RateSourceFallback RateSource = "fallback"
)

// DefaultFallbackRate is used whenever the live USD to KRW rate is unavailable.
var DefaultFallbackRate = decimal.NewFromInt(1400)

type ExchangeRate struct {
	Base      Currency
	Quote     Currency
	Rate      decimal.Decimal
	Source    RateSource
	FetchedAt time.Time
}

// FallbackRate builds a fallback-tagged USD to KRW rate.
func FallbackRate(rate decimal.Decimal, at time.Time) ExchangeRate {
	return ExchangeRate{
		Base:      CurrencyUSD,
		Quote:     CurrencyKRW,
		Rate:      rate,
		Source:    RateSourceFallback,
		FetchedAt: at,
	}
}

var twelve = decimal.NewFromInt(12)

// AnnualizedSavings estimates what terminating a contract saves per year.
// One-off payments have no recurring exposure.
func AnnualizedSavings(amount decimal.Decimal, cycle Cycle) decimal.Decimal {
	switch cycle {
	case CycleMonthly:
		return amount.Mul(twelve)
	case CycleYearly:
		return amount
	default:
		return decimal.Zero
	}
}

// MonthlyAmount normalizes a recurring amount to a monthly basis.
func MonthlyAmount(amount decimal.Decimal, cycle Cycle) decimal.Decimal {
	switch cycle {
	case CycleMonthly:
		return amount
	case CycleYearly:
		return amount.Div(twelve)
	default:
		return decimal.Zero
	}
}

// ToKRW converts an amount in currency to KRW using a USD to KRW rate.
func ToKRW(amount decimal.Decimal, currency Currency, usdToKRW decimal.Decimal) decimal.Decimal {
	if currency == CurrencyUSD {
		return amount.Mul(usdToKRW)
	}
	return amount
}

var (
	krwPrinter = message.NewPrinter(language.Korean)
	usdPrinter = message.NewPrinter(language.AmericanEnglish)
)

// FormatMoney renders an amount for display, e.g. ₩62,000 or $1,234.50.
func FormatMoney(amount decimal.Decimal, currency Currency) string {
	switch currency {
	case CurrencyUSD:
		f, _ := amount.Round(2).Float64()
		return usdPrinter.Sprintf("$%.2f", f)
	default:
		return krwPrinter.Sprintf("₩%d", amount.Round(0).IntPart())
	}
}
