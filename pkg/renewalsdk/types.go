package renewalsdk

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// Errors and health
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a human-readable message.
	Error string `json:"error"`

	// Code is a stable machine-readable error kind (e.g. "not_found").
	Code string `json:"code"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Keys     string `json:"keys"`
}

// ============================================================================
// Contracts
// ============================================================================

// ContractRequest creates or replaces the editable fields of a contract.
// Dates use the YYYY-MM-DD layout.
type ContractRequest struct {
	Name       string           `json:"name" validate:"required,max=200"`
	Memo       string           `json:"memo,omitempty" validate:"max=2000"`
	Amount     *decimal.Decimal `json:"amount" validate:"required"`
	Currency   string           `json:"currency" validate:"required,oneof=KRW USD krw usd"`
	Cycle      string           `json:"cycle" validate:"required,oneof=monthly yearly onetime"`
	ExpiresAt  string           `json:"expires_at" validate:"required,datetime=2006-01-02"`
	NoticeDays *int             `json:"notice_days,omitempty" validate:"omitempty,gte=0,lte=3650"`
	AutoRenew  bool             `json:"auto_renew"`
	GuideSlug  string           `json:"guide_slug,omitempty" validate:"omitempty,max=100"`
}

// DefaultNoticeDays applies when a request omits notice_days.
const DefaultNoticeDays = 30

type Contract struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id,omitempty"`
	Name           string           `json:"name"`
	Memo           string           `json:"memo,omitempty"`
	Amount         decimal.Decimal  `json:"amount"`
	Currency       string           `json:"currency"`
	Cycle          string           `json:"cycle"`
	ExpiresAt      string           `json:"expires_at"`
	NoticeDays     int              `json:"notice_days"`
	AutoRenew      bool             `json:"auto_renew"`
	Status         string           `json:"status"`
	DecisionStatus string           `json:"decision_status,omitempty"`
	DecisionDate   *time.Time       `json:"decision_date,omitempty"`
	SavedAmount    *decimal.Decimal `json:"saved_amount,omitempty"`
	GuideSlug      string           `json:"guide_slug,omitempty"`
	DaysUntil      int              `json:"days_until"`
	Urgency        string           `json:"urgency"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type ContractList struct {
	Contracts []Contract `json:"contracts"`
}

type RenewRequest struct {
	NextExpiresAt string `json:"next_expires_at" validate:"required,datetime=2006-01-02"`
}

type TerminateRequest struct {
	SavedAmount *decimal.Decimal `json:"saved_amount" validate:"required"`
}

type TerminateResponse struct {
	Contract Contract        `json:"contract"`
	SavedKRW decimal.Decimal `json:"saved_krw"`

	// ExchangeRate is set when the savings were converted from USD.
	ExchangeRate *ExchangeRate `json:"exchange_rate,omitempty"`

	// AccumulatorUpdated is false when the contract was terminated but the
	// running savings total could not be updated.
	AccumulatorUpdated bool `json:"accumulator_updated"`
}

// ============================================================================
// Dashboard and exchange rate
// ============================================================================

type ExchangeRate struct {
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"` // "live" or "fallback"
	FetchedAt time.Time       `json:"fetched_at"`
}

type Alert struct {
	Contract  Contract `json:"contract"`
	DaysUntil int      `json:"days_until"`
	Urgency   string   `json:"urgency"`
}

type DashboardSummary struct {
	Urgent          int             `json:"urgent"`
	Warning         int             `json:"warning"`
	Normal          int             `json:"normal"`
	TotalMonthlyKRW decimal.Decimal `json:"total_monthly_krw"`
	TotalMonthlyUSD decimal.Decimal `json:"total_monthly_usd"`
	TotalMonthly    decimal.Decimal `json:"total_monthly"`
	TotalYearly     decimal.Decimal `json:"total_yearly"`
	Alerts          []Alert         `json:"alerts"`
	Featured        *Alert          `json:"featured,omitempty"`
	ExchangeRate    ExchangeRate    `json:"exchange_rate"`
}

// ============================================================================
// Organizations and invitations
// ============================================================================

type OrganizationRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type OrganizationList struct {
	Organizations []Organization `json:"organizations"`
}

type Member struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type MemberList struct {
	Members []Member `json:"members"`
}

type InvitationRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Role  string `json:"role" validate:"required,oneof=admin member"`
}

type Invitation struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	InvitedBy      string    `json:"invited_by"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// InvitationCreated is the only response that carries the raw token.
type InvitationCreated struct {
	Invitation
	Token string `json:"token"`
	Link  string `json:"link"`
}

type InvitationList struct {
	Invitations []Invitation `json:"invitations"`
}

type InvitationPreview struct {
	OrganizationName string    `json:"organization_name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// ============================================================================
// Users, plans and guides
// ============================================================================

type Plan struct {
	Name         string   `json:"name"`
	MaxContracts int      `json:"max_contracts"` // 0 means unlimited
	AlertWindows []int    `json:"alert_windows"`
	Features     []string `json:"features"`
}

type PlanList struct {
	Plans []Plan `json:"plans"`
}

type Profile struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Plan          Plan            `json:"plan"`
	TotalSavedKRW decimal.Decimal `json:"total_saved_krw"`
	Organizations []Organization  `json:"organizations"`
	SuperAdmin    bool            `json:"super_admin"`
}

type GuideRequest struct {
	ServiceName string   `json:"service_name" validate:"required,max=100"`
	URL         string   `json:"url,omitempty" validate:"omitempty,url"`
	Steps       []string `json:"steps" validate:"max=50,dive,required,max=500"`
	Notes       string   `json:"notes,omitempty" validate:"max=2000"`
}

type Guide struct {
	Slug        string    `json:"slug"`
	ServiceName string    `json:"service_name"`
	URL         string    `json:"url,omitempty"`
	Steps       []string  `json:"steps"`
	Notes       string    `json:"notes,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GuideList struct {
	Guides []Guide `json:"guides"`
}

// ============================================================================
// Batch trigger
// ============================================================================

type LeadResult struct {
	LeadDays int    `json:"lead_days"`
	Type     string `json:"type"`
	Sent     int    `json:"sent"`
}

type NotificationRunResponse struct {
	Results []LeadResult `json:"results"`
	Total   int          `json:"total"`
}
