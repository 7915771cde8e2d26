package http

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func contractRequest(name, amount, currency, expires string) renewalsdk.ContractRequest {
	a := decimal.RequireFromString(amount)
	return renewalsdk.ContractRequest{
		Name:      name,
		Amount:    &a,
		Currency:  currency,
		Cycle:     "monthly",
		ExpiresAt: expires,
	}
}

func createContract(t *testing.T, h *harness, token string, req renewalsdk.ContractRequest) renewalsdk.Contract {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/contracts", token, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[renewalsdk.Contract](t, rec)
}

func TestCreateContract(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")

	c := createContract(t, h, tok, contractRequest("  Netflix ", "17000", "krw", "2026-05-06"))
	require.NotEmpty(t, c.ID)
	require.Equal(t, "Netflix", c.Name)
	require.Equal(t, "KRW", c.Currency)
	require.Equal(t, "active", c.Status)
	require.Equal(t, "2026-05-06", c.ExpiresAt)
	require.Equal(t, renewalsdk.DefaultNoticeDays, c.NoticeDays)
	require.Equal(t, 5, c.DaysUntil)
	require.Equal(t, "danger", c.Urgency)
	require.Nil(t, c.SavedAmount)

	rec := h.do(t, http.MethodGet, "/contracts/"+c.ID, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, c.ID, decodeBody[renewalsdk.Contract](t, rec).ID)
}

func TestCreateContractValidation(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{
			name:    "empty body",
			body:    nil,
			message: "Request body is required",
		},
		{
			name:    "unknown field",
			body:    `{"name":"x","amount":"1","currency":"KRW","cycle":"monthly","expires_at":"2026-06-01","owner":"me"}`,
			message: "Invalid JSON body",
		},
		{
			name:    "missing name",
			body:    contractRequest("", "1000", "KRW", "2026-06-01"),
			message: "name is required",
		},
		{
			name:    "bad currency",
			body:    contractRequest("Gym", "1000", "EUR", "2026-06-01"),
			message: "currency must be one of",
		},
		{
			name:    "bad date",
			body:    contractRequest("Gym", "1000", "KRW", "06/01/2026"),
			message: "expires_at must be a date in YYYY-MM-DD format",
		},
		{
			name:    "negative amount",
			body:    contractRequest("Gym", "-1", "KRW", "2026-06-01"),
			message: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(t, http.MethodPost, "/contracts", tok, tt.body)
			er := requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvalidRequest)
			require.Contains(t, er.Error, tt.message)
		})
	}
}

func TestCreateContractPlanLimit(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")

	for i := 0; i < 5; i++ {
		createContract(t, h, tok, contractRequest("Service", "1000", "KRW", "2026-09-01"))
	}

	rec := h.do(t, http.MethodPost, "/contracts", tok, contractRequest("One more", "1000", "KRW", "2026-09-01"))
	er := requireError(t, rec, http.StatusForbidden, renewalsdk.CodePlanLimit)
	require.Equal(t, "the free plan allows up to 5 active contracts", er.Error)
}

func TestContractsAreScopedToOwner(t *testing.T) {
	h := newHarness(t)
	_, alice := h.user(t, "alice@example.com")
	_, bob := h.user(t, "bob@example.com")

	c := createContract(t, h, alice, contractRequest("Netflix", "17000", "KRW", "2026-06-01"))

	rec := h.do(t, http.MethodGet, "/contracts/"+c.ID, bob, nil)
	requireError(t, rec, http.StatusNotFound, renewalsdk.CodeNotFound)

	rec = h.do(t, http.MethodPost, "/contracts/"+c.ID+"/terminate", bob, renewalsdk.TerminateRequest{SavedAmount: decPtr("1")})
	requireError(t, rec, http.StatusNotFound, renewalsdk.CodeNotFound)

	list := decodeBody[renewalsdk.ContractList](t, h.do(t, http.MethodGet, "/contracts", bob, nil))
	require.Empty(t, list.Contracts)
}

func TestTerminateConvertsAndAccumulatesOnce(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")

	c := createContract(t, h, tok, contractRequest("ChatGPT", "20", "USD", "2026-05-10"))

	rec := h.do(t, http.MethodPost, "/contracts/"+c.ID+"/terminate", tok, renewalsdk.TerminateRequest{SavedAmount: decPtr("20")})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[renewalsdk.TerminateResponse](t, rec)
	require.True(t, res.SavedKRW.Equal(decimal.NewFromInt(28000)), res.SavedKRW.String())
	require.True(t, res.AccumulatorUpdated)
	require.NotNil(t, res.ExchangeRate)
	require.Equal(t, "live", res.ExchangeRate.Source)
	require.Equal(t, "terminated", res.Contract.Status)
	require.Equal(t, "terminated", res.Contract.DecisionStatus)
	require.NotNil(t, res.Contract.SavedAmount)

	rec = h.do(t, http.MethodPost, "/contracts/"+c.ID+"/terminate", tok, renewalsdk.TerminateRequest{SavedAmount: decPtr("20")})
	requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvalidTransition)

	profile := decodeBody[renewalsdk.Profile](t, h.do(t, http.MethodGet, "/me", tok, nil))
	require.True(t, profile.TotalSavedKRW.Equal(decimal.NewFromInt(28000)), profile.TotalSavedKRW.String())

	list := decodeBody[renewalsdk.ContractList](t, h.do(t, http.MethodGet, "/contracts?status=terminated", tok, nil))
	require.Len(t, list.Contracts, 1)
}

func TestTerminateRequiresSavedAmount(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")
	c := createContract(t, h, tok, contractRequest("Gym", "50000", "KRW", "2026-06-01"))

	rec := h.do(t, http.MethodPost, "/contracts/"+c.ID+"/terminate", tok, `{}`)
	er := requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvalidRequest)
	require.Contains(t, er.Error, "saved_amount is required")

	rec = h.do(t, http.MethodPost, "/contracts/"+c.ID+"/terminate", tok, renewalsdk.TerminateRequest{SavedAmount: decPtr("-5")})
	requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvalidRequest)
}

func TestKeepRenewAndDelete(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")
	c := createContract(t, h, tok, contractRequest("Adobe", "30000", "KRW", "2026-05-03"))

	rec := h.do(t, http.MethodPost, "/contracts/"+c.ID+"/keep", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	kept := decodeBody[renewalsdk.Contract](t, rec)
	require.Equal(t, "active", kept.Status)
	require.Equal(t, "kept", kept.DecisionStatus)

	// A kept contract leaves the dashboard.
	summary := decodeBody[renewalsdk.DashboardSummary](t, h.do(t, http.MethodGet, "/dashboard/summary", tok, nil))
	require.Zero(t, summary.Urgent)

	rec = h.do(t, http.MethodPost, "/contracts/"+c.ID+"/renew", tok, renewalsdk.RenewRequest{NextExpiresAt: "2027-05-03"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	renewed := decodeBody[renewalsdk.Contract](t, rec)
	require.Equal(t, "active", renewed.Status)
	require.Equal(t, "2027-05-03", renewed.ExpiresAt)
	require.Empty(t, renewed.DecisionStatus)

	rec = h.do(t, http.MethodPost, "/contracts/"+c.ID+"/renew", tok, renewalsdk.RenewRequest{NextExpiresAt: "soon"})
	requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeInvalidRequest)

	rec = h.do(t, http.MethodDelete, "/contracts/"+c.ID, tok, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(t, http.MethodGet, "/contracts/"+c.ID, tok, nil)
	requireError(t, rec, http.StatusNotFound, renewalsdk.CodeNotFound)
}

func TestDeleteWithSavingsNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")
	c := createContract(t, h, tok, contractRequest("Gym", "50000", "KRW", "2026-06-01"))

	rec := h.do(t, http.MethodPost, "/contracts/"+c.ID+"/terminate", tok, renewalsdk.TerminateRequest{SavedAmount: decPtr("600000")})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodDelete, "/contracts/"+c.ID, tok, nil)
	requireError(t, rec, http.StatusBadRequest, renewalsdk.CodeConfirmationRequired)

	rec = h.do(t, http.MethodDelete, "/contracts/"+c.ID+"?confirm=true", tok, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdateContract(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")
	c := createContract(t, h, tok, contractRequest("Gym", "50000", "KRW", "2026-06-01"))

	req := contractRequest("Gym (family)", "80000", "KRW", "2026-07-01")
	notice := 14
	req.NoticeDays = &notice
	rec := h.do(t, http.MethodPut, "/contracts/"+c.ID, tok, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeBody[renewalsdk.Contract](t, rec)
	require.Equal(t, "Gym (family)", updated.Name)
	require.True(t, updated.Amount.Equal(decimal.NewFromInt(80000)))
	require.Equal(t, "2026-07-01", updated.ExpiresAt)
	require.Equal(t, 14, updated.NoticeDays)
}

func TestDashboardSummary(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")

	createContract(t, h, tok, contractRequest("Netflix", "17000", "KRW", "2026-05-04"))
	createContract(t, h, tok, contractRequest("ChatGPT", "20", "USD", "2026-05-21"))
	createContract(t, h, tok, contractRequest("Domain", "15000", "KRW", "2026-12-01"))

	rec := h.do(t, http.MethodGet, "/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	s := decodeBody[renewalsdk.DashboardSummary](t, rec)
	require.Equal(t, 1, s.Urgent)
	require.Equal(t, 1, s.Warning)
	require.Equal(t, 1, s.Normal)
	require.True(t, s.TotalMonthlyKRW.Equal(decimal.NewFromInt(32000)), s.TotalMonthlyKRW.String())
	require.True(t, s.TotalMonthlyUSD.Equal(decimal.NewFromInt(20)), s.TotalMonthlyUSD.String())
	require.True(t, s.TotalMonthly.Equal(decimal.NewFromInt(60000)), s.TotalMonthly.String())
	require.Len(t, s.Alerts, 2)
	require.NotNil(t, s.Featured)
	require.Equal(t, "Netflix", s.Featured.Contract.Name)
	require.Equal(t, 3, s.Featured.DaysUntil)
	require.Equal(t, "live", s.ExchangeRate.Source)
}

func TestExchangeRate(t *testing.T) {
	h := newHarness(t)
	_, tok := h.user(t, "a@example.com")

	rec := h.do(t, http.MethodGet, "/exchange-rate", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	rate := decodeBody[renewalsdk.ExchangeRate](t, rec)
	require.Equal(t, "USD", rate.Base)
	require.Equal(t, "KRW", rate.Quote)
	require.True(t, rate.Rate.Equal(decimal.NewFromInt(1400)))
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
