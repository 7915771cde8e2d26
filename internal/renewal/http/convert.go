package http

import (
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
)

func toContract(c domain.Contract, now time.Time, loc *time.Location) renewalsdk.Contract {
	days := domain.DaysUntil(c.ExpiresAt, now, loc)
	out := renewalsdk.Contract{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Memo:           c.Memo,
		Amount:         c.Amount,
		Currency:       string(c.Currency),
		Cycle:          string(c.Cycle),
		ExpiresAt:      domain.FormatDate(c.ExpiresAt),
		NoticeDays:     c.NoticeDays,
		AutoRenew:      c.AutoRenew,
		Status:         string(c.Status),
		DecisionStatus: string(c.Decision),
		DecisionDate:   c.DecisionDate,
		GuideSlug:      c.GuideSlug,
		DaysUntil:      days,
		Urgency:        string(domain.UrgencyOf(days)),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if c.SavedAmount.Valid {
		saved := c.SavedAmount.Decimal
		out.SavedAmount = &saved
	}
	return out
}

func toContracts(cs []domain.Contract, now time.Time, loc *time.Location) []renewalsdk.Contract {
	out := make([]renewalsdk.Contract, 0, len(cs))
	for _, c := range cs {
		out = append(out, toContract(c, now, loc))
	}
	return out
}

func toRate(r domain.ExchangeRate) renewalsdk.ExchangeRate {
	return renewalsdk.ExchangeRate{
		Base:      string(r.Base),
		Quote:     string(r.Quote),
		Rate:      r.Rate,
		Source:    string(r.Source),
		FetchedAt: r.FetchedAt,
	}
}

func toAlert(a domain.Alert, now time.Time, loc *time.Location) renewalsdk.Alert {
	return renewalsdk.Alert{
		Contract:  toContract(a.Contract, now, loc),
		DaysUntil: a.DaysUntil,
		Urgency:   string(a.Urgency),
	}
}

func toSummary(s domain.Summary, now time.Time, loc *time.Location) renewalsdk.DashboardSummary {
	out := renewalsdk.DashboardSummary{
		Urgent:          s.Urgent,
		Warning:         s.Warning,
		Normal:          s.Normal,
		TotalMonthlyKRW: s.TotalMonthlyKRW,
		TotalMonthlyUSD: s.TotalMonthlyUSD,
		TotalMonthly:    s.TotalMonthly,
		TotalYearly:     s.TotalYearly,
		Alerts:          make([]renewalsdk.Alert, 0, len(s.Alerts)),
		ExchangeRate:    toRate(s.Rate),
	}
	for _, a := range s.Alerts {
		out.Alerts = append(out.Alerts, toAlert(a, now, loc))
	}
	if s.Featured != nil {
		f := toAlert(*s.Featured, now, loc)
		out.Featured = &f
	}
	return out
}

func toTerminateResponse(res service.TerminateResult, now time.Time, loc *time.Location) renewalsdk.TerminateResponse {
	out := renewalsdk.TerminateResponse{
		Contract:           toContract(res.Contract, now, loc),
		SavedKRW:           res.SavedKRW,
		AccumulatorUpdated: res.AccumulatorUpdated,
	}
	if res.Rate != nil {
		r := toRate(*res.Rate)
		out.ExchangeRate = &r
	}
	return out
}

func toOrganization(m domain.Membership) renewalsdk.Organization {
	return renewalsdk.Organization{
		ID:        m.Organization.ID,
		Name:      m.Organization.Name,
		Role:      string(m.Role),
		CreatedAt: m.Organization.CreatedAt,
	}
}

func toOrganizations(ms []domain.Membership) []renewalsdk.Organization {
	out := make([]renewalsdk.Organization, 0, len(ms))
	for _, m := range ms {
		out = append(out, toOrganization(m))
	}
	return out
}

func toInvitation(inv domain.Invitation) renewalsdk.Invitation {
	return renewalsdk.Invitation{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		Role:           string(inv.Role),
		InvitedBy:      inv.InvitedBy,
		ExpiresAt:      inv.ExpiresAt,
		CreatedAt:      inv.CreatedAt,
	}
}

func toPlan(p domain.Plan) renewalsdk.Plan {
	out := renewalsdk.Plan{
		Name:         p.Name,
		MaxContracts: p.MaxContracts,
		AlertWindows: p.AlertWindows,
		Features:     p.Features,
	}
	if out.AlertWindows == nil {
		out.AlertWindows = []int{}
	}
	if out.Features == nil {
		out.Features = []string{}
	}
	if p.Unlimited() {
		out.MaxContracts = 0
	}
	return out
}

func toGuide(g domain.CancellationGuide) renewalsdk.Guide {
	steps := g.Steps
	if steps == nil {
		steps = []string{}
	}
	return renewalsdk.Guide{
		Slug:        g.Slug,
		ServiceName: g.ServiceName,
		URL:         g.URL,
		Steps:       steps,
		Notes:       g.Notes,
		UpdatedAt:   g.UpdatedAt,
	}
}
