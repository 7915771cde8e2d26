package http

import (
	"net/http"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Current User
//	@Description	The caller's plan, savings total and organization memberships.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	renewalsdk.Profile
//	@Failure		401	{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := h.UserService.Profile(r.Context(), tenantFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "load profile")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, renewalsdk.Profile{
		ID:            p.User.ID,
		Email:         p.User.Email,
		Plan:          toPlan(p.Plan),
		TotalSavedKRW: p.User.TotalSavedKRW,
		Organizations: toOrganizations(p.Organizations),
		SuperAdmin:    p.SuperAdmin,
	})
}

// PlansHandler godoc
//
//	@Summary	List Plans
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	renewalsdk.PlanList
//	@Failure	401	{object}	renewalsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/plans [get].
func PlansHandler(plans domain.Plans) http.HandlerFunc {
	if plans == nil {
		plans = domain.DefaultPlans()
	}
	list := renewalsdk.PlanList{Plans: []renewalsdk.Plan{}}
	for _, p := range plans.List() {
		list.Plans = append(list.Plans, toPlan(p))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}
