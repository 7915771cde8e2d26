package http

import (
	"net/http"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
)

type GuidesHandler struct {
	GuideService *service.GuideService
}

// HandleList godoc
//
//	@Summary	List Cancellation Guides
//	@Tags		Guides
//	@Produce	json
//	@Success	200	{object}	renewalsdk.GuideList
//	@Failure	401	{object}	renewalsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/cancellation-guides [get].
func (h *GuidesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	guides, err := h.GuideService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "list guides")
		return
	}
	out := renewalsdk.GuideList{Guides: make([]renewalsdk.Guide, 0, len(guides))}
	for _, g := range guides {
		out.Guides = append(out.Guides, toGuide(g))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Get Cancellation Guide
//	@Tags		Guides
//	@Produce	json
//	@Param		slug	path		string	true	"Guide slug"
//	@Success	200		{object}	renewalsdk.Guide
//	@Failure	401		{object}	renewalsdk.ErrorResponse
//	@Failure	404		{object}	renewalsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/cancellation-guides/{slug} [get].
func (h *GuidesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	g, err := h.GuideService.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, r, err, "load guide")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGuide(g))
}

// HandlePut godoc
//
//	@Summary		Create or Replace Cancellation Guide
//	@Description	Super admins only.
//	@Tags			Guides
//	@Accept			json
//	@Produce		json
//	@Param			slug	path		string					true	"Guide slug"
//	@Param			request	body		renewalsdk.GuideRequest	true	"Guide"
//	@Success		200		{object}	renewalsdk.Guide
//	@Failure		400		{object}	renewalsdk.ErrorResponse
//	@Failure		401		{object}	renewalsdk.ErrorResponse
//	@Failure		403		{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/cancellation-guides/{slug} [put].
func (h *GuidesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req renewalsdk.GuideRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	g, err := h.GuideService.Upsert(r.Context(), tenantFrom(r.Context()), domain.CancellationGuide{
		Slug:        r.PathValue("slug"),
		ServiceName: req.ServiceName,
		URL:         req.URL,
		Steps:       req.Steps,
		Notes:       req.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err, "save guide")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGuide(g))
}
