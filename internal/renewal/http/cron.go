package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
)

type NotificationsHandler struct {
	Scheduler *service.NotificationScheduler
}

// ServeHTTP godoc
//
//	@Summary		Run Renewal Reminders
//	@Description	Batch trigger for the external scheduler. Sends reminders for contracts expiring in 90, 30, 7 and 1 days.
//	@Description	Authenticated with the shared cron secret, not a user token.
//	@Tags			Internal
//	@Produce		json
//	@Success		200	{object}	renewalsdk.NotificationRunResponse
//	@Failure		401	{object}	renewalsdk.ErrorResponse
//	@Failure		500	{object}	renewalsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/internal/cron/notifications [post].
func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	results, err := h.Scheduler.Run(r.Context())
	resp := renewalsdk.NotificationRunResponse{Results: make([]renewalsdk.LeadResult, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, renewalsdk.LeadResult{
			LeadDays: res.LeadDays,
			Type:     res.Type,
			Sent:     res.Sent,
		})
		resp.Total += res.Sent
	}

	if err != nil {
		log.Error("notification run failed",
			slog.Int("sent", resp.Total),
			slog.Any("error", err),
		)
		writeError(w, http.StatusInternalServerError, renewalsdk.CodeServerError, "Notification run failed")
		return
	}

	log.Info("notification run finished", slog.Int("sent", resp.Total))
	httpx.WriteJSON(w, http.StatusOK, resp)
}
