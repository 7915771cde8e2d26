package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
	"github.com/aussiebroadwan/renewal/pkg/renewalsdk"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	httpx.WriteJSON(w, status, renewalsdk.ErrorResponse{Error: message, Code: code})
}

// writeServiceError maps service errors onto status codes. Anything it does
// not recognise is logged and reported as a 500 with a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, service.ErrPlanLimitExceeded):
		writeError(w, http.StatusForbidden, renewalsdk.CodePlanLimit, err.Error())
	case errors.Is(err, service.ErrFeatureUnavailable):
		writeError(w, http.StatusForbidden, renewalsdk.CodeFeatureUnavailable, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, renewalsdk.CodeForbidden, "You do not have permission to perform this action")

	case errors.Is(err, service.ErrContractNotFound),
		errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrGuideNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, renewalsdk.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrInvitationNotFound):
		writeError(w, http.StatusNotFound, renewalsdk.CodeInvitationNotFound, err.Error())

	case errors.Is(err, service.ErrInvitationAccepted):
		writeError(w, http.StatusBadRequest, renewalsdk.CodeInvitationAccepted, err.Error())
	case errors.Is(err, service.ErrInvitationExpired):
		writeError(w, http.StatusBadRequest, renewalsdk.CodeInvitationExpired, err.Error())
	case errors.Is(err, service.ErrInvitationPending):
		writeError(w, http.StatusBadRequest, renewalsdk.CodeInvitationPending, err.Error())
	case errors.Is(err, service.ErrAlreadyMember):
		writeError(w, http.StatusBadRequest, renewalsdk.CodeAlreadyMember, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, renewalsdk.CodeInvalidTransition, err.Error())
	case errors.Is(err, service.ErrConfirmationRequired):
		writeError(w, http.StatusBadRequest, renewalsdk.CodeConfirmationRequired, err.Error())
	case errors.Is(err, service.ErrInvalidContract),
		errors.Is(err, service.ErrInvalidInvitation),
		errors.Is(err, service.ErrInvalidOrganization),
		errors.Is(err, service.ErrOrganizationRequired),
		errors.Is(err, service.ErrInvalidGuide):
		writeError(w, http.StatusBadRequest, renewalsdk.CodeInvalidRequest, err.Error())

	default:
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("action", action),
			slog.Any("error", err),
		)
		writeError(w, http.StatusInternalServerError, renewalsdk.CodeServerError, "Failed to "+action)
	}
}
