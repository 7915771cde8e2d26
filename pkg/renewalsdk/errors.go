package renewalsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeUnauthenticated      = "unauthenticated"
	CodeForbidden            = "forbidden"
	CodePlanLimit            = "plan_limit_exceeded"
	CodeFeatureUnavailable   = "feature_unavailable"
	CodeNotFound             = "not_found"
	CodeInvalidRequest       = "invalid_request"
	CodeInvalidTransition    = "invalid_transition"
	CodeConfirmationRequired = "confirmation_required"
	CodeInvitationNotFound   = "invitation_not_found"
	CodeInvitationAccepted   = "invitation_accepted"
	CodeInvitationExpired    = "invitation_expired"
	CodeInvitationPending    = "invitation_pending"
	CodeAlreadyMember        = "already_member"
	CodeRateLimited          = "rate_limited"
	CodeServerError          = "server_error"
)

// APIError is a non-2xx response decoded by the client.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("renewal api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is matches another *APIError by code, so callers can write
// errors.Is(err, renewalsdk.ErrNotFound).
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrUnauthenticated      = &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthenticated}
	ErrForbidden            = &APIError{StatusCode: http.StatusForbidden, Code: CodeForbidden}
	ErrPlanLimit            = &APIError{StatusCode: http.StatusForbidden, Code: CodePlanLimit}
	ErrNotFound             = &APIError{StatusCode: http.StatusNotFound, Code: CodeNotFound}
	ErrInvalidRequest       = &APIError{StatusCode: http.StatusBadRequest, Code: CodeInvalidRequest}
	ErrInvalidTransition    = &APIError{StatusCode: http.StatusBadRequest, Code: CodeInvalidTransition}
	ErrConfirmationRequired = &APIError{StatusCode: http.StatusBadRequest, Code: CodeConfirmationRequired}
	ErrInvitationNotFound   = &APIError{StatusCode: http.StatusNotFound, Code: CodeInvitationNotFound}
	ErrInvitationAccepted   = &APIError{StatusCode: http.StatusBadRequest, Code: CodeInvitationAccepted}
	ErrInvitationExpired    = &APIError{StatusCode: http.StatusBadRequest, Code: CodeInvitationExpired}
)

// parseErrorResponse builds an *APIError from a response body, falling back
// to the status text when the body is not an ErrorResponse.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Code == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       codeForStatus(resp.StatusCode),
			Message:    http.StatusText(resp.StatusCode),
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Code: er.Code, Message: er.Error}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusBadRequest:
		return CodeInvalidRequest
	case http.StatusTooManyRequests:
		return CodeRateLimited
	}
	return CodeServerError
}
