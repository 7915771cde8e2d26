package service

import (
	"errors"
	"fmt"
)

var (
	ErrContractNotFound     = errors.New("contract not found")
	ErrInvalidContract      = errors.New("invalid contract")
	ErrInvalidTransition    = errors.New("invalid contract transition")
	ErrConfirmationRequired = errors.New("deleting this contract removes its recorded savings from your statistics; confirm to proceed")
	ErrPlanLimitExceeded    = errors.New("plan limit exceeded")
	ErrFeatureUnavailable   = errors.New("feature not available on your plan")

	ErrForbidden            = errors.New("forbidden")
	ErrOrganizationRequired = errors.New("an organization must be selected")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrInvalidOrganization  = errors.New("invalid organization")
	ErrAlreadyMember        = errors.New("already a member of this organization")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationAccepted   = errors.New("invitation has already been accepted")
	ErrInvitationExpired    = errors.New("invitation has expired")
	ErrInvitationPending    = errors.New("a pending invitation already exists for this email")
	ErrInvalidInvitation    = errors.New("invalid invitation")
	ErrGuideNotFound        = errors.New("cancellation guide not found")
	ErrInvalidGuide         = errors.New("invalid cancellation guide")
	ErrUserNotFound         = errors.New("user not found")
	ErrUnknownPlan          = errors.New("unknown plan")
)

// PlanLimitError reports which plan refused a new contract.
type PlanLimitError struct {
	Plan  string
	Limit int
}

func (e *PlanLimitError) Error() string {
	return fmt.Sprintf("the %s plan allows up to %d active contracts", e.Plan, e.Limit)
}

func (e *PlanLimitError) Unwrap() error { return ErrPlanLimitExceeded }

func invalid(kind error, detail any) error {
	return fmt.Errorf("%w: %v", kind, detail)
}
