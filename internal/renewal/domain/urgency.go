package domain

type Urgency string

const (
	UrgencyDanger  Urgency = "danger"
	UrgencyWarning Urgency = "warning"
	UrgencySuccess Urgency = "success"
)

const (
	DangerThresholdDays  = 7
	WarningThresholdDays = 30
)

// UrgencyOf classifies a day count. Both thresholds are inclusive.
func UrgencyOf(days int) Urgency {
	switch {
	case days <= DangerThresholdDays:
		return UrgencyDanger
	case days <= WarningThresholdDays:
		return UrgencyWarning
	default:
		return UrgencySuccess
	}
}
