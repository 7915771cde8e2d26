package domain

import (
	"strconv"
	"time"
)

// LeadTimes are the reminder offsets in days, processed in this order.
var LeadTimes = []int{90, 30, 7, 1}

// NotificationType is the ledger key for a lead time, e.g. "d30".
func NotificationType(leadDays int) string {
	return "d" + strconv.Itoa(leadDays)
}

type NotificationLog struct {
	ID         string
	ContractID string
	Type       string
	SentAt     time.Time
}

// Notification is a reminder handed to a dispatcher.
type Notification struct {
	ContractID   string
	UserID       string
	Email        string
	ContractName string
	ExpiresAt    time.Time
	LeadDays     int
	Type         string
	NoticeDays   int
	AutoRenew    bool
}

// LeadResult counts reminders newly sent for one lead time.
type LeadResult struct {
	LeadDays int
	Type     string
	Sent     int
}
