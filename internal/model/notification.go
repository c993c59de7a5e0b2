package model

import "time"

// NotificationRecord is produced for every attendee whose notification was
// delivered to at least one recipient during an ingestion cycle.
type NotificationRecord struct {
	EventID     string    `json:"eventId"`
	InviteeName string    `json:"inviteeName"`
	StartTime   time.Time `json:"startTime"`
	ProcessedAt time.Time `json:"processedAt"`
}
