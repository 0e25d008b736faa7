package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeCheckedIn            = "attendance.checked_in"
	EventTypeCheckedOut           = "attendance.checked_out"
	EventTypeMarkedAbsent         = "attendance.marked_absent"
	EventTypeApplicationSubmitted = "job_application.submitted"
	EventTypeApplicationStatus    = "job_application.status_changed"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type AttendanceEvent struct {
	BaseEvent
	UserEmail string `json:"user_email"`
	Date      string `json:"date"`
	Automatic bool   `json:"automatic"`
}

func NewAttendanceEvent(eventType, userEmail, date string, automatic bool) *AttendanceEvent {
	return &AttendanceEvent{
		BaseEvent: newBase(eventType, map[string]interface{}{
			"user_email": userEmail,
			"date":       date,
			"automatic":  automatic,
		}),
		UserEmail: userEmail,
		Date:      date,
		Automatic: automatic,
	}
}

type ApplicationSubmittedEvent struct {
	BaseEvent
	ApplicationID string `json:"application_id"`
	JobPostID     string `json:"job_post_id"`
}

func NewApplicationSubmittedEvent(applicationID, jobPostID string) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseEvent: newBase(EventTypeApplicationSubmitted, map[string]interface{}{
			"application_id": applicationID,
			"job_post_id":    jobPostID,
		}),
		ApplicationID: applicationID,
		JobPostID:     jobPostID,
	}
}

type ApplicationStatusEvent struct {
	BaseEvent
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}

func NewApplicationStatusEvent(applicationID, status string) *ApplicationStatusEvent {
	return &ApplicationStatusEvent{
		BaseEvent: newBase(EventTypeApplicationStatus, map[string]interface{}{
			"application_id": applicationID,
			"status":         status,
		}),
		ApplicationID: applicationID,
		Status:        status,
	}
}

// AuditLogger returns a handler that records every event it receives.
func AuditLogger(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"data", event.Payload())
		return nil
	}
}
