package models

import "time"

type ActivityType string

const (
	ActivityBan          ActivityType = "ban"
	ActivityReport       ActivityType = "report"
	ActivityToxicComment ActivityType = "toxic_comment"
	ActivityPendingVideo ActivityType = "pending_video"
	ActivityNsfwVideo    ActivityType = "nsfw_video"
	ActivityNewUser      ActivityType = "new_user"
)

type ActivitySeverity string

const (
	SeverityInfo    ActivitySeverity = "info"
	SeverityWarning ActivitySeverity = "warning"
	SeverityDanger  ActivitySeverity = "danger"
)

// ActivityItem is one entry of the merged moderation timeline. It is
// computed from the live source tables on every request and never
// persisted. ID is "{sourceType}-{sourceId}" so entries stay unique
// across sources.
type ActivityItem struct {
	ID          string           `json:"id"`
	Type        ActivityType     `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Timestamp   time.Time        `json:"timestamp"`
	Severity    ActivitySeverity `json:"severity"`
}
