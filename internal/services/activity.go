package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/pkg/errors"
	"github.com/Prabesh355/neptube/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	ActivityDefaultLimit = 50
	ActivityMaxLimit     = 100
	ActivityDefaultDays  = 7
	ActivityMaxDays      = 90

	descriptionMaxRunes = 120
	unknownActor        = "Unknown"
)

// Row shapes for the six source queries. Joined actor names come from
// LEFT JOINs and may be NULL.

type bannedUserRow struct {
	ID        string
	Name      string
	BanReason *string
	UpdatedAt time.Time
}

type reportRow struct {
	ID           string
	TargetType   string
	Reason       string
	Status       string
	CreatedAt    time.Time
	ReporterName *string
}

type toxicCommentRow struct {
	ID        string
	Content   string
	CreatedAt time.Time
	UserName  *string
}

type videoRow struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	UserName  *string
}

type newUserRow struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// GetRecentActivity merges six independent moderation event sources
// into one timeline, newest first, capped at limit items.
//
// Each source query is pre-limited to limit rows inside its own window,
// so the merge never scans unbounded data. That also means a source
// flooded with more than limit in-window events can crowd out an older
// event from a sparser source; the merge is not an exact top-K.
//
// The six queries run concurrently. If any of them fails the whole
// aggregation fails; there is no partial result.
//
// Raw Table() queries bypass the gorm soft-delete scope, so each source
// filters deleted_at itself; staff-deleted rows never resurface here.
func GetRecentActivity(ctx context.Context, limit, days int) ([]models.ActivityItem, error) {
	if limit < 1 || limit > ActivityMaxLimit {
		return nil, errors.Validation(fmt.Sprintf("limit must be between 1 and %d", ActivityMaxLimit))
	}
	if days < 1 || days > ActivityMaxDays {
		return nil, errors.Validation(fmt.Sprintf("days must be between 1 and %d", ActivityMaxDays))
	}

	since := time.Now().AddDate(0, 0, -days)

	var (
		bans          []bannedUserRow
		reports       []reportRow
		toxicComments []toxicCommentRow
		pendingVideos []videoRow
		nsfwVideos    []videoRow
		newUsers      []newUserRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return database.DB.WithContext(gctx).
			Table("users").
			Select("id, name, ban_reason, updated_at").
			Where("is_banned = ? AND updated_at >= ? AND deleted_at IS NULL", true, since).
			Order("updated_at desc").
			Limit(limit).
			Scan(&bans).Error
	})

	g.Go(func() error {
		return database.DB.WithContext(gctx).
			Table("reports").
			Select("reports.id, reports.target_type, reports.reason, reports.status, reports.created_at, users.name AS reporter_name").
			Joins("LEFT JOIN users ON users.id = reports.reporter_id").
			Where("reports.created_at >= ?", since).
			Order("reports.created_at desc").
			Limit(limit).
			Scan(&reports).Error
	})

	g.Go(func() error {
		return database.DB.WithContext(gctx).
			Table("comments").
			Select("comments.id, comments.content, comments.created_at, users.name AS user_name").
			Joins("LEFT JOIN users ON users.id = comments.user_id").
			Where("comments.is_toxic = ? AND comments.created_at >= ? AND comments.deleted_at IS NULL", true, since).
			Order("comments.created_at desc").
			Limit(limit).
			Scan(&toxicComments).Error
	})

	g.Go(func() error {
		return database.DB.WithContext(gctx).
			Table("videos").
			Select("videos.id, videos.title, videos.created_at, videos.updated_at, users.name AS user_name").
			Joins("LEFT JOIN users ON users.id = videos.user_id").
			Where("videos.status = ? AND videos.created_at >= ? AND videos.deleted_at IS NULL", models.VideoStatusPending, since).
			Order("videos.created_at desc").
			Limit(limit).
			Scan(&pendingVideos).Error
	})

	g.Go(func() error {
		return database.DB.WithContext(gctx).
			Table("videos").
			Select("videos.id, videos.title, videos.created_at, videos.updated_at, users.name AS user_name").
			Joins("LEFT JOIN users ON users.id = videos.user_id").
			Where("videos.is_nsfw = ? AND videos.updated_at >= ? AND videos.deleted_at IS NULL", true, since).
			Order("videos.updated_at desc").
			Limit(limit).
			Scan(&nsfwVideos).Error
	})

	g.Go(func() error {
		return database.DB.WithContext(gctx).
			Table("users").
			Select("id, name, created_at").
			Where("created_at >= ? AND deleted_at IS NULL", since).
			Order("created_at desc").
			Limit(limit).
			Scan(&newUsers).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	activities := make([]models.ActivityItem, 0, len(bans)+len(reports)+len(toxicComments)+len(pendingVideos)+len(nsfwVideos)+len(newUsers))

	for _, ban := range bans {
		reason := "No reason provided"
		if ban.BanReason != nil && *ban.BanReason != "" {
			reason = *ban.BanReason
		}
		activities = append(activities, models.ActivityItem{
			ID:          "ban-" + ban.ID,
			Type:        models.ActivityBan,
			Title:       "User banned: " + ban.Name,
			Description: reason,
			Timestamp:   ban.UpdatedAt,
			Severity:    models.SeverityDanger,
		})
	}

	for _, report := range reports {
		severity := models.SeverityInfo
		if report.Status == string(models.ReportStatusPending) {
			severity = models.SeverityWarning
		}
		activities = append(activities, models.ActivityItem{
			ID:          "report-" + report.ID,
			Type:        models.ActivityReport,
			Title:       report.TargetType + " reported",
			Description: fmt.Sprintf("%s — by %s", report.Reason, actorName(report.ReporterName)),
			Timestamp:   report.CreatedAt,
			Severity:    severity,
		})
	}

	for _, tc := range toxicComments {
		activities = append(activities, models.ActivityItem{
			ID:          "toxic-" + tc.ID,
			Type:        models.ActivityToxicComment,
			Title:       "Toxic comment by " + actorName(tc.UserName),
			Description: utils.TruncateRunes(tc.Content, descriptionMaxRunes),
			Timestamp:   tc.CreatedAt,
			Severity:    models.SeverityDanger,
		})
	}

	for _, pv := range pendingVideos {
		activities = append(activities, models.ActivityItem{
			ID:          "pending-" + pv.ID,
			Type:        models.ActivityPendingVideo,
			Title:       "Video pending review",
			Description: fmt.Sprintf("%q by %s", pv.Title, actorName(pv.UserName)),
			Timestamp:   pv.CreatedAt,
			Severity:    models.SeverityWarning,
		})
	}

	for _, nv := range nsfwVideos {
		activities = append(activities, models.ActivityItem{
			ID:          "nsfw-" + nv.ID,
			Type:        models.ActivityNsfwVideo,
			Title:       "NSFW flagged video",
			Description: fmt.Sprintf("%q by %s", nv.Title, actorName(nv.UserName)),
			Timestamp:   nv.UpdatedAt,
			Severity:    models.SeverityDanger,
		})
	}

	for _, nu := range newUsers {
		activities = append(activities, models.ActivityItem{
			ID:          "user-" + nu.ID,
			Type:        models.ActivityNewUser,
			Title:       "New user joined",
			Description: nu.Name,
			Timestamp:   nu.CreatedAt,
			Severity:    models.SeverityInfo,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})

	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func actorName(name *string) string {
	if name == nil || *name == "" {
		return unknownActor
	}
	return *name
}
