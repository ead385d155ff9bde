package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
)

func seedNotification(id string, read, dismissed bool, priority models.NotificationPriority) {
	database.DB.Create(&models.AdminNotification{
		ID:          id,
		Type:        models.NotifNewComment,
		Priority:    priority,
		Title:       "n " + id,
		Message:     "m " + id,
		IsRead:      read,
		IsDismissed: dismissed,
	})
}

func fetchNotifications(t *testing.T, target string) []models.AdminNotification {
	t.Helper()
	c, w := newTestContext("GET", target, nil)
	AdminGetNotifications(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Notifications []models.AdminNotification `json:"notifications"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Notifications
}

func fetchCount(t *testing.T) int64 {
	t.Helper()
	c, w := newTestContext("GET", "/api/admin/notifications/count", nil)
	AdminGetNotificationCount(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int64 `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Count
}

func TestAdminGetNotifications_AlwaysExcludesDismissed(t *testing.T) {
	SetupTestDB()

	seedNotification("active_unread", false, false, models.PriorityMedium)
	seedNotification("active_read", true, false, models.PriorityMedium)
	seedNotification("dismissed_unread", false, true, models.PriorityMedium)
	seedNotification("dismissed_read", true, true, models.PriorityMedium)

	got := fetchNotifications(t, "/api/admin/notifications")
	ids := map[string]bool{}
	for _, n := range got {
		ids[n.ID] = true
	}

	assert.True(t, ids["active_unread"])
	assert.True(t, ids["active_read"])
	assert.False(t, ids["dismissed_unread"])
	assert.False(t, ids["dismissed_read"])

	unread := fetchNotifications(t, "/api/admin/notifications?unreadOnly=true")
	assert.Len(t, unread, 1)
	assert.Equal(t, "active_unread", unread[0].ID)
}

func TestAdminGetNotifications_PriorityFilter(t *testing.T) {
	SetupTestDB()

	seedNotification("low", false, false, models.PriorityLow)
	seedNotification("high", false, false, models.PriorityHigh)

	got := fetchNotifications(t, "/api/admin/notifications?priority=high")
	assert.Len(t, got, 1)
	assert.Equal(t, "high", got[0].ID)

	c, w := newTestContext("GET", "/api/admin/notifications?priority=urgent", nil)
	AdminGetNotifications(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminNotificationCount_TracksReadAndDismiss(t *testing.T) {
	SetupTestDB()

	seedNotification("n1", false, false, models.PriorityMedium)
	seedNotification("n2", false, false, models.PriorityMedium)
	seedNotification("n3", true, false, models.PriorityMedium)
	seedNotification("n4", false, true, models.PriorityMedium)

	// Unread and not dismissed: n1, n2
	assert.Equal(t, int64(2), fetchCount(t))

	c, w := newTestContext("PUT", "/api/admin/notifications/n1/read", nil)
	c.Params = gin.Params{{Key: "id", Value: "n1"}}
	AdminMarkNotificationRead(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), fetchCount(t))

	c, w = newTestContext("PUT", "/api/admin/notifications/n2/dismiss", nil)
	c.Params = gin.Params{{Key: "id", Value: "n2"}}
	AdminDismissNotification(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), fetchCount(t))
}

func TestAdminMarkAllNotificationsRead(t *testing.T) {
	SetupTestDB()

	seedNotification("n1", false, false, models.PriorityMedium)
	seedNotification("n2", false, false, models.PriorityHigh)

	c, w := newTestContext("PUT", "/api/admin/notifications/read-all", nil)
	AdminMarkAllNotificationsRead(c)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(0), fetchCount(t))

	// Still listed: read-all does not dismiss
	assert.Len(t, fetchNotifications(t, "/api/admin/notifications"), 2)
}

func TestAdminDismissAllRead_PreservesUnread(t *testing.T) {
	SetupTestDB()

	seedNotification("was_read", true, false, models.PriorityMedium)
	seedNotification("still_unread", false, false, models.PriorityMedium)

	before := fetchCount(t)

	c, w := newTestContext("PUT", "/api/admin/notifications/dismiss-read", nil)
	AdminDismissAllRead(c)
	assert.Equal(t, http.StatusOK, w.Code)

	got := fetchNotifications(t, "/api/admin/notifications")
	assert.Len(t, got, 1)
	assert.Equal(t, "still_unread", got[0].ID)

	// Sweeping read notifications never touches the unread count
	assert.Equal(t, before, fetchCount(t))
}

func TestNotificationLifecycle_DefaultPriorityThenDismiss(t *testing.T) {
	SetupTestDB()

	// Priority omitted on create
	database.DB.Create(&models.AdminNotification{
		ID:      "n1",
		Type:    models.NotifNewReport,
		Title:   "New video report",
		Message: "bad content",
	})

	var stored models.AdminNotification
	database.DB.First(&stored, "id = ?", "n1")
	assert.Equal(t, models.PriorityMedium, stored.Priority)

	c, w := newTestContext("PUT", "/api/admin/notifications/n1/dismiss", nil)
	c.Params = gin.Params{{Key: "id", Value: "n1"}}
	AdminDismissNotification(c)
	assert.Equal(t, http.StatusOK, w.Code)

	// Gone from the default listing, read or not
	assert.Empty(t, fetchNotifications(t, "/api/admin/notifications"))
	assert.Equal(t, int64(0), fetchCount(t))
}

func TestAdminMarkNotificationRead_NotFound(t *testing.T) {
	SetupTestDB()

	c, w := newTestContext("PUT", "/api/admin/notifications/missing/read", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	AdminMarkNotificationRead(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminMarkNotificationRead_Idempotent(t *testing.T) {
	SetupTestDB()

	seedNotification("n1", true, false, models.PriorityMedium)

	c, w := newTestContext("PUT", "/api/admin/notifications/n1/read", nil)
	c.Params = gin.Params{{Key: "id", Value: "n1"}}
	AdminMarkNotificationRead(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
