package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
)

// SetupTestDB initializes an in-memory SQLite DB for testing
func SetupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.Migrator().DropTable(
		&models.User{},
		&models.Video{},
		&models.Comment{},
		&models.CommunityPost{},
		&models.PostLike{},
		&models.PollVote{},
		&models.PostComment{},
		&models.Subscription{},
		&models.Report{},
		&models.AdminNotification{},
		&models.ModerationAction{},
	)
	database.DB.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.Comment{},
		&models.CommunityPost{},
		&models.PostLike{},
		&models.PollVote{},
		&models.PostComment{},
		&models.Subscription{},
		&models.Report{},
		&models.AdminNotification{},
		&models.ModerationAction{},
	)
}

func newTestContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
		c.Request, _ = http.NewRequest(method, target, reader)
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request, _ = http.NewRequest(method, target, nil)
	}
	return c, w
}

func TestAdminBanUnbanUser_RoundTrip(t *testing.T) {
	SetupTestDB()

	user := models.User{ID: "u1", Name: "Target", Email: "target@example.com"}
	database.DB.Create(&user)

	c, w := newTestContext("PUT", "/api/admin/users/u1/ban", []byte(`{"reason":"spamming links"}`))
	c.Params = gin.Params{{Key: "id", Value: "u1"}}
	c.Set("userId", "admin1")
	AdminBanUser(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var banned models.User
	database.DB.First(&banned, "id = ?", "u1")
	assert.True(t, banned.IsBanned)
	if assert.NotNil(t, banned.BanReason) {
		assert.Equal(t, "spamming links", *banned.BanReason)
	}

	var audit models.ModerationAction
	assert.NoError(t, database.DB.Where("action = ?", models.ActionBanUser).First(&audit).Error)
	assert.Equal(t, "admin1", audit.AdminID)
	assert.Equal(t, "u1", audit.TargetID)

	c, w = newTestContext("PUT", "/api/admin/users/u1/unban", nil)
	c.Params = gin.Params{{Key: "id", Value: "u1"}}
	c.Set("userId", "admin1")
	AdminUnbanUser(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var unbanned models.User
	database.DB.First(&unbanned, "id = ?", "u1")
	assert.False(t, unbanned.IsBanned)
	assert.Nil(t, unbanned.BanReason)
}

func TestAdminBanUser_ByClerkID(t *testing.T) {
	SetupTestDB()

	user := models.User{ID: "11111111-2222-3333-4444-555555555555", Name: "Ext", Email: "ext@example.com", ClerkID: "user_2abcDEF"}
	database.DB.Create(&user)

	c, w := newTestContext("PUT", "/api/admin/users/user_2abcDEF/ban", []byte(`{"reason":"abuse"}`))
	c.Params = gin.Params{{Key: "id", Value: "user_2abcDEF"}}
	c.Set("userId", "admin1")
	AdminBanUser(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var banned models.User
	database.DB.First(&banned, "clerk_id = ?", "user_2abcDEF")
	assert.True(t, banned.IsBanned)
}

func TestAdminBanUser_NotFound(t *testing.T) {
	SetupTestDB()

	c, w := newTestContext("PUT", "/api/admin/users/missing/ban", []byte(`{"reason":"abuse"}`))
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Set("userId", "admin1")
	AdminBanUser(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminBanUser_RequiresReason(t *testing.T) {
	SetupTestDB()

	user := models.User{ID: "u1", Name: "Target", Email: "target@example.com"}
	database.DB.Create(&user)

	c, w := newTestContext("PUT", "/api/admin/users/u1/ban", []byte(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "u1"}}
	c.Set("userId", "admin1")
	AdminBanUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminListUsers_Pagination(t *testing.T) {
	SetupTestDB()

	for i := 0; i < 25; i++ {
		database.DB.Create(&models.User{
			ID:    fmt.Sprintf("u%02d", i),
			Name:  fmt.Sprintf("User %02d", i),
			Email: fmt.Sprintf("u%02d@example.com", i),
		})
	}

	fetch := func(limit, offset int) (int64, []models.User) {
		c, w := newTestContext("GET", fmt.Sprintf("/api/admin/users?limit=%d&offset=%d", limit, offset), nil)
		AdminListUsers(c)
		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Users []models.User `json:"users"`
			Total int64         `json:"total"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		return resp.Total, resp.Users
	}

	total, page1 := fetch(20, 0)
	assert.Equal(t, int64(25), total)
	assert.Len(t, page1, 20)

	_, page2 := fetch(20, 20)
	assert.Len(t, page2, 5)

	seen := map[string]bool{}
	for _, u := range page1 {
		seen[u.ID] = true
	}
	for _, u := range page2 {
		assert.False(t, seen[u.ID], "page 2 repeated user %s", u.ID)
	}
}

func TestAdminListUsers_RejectsBadPagination(t *testing.T) {
	SetupTestDB()

	for _, target := range []string{
		"/api/admin/users?limit=0",
		"/api/admin/users?limit=101",
		"/api/admin/users?limit=abc",
		"/api/admin/users?offset=-1",
		"/api/admin/users?role=superuser",
		"/api/admin/users?banned=sometimes",
	} {
		c, w := newTestContext("GET", target, nil)
		AdminListUsers(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestAdminListUsers_SearchMatchesCaseInsensitive(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Alice Wonder", Email: "a@example.com"})
	database.DB.Create(&models.User{ID: "u2", Name: "Bob Builder", Email: "b@example.com", ClerkID: "user_2abcDEF"})
	database.DB.Create(&models.User{ID: "u3", Name: "Carol", Email: "c@example.com"})

	fetch := func(search string) []models.User {
		c, w := newTestContext("GET", "/api/admin/users?search="+url.QueryEscape(search), nil)
		AdminListUsers(c)
		assert.Equal(t, http.StatusOK, w.Code, search)
		var resp struct {
			Users []models.User `json:"users"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		return resp.Users
	}

	// Name match ignores case
	users := fetch("ALICE")
	assert.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)

	// Clerk id matches too
	users = fetch("2abcdef")
	assert.Len(t, users, 1)
	assert.Equal(t, "u2", users[0].ID)

	assert.Empty(t, fetch("nobody"))
}

func TestAdminListUsers_SearchEscapesWildcards(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "100% Legit", Email: "l@example.com"})
	database.DB.Create(&models.User{ID: "u2", Name: "100x Legit", Email: "x@example.com"})

	c, w := newTestContext("GET", "/api/admin/users?search="+url.QueryEscape("100%"), nil)
	AdminListUsers(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []models.User `json:"users"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	// A literal % must not act as a wildcard
	assert.Len(t, resp.Users, 1)
	assert.Equal(t, "u1", resp.Users[0].ID)
}

func TestAdminListVideos_SearchMatchesTitle(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Creator", Email: "c@example.com"})
	database.DB.Create(&models.Video{ID: "v1", UserID: "u1", Title: "Gopher Tutorial", Status: models.VideoStatusPublished})
	database.DB.Create(&models.Video{ID: "v2", UserID: "u1", Title: "Cooking Basics", Status: models.VideoStatusPublished})

	c, w := newTestContext("GET", "/api/admin/videos?search=gopher", nil)
	AdminListVideos(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Videos []models.Video `json:"videos"`
		Total  int64          `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(1), resp.Total)
	assert.Len(t, resp.Videos, 1)
	assert.Equal(t, "v1", resp.Videos[0].ID)
}

func TestAdminListComments_SearchMatchesContent(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Commenter", Email: "c@example.com"})
	database.DB.Create(&models.Comment{ID: "c1", Content: "Loved the GOPHER bit", UserID: "u1", VideoID: "v1"})
	database.DB.Create(&models.Comment{ID: "c2", Content: "meh", UserID: "u1", VideoID: "v1"})

	c, w := newTestContext("GET", "/api/admin/comments?search=gopher", nil)
	AdminListComments(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Comments []models.Comment `json:"comments"`
		Total    int64            `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(1), resp.Total)
	assert.Len(t, resp.Comments, 1)
	assert.Equal(t, "c1", resp.Comments[0].ID)
}

func TestAdminUpdateUserRole(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Target", Email: "t@example.com"})

	c, w := newTestContext("PUT", "/api/admin/users/u1/role", []byte(`{"role":"moderator"}`))
	c.Params = gin.Params{{Key: "id", Value: "u1"}}
	c.Set("userId", "admin1")
	AdminUpdateUserRole(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	database.DB.First(&updated, "id = ?", "u1")
	assert.Equal(t, models.RoleModerator, updated.Role)

	c, w = newTestContext("PUT", "/api/admin/users/u1/role", []byte(`{"role":"overlord"}`))
	c.Params = gin.Params{{Key: "id", Value: "u1"}}
	c.Set("userId", "admin1")
	AdminUpdateUserRole(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUnmarkToxicComment_ClearsFlagAndScore(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Comment{
		ID: "c1", Content: "borderline", UserID: "u1", VideoID: "v1",
		IsToxic: true, ToxicityScore: 0.85,
	})

	c, w := newTestContext("PUT", "/api/admin/comments/c1/unmark-toxic", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	c.Set("userId", "admin1")
	AdminUnmarkToxicComment(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var comment models.Comment
	database.DB.First(&comment, "id = ?", "c1")
	assert.False(t, comment.IsToxic)
	assert.Equal(t, 0.0, comment.ToxicityScore)
}

func TestAdminUpdateVideoStatus(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Video{ID: "v1", UserID: "u1", Title: "Clip", Status: models.VideoStatusPending})

	c, w := newTestContext("PUT", "/api/admin/videos/v1/status", []byte(`{"status":"rejected","rejectionReason":"copyright strike"}`))
	c.Params = gin.Params{{Key: "id", Value: "v1"}}
	c.Set("userId", "admin1")
	AdminUpdateVideoStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var video models.Video
	database.DB.First(&video, "id = ?", "v1")
	assert.Equal(t, models.VideoStatusRejected, video.Status)
	if assert.NotNil(t, video.RejectionReason) {
		assert.Equal(t, "copyright strike", *video.RejectionReason)
	}

	c, w = newTestContext("PUT", "/api/admin/videos/v1/status", []byte(`{"status":"archived"}`))
	c.Params = gin.Params{{Key: "id", Value: "v1"}}
	c.Set("userId", "admin1")
	AdminUpdateVideoStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminGetStats(t *testing.T) {
	SetupTestDB()

	reason := "spam"
	database.DB.Create(&models.User{ID: "u1", Name: "A", Email: "a@example.com"})
	database.DB.Create(&models.User{ID: "u2", Name: "B", Email: "b@example.com", IsBanned: true, BanReason: &reason})
	database.DB.Create(&models.Video{ID: "v1", UserID: "u1", Title: "One", Status: models.VideoStatusPublished, ViewCount: 40})
	database.DB.Create(&models.Video{ID: "v2", UserID: "u1", Title: "Two", Status: models.VideoStatusPending, ViewCount: 2})
	database.DB.Create(&models.Comment{ID: "c1", Content: "hey", UserID: "u1", VideoID: "v1", IsToxic: true})

	c, w := newTestContext("GET", "/api/admin/stats", nil)
	AdminGetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stats struct {
			TotalUsers    int64 `json:"totalUsers"`
			TotalVideos   int64 `json:"totalVideos"`
			TotalViews    int64 `json:"totalViews"`
			BannedUsers   int64 `json:"bannedUsers"`
			PendingVideos int64 `json:"pendingVideos"`
			ToxicComments int64 `json:"toxicComments"`
		} `json:"stats"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	assert.Equal(t, int64(2), resp.Stats.TotalUsers)
	assert.Equal(t, int64(2), resp.Stats.TotalVideos)
	assert.Equal(t, int64(42), resp.Stats.TotalViews)
	assert.Equal(t, int64(1), resp.Stats.BannedUsers)
	assert.Equal(t, int64(1), resp.Stats.PendingVideos)
	assert.Equal(t, int64(1), resp.Stats.ToxicComments)
}
