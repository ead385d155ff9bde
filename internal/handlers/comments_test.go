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

func TestCreateComment_ScreensToxicity(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Commenter", Email: "c@example.com"})
	database.DB.Create(&models.Video{ID: "v1", UserID: "u1", Title: "Clip", Status: models.VideoStatusPublished})

	c, w := newTestContext("POST", "/api/videos/v1/comments", []byte(`{"content":"you are trash, go die"}`))
	c.Params = gin.Params{{Key: "id", Value: "v1"}}
	c.Set("userId", "u1")
	CreateComment(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Comment models.Comment `json:"comment"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.True(t, resp.Comment.IsToxic)
	assert.Greater(t, resp.Comment.ToxicityScore, 0.0)

	var notif models.AdminNotification
	assert.NoError(t, database.DB.Where("type = ?", models.NotifToxicComment).First(&notif).Error)
	assert.Equal(t, models.PriorityHigh, notif.Priority)
}

func TestCreateComment_CleanContentGetsLowPriorityNotification(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Commenter", Email: "c@example.com"})
	database.DB.Create(&models.Video{ID: "v1", UserID: "u1", Title: "Clip", Status: models.VideoStatusPublished})

	c, w := newTestContext("POST", "/api/videos/v1/comments", []byte(`{"content":"Great explanation, thanks"}`))
	c.Params = gin.Params{{Key: "id", Value: "v1"}}
	c.Set("userId", "u1")
	CreateComment(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var notif models.AdminNotification
	assert.NoError(t, database.DB.Where("type = ?", models.NotifNewComment).First(&notif).Error)
	assert.Equal(t, models.PriorityLow, notif.Priority)
	// The target id rides in TargetID; the link is the queue itself
	assert.Equal(t, "/admin/comments", notif.Link)
	assert.NotNil(t, notif.TargetID)
}

func TestCreateComment_RejectsUnpublishedVideo(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.Video{ID: "v1", UserID: "u1", Title: "Clip", Status: models.VideoStatusPending})

	c, w := newTestContext("POST", "/api/videos/v1/comments", []byte(`{"content":"first"}`))
	c.Params = gin.Params{{Key: "id", Value: "v1"}}
	c.Set("userId", "u1")
	CreateComment(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListComments_ExcludesHidden(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Commenter", Email: "c@example.com"})
	database.DB.Create(&models.Comment{ID: "c_visible", Content: "fine", UserID: "u1", VideoID: "v1"})
	database.DB.Create(&models.Comment{ID: "c_hidden", Content: "bad", UserID: "u1", VideoID: "v1", IsHidden: true})

	c, w := newTestContext("GET", "/api/videos/v1/comments", nil)
	c.Params = gin.Params{{Key: "id", Value: "v1"}}
	ListComments(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Comments []models.Comment `json:"comments"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Comments, 1)
	assert.Equal(t, "c_visible", resp.Comments[0].ID)
}
