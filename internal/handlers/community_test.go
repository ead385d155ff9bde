package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
)

func TestCreatePost_PollValidation(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Poster", Email: "p@example.com"})

	// Poll with a single option
	c, w := newTestContext("POST", "/api/community/posts", []byte(`{"type":"poll","content":"Pick one","pollOptions":["only"]}`))
	c.Set("userId", "u1")
	CreatePost(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Text post smuggling poll options
	c, w = newTestContext("POST", "/api/community/posts", []byte(`{"type":"text","content":"hi","pollOptions":["a","b"]}`))
	c.Set("userId", "u1")
	CreatePost(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Valid poll
	c, w = newTestContext("POST", "/api/community/posts", []byte(`{"type":"poll","content":"Pick one","pollOptions":["cats","dogs"]}`))
	c.Set("userId", "u1")
	CreatePost(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Post creation should have left a notification for the admin feed
	var notif models.AdminNotification
	assert.NoError(t, database.DB.Where("type = ?", models.NotifNewCommunityPost).First(&notif).Error)
	assert.Equal(t, "/admin/community", notif.Link)
}

func TestToggleLike_RoundTrip(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Liker", Email: "l@example.com"})
	database.DB.Create(&models.CommunityPost{ID: "p1", UserID: "u1", Type: models.CommunityPostText, Content: "hello"})

	like := func() (int, bool, int64) {
		c, w := newTestContext("POST", "/api/community/posts/p1/like", nil)
		c.Params = gin.Params{{Key: "id", Value: "p1"}}
		c.Set("userId", "u1")
		ToggleLike(c)

		var resp struct {
			HasLiked  bool  `json:"hasLiked"`
			LikeCount int64 `json:"likeCount"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		return w.Code, resp.HasLiked, resp.LikeCount
	}

	code, hasLiked, count := like()
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, hasLiked)
	assert.Equal(t, int64(1), count)

	code, hasLiked, count = like()
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, hasLiked)
	assert.Equal(t, int64(0), count)
}

func TestVotePoll(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Voter", Email: "v@example.com"})
	database.DB.Create(&models.CommunityPost{
		ID: "p1", UserID: "u1", Type: models.CommunityPostPoll,
		Content: "Pick", PollOptions: pq.StringArray{"cats", "dogs"},
	})

	vote := func(body string) int {
		c, w := newTestContext("POST", "/api/community/posts/p1/vote", []byte(body))
		c.Params = gin.Params{{Key: "id", Value: "p1"}}
		c.Set("userId", "u1")
		VotePoll(c)
		return w.Code
	}

	assert.Equal(t, http.StatusBadRequest, vote(`{"optionIndex":5}`))
	assert.Equal(t, http.StatusBadRequest, vote(`{"optionIndex":-1}`))
	assert.Equal(t, http.StatusCreated, vote(`{"optionIndex":1}`))
	// One vote per user per poll
	assert.Equal(t, http.StatusConflict, vote(`{"optionIndex":0}`))

	var saved models.PollVote
	assert.NoError(t, database.DB.Where("user_id = ? AND post_id = ?", "u1", "p1").First(&saved).Error)
	assert.Equal(t, 1, saved.OptionIndex)
}

func TestVotePoll_RejectsTextPost(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.CommunityPost{ID: "p1", UserID: "u1", Type: models.CommunityPostText, Content: "hi"})

	c, w := newTestContext("POST", "/api/community/posts/p1/vote", []byte(`{"optionIndex":0}`))
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	c.Set("userId", "u1")
	VotePoll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
