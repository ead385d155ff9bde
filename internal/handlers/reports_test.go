package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
)

func TestCreateReport_NotifiesHighPriority(t *testing.T) {
	SetupTestDB()

	database.DB.Create(&models.User{ID: "u1", Name: "Reporter", Email: "r@example.com"})

	c, w := newTestContext("POST", "/api/reports", []byte(`{"targetType":"video","targetId":"v1","reason":"stolen content"}`))
	c.Set("userId", "u1")
	CreateReport(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Report models.Report `json:"report"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, models.ReportStatusPending, resp.Report.Status)
	assert.Equal(t, "u1", *resp.Report.ReporterID)

	var notif models.AdminNotification
	assert.NoError(t, database.DB.Where("type = ?", models.NotifNewReport).First(&notif).Error)
	assert.Equal(t, models.PriorityHigh, notif.Priority)
	assert.Equal(t, "/admin/reports", notif.Link)
}

func TestCreateReport_AnonymousAllowed(t *testing.T) {
	SetupTestDB()

	c, w := newTestContext("POST", "/api/reports", []byte(`{"targetType":"comment","targetId":"c1","reason":"harassment"}`))
	CreateReport(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Report models.Report `json:"report"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, resp.Report.ReporterID)
}

func TestCreateReport_RejectsUnknownTargetType(t *testing.T) {
	SetupTestDB()

	c, w := newTestContext("POST", "/api/reports", []byte(`{"targetType":"channel","targetId":"x","reason":"nope"}`))
	CreateReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
