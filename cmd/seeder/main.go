package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Prabesh355/neptube/internal/config"
	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/internal/services"
)

// Development seeder. Creates an admin account plus a handful of
// users, videos and comments so the moderation dashboard has content.
func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations...")
	if err := database.DB.AutoMigrate(
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
	); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	log.Println("Seeding admin user...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	admin := models.User{
		Name:     "Admin",
		Email:    "admin@neptube.dev",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := database.DB.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	log.Println("Seeding creators and videos...")
	for i := 1; i <= 3; i++ {
		creator := models.User{
			Name:     fmt.Sprintf("Creator %d", i),
			Email:    fmt.Sprintf("creator%d@neptube.dev", i),
			Password: string(hash),
			Role:     models.RoleUser,
		}
		if err := database.DB.Where(models.User{Email: creator.Email}).FirstOrCreate(&creator).Error; err != nil {
			log.Fatalf("failed to seed creator: %v", err)
		}

		for j := 1; j <= 2; j++ {
			video := models.Video{
				UserID:      creator.ID,
				Title:       fmt.Sprintf("Sample video %d-%d", i, j),
				Slug:        fmt.Sprintf("sample-video-%d-%d", i, j),
				Description: "Seeded content for local development",
				VideoURL:    "https://example.com/video.mp4",
				Status:      models.VideoStatusPublished,
			}
			if j == 2 {
				video.Status = models.VideoStatusPending
			}
			if err := database.DB.Where(models.Video{Slug: video.Slug}).FirstOrCreate(&video).Error; err != nil {
				log.Fatalf("failed to seed video: %v", err)
			}

			comment := models.Comment{
				Content: "Nice one!",
				UserID:  admin.ID,
				VideoID: video.ID,
			}
			comment.ToxicityScore = services.ScoreComment(comment.Content)
			database.DB.Create(&comment)
		}
	}

	log.Println("Seeding a pending report and notification...")
	reason := "Seeded report for dashboard testing"
	report := models.Report{
		ReporterID: &admin.ID,
		TargetType: models.ReportTargetVideo,
		TargetID:   "seed",
		Reason:     reason,
		Status:     models.ReportStatusPending,
	}
	database.DB.Create(&report)

	targetType := models.TargetReport
	services.NotifyAdmins(database.DB, services.AdminNotifyParams{
		Type:       models.NotifNewReport,
		Priority:   models.PriorityHigh,
		Title:      "New video report",
		Message:    reason,
		Link:       "/admin/reports",
		TargetType: &targetType,
		TargetID:   &report.ID,
	})

	log.Printf("Done at %s", time.Now().Format(time.RFC3339))
}
