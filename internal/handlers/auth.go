package handlers

import (
	"net/http"
	"strings"

	"github.com/Prabesh355/neptube/internal/config"
	"github.com/Prabesh355/neptube/internal/database"
	"github.com/Prabesh355/neptube/internal/models"
	"github.com/Prabesh355/neptube/internal/services"
	"github.com/Prabesh355/neptube/pkg/logger"
	"github.com/Prabesh355/neptube/pkg/utils"
	"github.com/clerkinc/clerk-sdk-go/clerk"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var clerkClient clerk.Client

// InitClerk wires the Clerk backend client. Optional: when no secret
// key is configured the /auth/clerk route simply rejects.
func InitClerk() {
	if config.AppConfig.ClerkSecretKey == "" {
		logger.Warn().Msg("CLERK_SECRET_KEY not set, Clerk login disabled")
		return
	}

	client, err := clerk.NewClient(config.AppConfig.ClerkSecretKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Clerk init failed")
	}
	clerkClient = client
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func notifySignup(user *models.User) {
	actorID := user.ID
	targetType := models.TargetUser
	err := services.NotifyAdmins(database.DB, services.AdminNotifyParams{
		Type:       models.NotifNewUserSignup,
		Priority:   models.PriorityLow,
		Title:      "New user signup",
		Message:    user.Name + " joined the platform",
		Link:       "/admin/users",
		ActorID:    &actorID,
		TargetType: &targetType,
		TargetID:   &user.ID,
	})
	if err != nil {
		logger.Error().Err(err).Str("userId", user.ID).Msg("Failed to record signup notification")
	}
}

// Register handles POST /auth/register
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	if result := database.DB.Create(&user); result.Error != nil {
		var existing models.User
		if err := database.DB.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		logger.Error().Err(result.Error).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	notifySignup(&user)

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login handles POST /auth/login
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.IsBanned {
		c.JSON(http.StatusForbidden, gin.H{"error": "This account has been banned"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type ClerkLoginInput struct {
	ClerkToken string `json:"clerkToken" binding:"required"`
}

// ClerkLogin handles POST /auth/clerk. Verifies a Clerk session token,
// upserts the matching local user and issues our own JWT.
func ClerkLogin(c *gin.Context) {
	if clerkClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Clerk login is not configured"})
		return
	}

	var input ClerkLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := clerkClient.Sessions().Verify(input.ClerkToken, "")
	if err != nil || session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Clerk session token"})
		return
	}

	clerkUser, err := clerkClient.Users().Read(session.UserID)
	if err != nil {
		logger.Error().Err(err).Str("clerkId", session.UserID).Msg("Failed to read Clerk user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read Clerk profile"})
		return
	}

	email := ""
	if len(clerkUser.EmailAddresses) > 0 {
		email = strings.ToLower(clerkUser.EmailAddresses[0].EmailAddress)
	}

	name := ""
	if clerkUser.FirstName != nil {
		name = *clerkUser.FirstName
	}
	if clerkUser.LastName != nil {
		name = strings.TrimSpace(name + " " + *clerkUser.LastName)
	}
	if name == "" {
		name = "New user"
	}

	var user models.User
	err = database.DB.Where("clerk_id = ?", clerkUser.ID).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{"name": name, "image_url": clerkUser.ProfileImageURL}
		if email != "" {
			updates["email"] = email
		}
		database.DB.Model(&user).Updates(updates)
	case err == gorm.ErrRecordNotFound:
		user = models.User{
			Name:     name,
			Email:    email,
			ImageURL: clerkUser.ProfileImageURL,
			ClerkID:  clerkUser.ID,
			Role:     models.RoleUser,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			logger.Error().Err(err).Msg("Failed to create Clerk user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}
		notifySignup(&user)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up account"})
		return
	}

	if user.IsBanned {
		c.JSON(http.StatusForbidden, gin.H{"error": "This account has been banned"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GetMe handles GET /users/me
func GetMe(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
	ImageURL *string `json:"imageURL" binding:"omitempty,url"`
}

// UpdateMe handles PUT /users/me
func UpdateMe(c *gin.Context) {
	userID := c.GetString("userId")

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
