package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
	"github.com/skillbridge/api/redis"
	"github.com/skillbridge/api/utils"
	"gorm.io/gorm"
)

func loadUserWithRelations(id uint) (*models.User, error) {
	var user models.User
	err := db.DB.
		Preload("TutorProfile.Categories").
		Preload("TutorProfile.Availability").
		Preload("TutorProfile.Reviews.Student").
		Preload("Bookings", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("session_date DESC").Limit(10)
		}).
		Preload("Bookings.Tutor.User").
		Preload("Reviews", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("review_date DESC").Limit(10)
		}).
		Preload("Reviews.Tutor.User").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetMe returns the authenticated user with profile, recent bookings and
// recent reviews.
func GetMe(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	user, err := loadUserWithRelations(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// GetUserByID returns any user by ID, same enrichment as GetMe.
func GetUserByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid user ID",
		})
	}

	user, err := loadUserWithRelations(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// UpdateMyProfile patches the authenticated user's name and image.
func UpdateMyProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	var body struct {
		Name  *string `json:"name"`
		Image *string `json:"image"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := make(map[string]interface{})
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Image != nil {
		updates["image"] = *body.Image
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update profile",
				Error:   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// UpdateMyRole is the self-service role selection. Choosing TUTOR promotes
// the user, which also guarantees a tutor profile exists.
func UpdateMyRole(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var body struct {
		Role models.Role `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if !models.ValidRole(body.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Invalid role. Must be one of: %s, %s, %s, %s",
				models.RoleUser, models.RoleStudent, models.RoleTutor, models.RoleAdmin),
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if body.Role == models.RoleTutor {
			return user.PromoteToTutor(tx)
		}
		user.Role = body.Role
		return tx.Model(&user).Update("role", body.Role).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update role",
			Error:   err.Error(),
		})
	}

	redis.InvalidatePrefix(tutorDirectoryCachePrefix)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// UploadProfilePicture stores the uploaded picture on Cloudinary and saves
// the resulting URL on the user.
func UploadProfilePicture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "picture file is required",
			Error:   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadProfileImage(file, fmt.Sprintf("user_%d", userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload picture",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).Update("image", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save picture URL",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"image": url},
	})
}

// GetMyDashboard returns role-shaped stats: session and review aggregates
// for tutors, booking and review counts for everyone else.
func GetMyDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	if user.Role == models.RoleTutor {
		var profile models.TutorProfile
		if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Tutor profile not found",
			})
		}

		var totalBookings, completedSessions, pendingSessions int64
		db.DB.Model(&models.Booking{}).Where("tutor_id = ?", profile.ID).Count(&totalBookings)
		db.DB.Model(&models.Booking{}).Where("tutor_id = ? AND status = ?", profile.ID, models.StatusCompleted).Count(&completedSessions)
		db.DB.Model(&models.Booking{}).Where("tutor_id = ? AND status = ?", profile.ID, models.StatusPending).Count(&pendingSessions)

		var reviews []models.Review
		db.DB.Where("tutor_id = ?", profile.ID).Find(&reviews)

		return c.JSON(fiber.Map{
			"role":               models.RoleTutor,
			"total_bookings":     totalBookings,
			"completed_sessions": completedSessions,
			"pending_sessions":   pendingSessions,
			"total_reviews":      len(reviews),
			"average_rating":     utils.AverageRating(reviews),
		})
	}

	var totalBookings, completedSessions, pendingSessions, reviewsGiven int64
	db.DB.Model(&models.Booking{}).Where("student_id = ?", userID).Count(&totalBookings)
	db.DB.Model(&models.Booking{}).Where("student_id = ? AND status = ?", userID, models.StatusCompleted).Count(&completedSessions)
	db.DB.Model(&models.Booking{}).Where("student_id = ? AND status = ?", userID, models.StatusPending).Count(&pendingSessions)
	db.DB.Model(&models.Review{}).Where("student_id = ?", userID).Count(&reviewsGiven)

	return c.JSON(fiber.Map{
		"role":               user.Role,
		"total_bookings":     totalBookings,
		"completed_sessions": completedSessions,
		"pending_sessions":   pendingSessions,
		"reviews_given":      reviewsGiven,
	})
}
