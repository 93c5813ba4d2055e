package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
	"github.com/skillbridge/api/redis"
	"github.com/skillbridge/api/utils"
	"gorm.io/gorm"
)

// TutorResponse is a directory entry: the tutor's user record plus the
// derived rating aggregate.
type TutorResponse struct {
	models.User
	AverageRating float64 `json:"average_rating"`
}

// TutorDetailResponse additionally carries the completed-session count shown
// on a tutor's public page.
type TutorDetailResponse struct {
	TutorResponse
	CompletedSessions int64 `json:"completed_sessions"`
}

const tutorDirectoryCachePrefix = "tutors:"

func tutorDirectoryCacheKey(category, search, minRating string) string {
	return fmt.Sprintf("%s%s:%s:%s", tutorDirectoryCachePrefix, category, search, minRating)
}

// GetAllTutors lists tutors filtered by category, search and minimum rating.
// Search matches name or email case-insensitively at the query level; the
// category and rating filters are applied after the base query, on the
// computed result.
func GetAllTutors(c *fiber.Ctx) error {
	category := c.Query("category")
	search := c.Query("search")
	minRatingStr := c.Query("minRating")

	cacheKey := tutorDirectoryCacheKey(category, search, minRatingStr)
	var cached []TutorResponse
	if redis.GetJSON(cacheKey, &cached) {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Tutors retrieved successfully",
			"data":    cached,
		})
	}

	query := db.DB.
		Preload("TutorProfile.Categories").
		Preload("TutorProfile.Reviews").
		Where("role = ?", models.RoleTutor)

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var tutors []models.User
	if err := query.Find(&tutors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch tutors",
			Error:   err.Error(),
		})
	}

	minRating := 0.0
	if minRatingStr != "" {
		parsed, err := strconv.ParseFloat(minRatingStr, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "minRating must be a number",
			})
		}
		minRating = parsed
	}

	result := make([]TutorResponse, 0, len(tutors))
	for _, tutor := range tutors {
		if category != "" && !hasCategory(tutor.TutorProfile, category) {
			continue
		}

		avg := 0.0
		if tutor.TutorProfile != nil {
			avg = utils.AverageRating(tutor.TutorProfile.Reviews)
		}
		if minRating > 0 && avg < minRating {
			continue
		}

		result = append(result, TutorResponse{User: tutor, AverageRating: avg})
	}

	redis.SetJSON(cacheKey, result, time.Minute)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tutors retrieved successfully",
		"data":    result,
	})
}

func hasCategory(profile *models.TutorProfile, name string) bool {
	if profile == nil {
		return false
	}
	for _, category := range profile.Categories {
		if strings.EqualFold(category.Name, name) {
			return true
		}
	}
	return false
}

// GetTutor returns a single tutor by user ID with rating aggregate and
// completed-session count.
func GetTutor(c *fiber.Ctx) error {
	id := c.Params("id")

	var tutor models.User
	if err := db.DB.
		Preload("TutorProfile.Categories").
		Preload("TutorProfile.Availability").
		Preload("TutorProfile.Reviews.Student").
		Where("role = ?", models.RoleTutor).
		First(&tutor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Tutor not found",
		})
	}

	detail := TutorDetailResponse{
		TutorResponse: TutorResponse{User: tutor},
	}
	if tutor.TutorProfile != nil {
		detail.AverageRating = utils.AverageRating(tutor.TutorProfile.Reviews)
		db.DB.Model(&models.Booking{}).
			Where("tutor_id = ? AND status = ?", tutor.TutorProfile.ID, models.StatusCompleted).
			Count(&detail.CompletedSessions)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tutor retrieved successfully",
		"data":    detail,
	})
}

type TutorProfileRequest struct {
	Biography      string `json:"biography"`
	Qualifications string `json:"qualifications"`
	ProfileImage   string `json:"profile_image"`
}

// CreateTutorProfile creates the authenticated tutor's profile, or updates it
// if one already exists. There is no delete-profile path.
func CreateTutorProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var req TutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	var profile models.TutorProfile
	err := db.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to load tutor profile",
				Error:   err.Error(),
			})
		}
		profile = models.TutorProfile{
			UserID:         userID,
			Biography:      req.Biography,
			Qualifications: req.Qualifications,
			ProfileImage:   req.ProfileImage,
		}
		if err := db.DB.Create(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to create tutor profile",
				Error:   err.Error(),
			})
		}
	} else {
		profile.Biography = req.Biography
		profile.Qualifications = req.Qualifications
		profile.ProfileImage = req.ProfileImage
		if err := db.DB.Save(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update tutor profile",
				Error:   err.Error(),
			})
		}
	}

	redis.InvalidatePrefix(tutorDirectoryCachePrefix)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tutor profile saved",
		"data":    profile,
	})
}

// UpdateTutorProfile patches individual fields of an existing profile.
func UpdateTutorProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var profile models.TutorProfile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Tutor profile not found",
		})
	}

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	allowed := map[string]bool{"biography": true, "qualifications": true, "profile_image": true}
	filtered := make(map[string]interface{})
	for key, value := range updates {
		if allowed[key] {
			filtered[key] = value
		}
	}

	if len(filtered) > 0 {
		if err := db.DB.Model(&profile).Updates(filtered).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update tutor profile",
				Error:   err.Error(),
			})
		}
	}

	redis.InvalidatePrefix(tutorDirectoryCachePrefix)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tutor profile updated",
		"data":    profile,
	})
}

type AvailabilityRequest struct {
	DayOfWeek string    `json:"day_of_week"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

var weekdayNames = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

// SetAvailability upserts the authenticated tutor's weekly slot for one
// weekday. One slot per (tutor, weekday); posting again replaces the window.
func SetAvailability(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if !weekdayNames[req.DayOfWeek] {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "day_of_week must be a weekday name, e.g. \"Tuesday\"",
		})
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "start_time and end_time are required",
		})
	}

	var profile models.TutorProfile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Tutor profile not found",
		})
	}

	var slot models.Availability
	err := db.DB.Where("tutor_id = ? AND day_of_week = ?", profile.ID, req.DayOfWeek).First(&slot).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to load availability",
				Error:   err.Error(),
			})
		}
		slot = models.Availability{
			TutorID:   profile.ID,
			DayOfWeek: req.DayOfWeek,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}
		if err := db.DB.Create(&slot).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to create availability",
				Error:   err.Error(),
			})
		}
	} else {
		slot.StartTime = req.StartTime
		slot.EndTime = req.EndTime
		if err := db.DB.Save(&slot).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update availability",
				Error:   err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Availability saved successfully",
		"data":    slot,
	})
}

// GetTutorAvailability returns a tutor's weekly slots. Accepts a user ID or
// a tutor profile ID, same as booking creation.
func GetTutorAvailability(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid tutor ID",
		})
	}

	profile, err := resolveTutorProfile(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Tutor profile not found",
		})
	}

	var slots []models.Availability
	if err := db.DB.Where("tutor_id = ?", profile.ID).Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    slots,
	})
}
