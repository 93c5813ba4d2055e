package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
	"github.com/skillbridge/api/redis"
	"github.com/skillbridge/api/utils"
	"gorm.io/gorm"
)

const adminStatsCacheKey = "admin:stats"

// AdminUserResponse is a managed-user row with activity counts.
type AdminUserResponse struct {
	models.User
	BookingCount int64 `json:"booking_count"`
	ReviewCount  int64 `json:"review_count"`
}

// GetAllUsers lists users for the admin panel, filtered by role and search.
func GetAllUsers(c *fiber.Ctx) error {
	role := c.Query("role")
	search := c.Query("search")

	query := db.DB.
		Preload("TutorProfile.Categories").
		Order("created_at DESC")

	if role != "" {
		query = query.Where("role = ?", role)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}

	result := make([]AdminUserResponse, 0, len(users))
	for _, user := range users {
		row := AdminUserResponse{User: user}
		db.DB.Model(&models.Booking{}).Where("student_id = ?", user.ID).Count(&row.BookingCount)
		db.DB.Model(&models.Review{}).Where("student_id = ?", user.ID).Count(&row.ReviewCount)
		result = append(result, row)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

type AdminUpdateUserRequest struct {
	Role          *models.Role `json:"role"`
	EmailVerified *bool        `json:"email_verified"`
	Name          *string      `json:"name"`
	Email         *string      `json:"email"`
}

// UpdateUserStatus is the admin edit of a user: role, email verification,
// name and email. Granting TUTOR promotes through the same path as the
// self-service role selection.
func UpdateUserStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	var req AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if req.Role != nil && !models.ValidRole(*req.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Invalid role. Must be one of: %s, %s, %s, %s",
				models.RoleUser, models.RoleStudent, models.RoleTutor, models.RoleAdmin),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if req.Role != nil {
			if *req.Role == models.RoleTutor {
				if err := user.PromoteToTutor(tx); err != nil {
					return err
				}
			} else {
				user.Role = *req.Role
				if err := tx.Model(&user).Update("role", *req.Role).Error; err != nil {
					return err
				}
			}
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Email != nil {
			updates["email"] = *req.Email
		}
		if req.EmailVerified != nil {
			updates["email_verified"] = *req.EmailVerified
		}
		if len(updates) > 0 {
			return tx.Model(&user).Updates(updates).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update user",
			Error:   err.Error(),
		})
	}

	redis.InvalidatePrefix(tutorDirectoryCachePrefix)
	redis.Invalidate(adminStatsCacheKey)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// DeleteUser removes a user account.
func DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete user",
			Error:   err.Error(),
		})
	}

	redis.InvalidatePrefix(tutorDirectoryCachePrefix)
	redis.Invalidate(adminStatsCacheKey)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}

// GetAdminBookings lists bookings for the admin panel with optional status,
// tutor and student filters.
func GetAdminBookings(c *fiber.Ctx) error {
	query := db.DB.
		Preload("Student").
		Preload("Tutor.User").
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if tutorID := c.Query("tutorId"); tutorID != "" {
		query = query.Where("tutor_id = ?", tutorID)
	}
	if studentID := c.Query("studentId"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bookings,
	})
}

// AdminStats is the aggregate snapshot shown on the admin dashboard.
type AdminStats struct {
	Users struct {
		Total    int64 `json:"total"`
		Tutors   int64 `json:"tutors"`
		Students int64 `json:"students"`
	} `json:"users"`
	Bookings struct {
		Total     int64 `json:"total"`
		Completed int64 `json:"completed"`
		Pending   int64 `json:"pending"`
		Cancelled int64 `json:"cancelled"`
	} `json:"bookings"`
	TotalReviews    int64            `json:"total_reviews"`
	TotalCategories int64            `json:"total_categories"`
	RecentBookings  []models.Booking `json:"recent_bookings"`
	RecentUsers     []models.User    `json:"recent_users"`
}

// GetAdminStats aggregates platform-wide counts plus the five most recent
// bookings and users. Cached briefly; the dashboard polls.
func GetAdminStats(c *fiber.Ctx) error {
	var stats AdminStats
	if redis.GetJSON(adminStatsCacheKey, &stats) {
		return c.JSON(fiber.Map{"success": true, "data": stats})
	}

	db.DB.Model(&models.User{}).Count(&stats.Users.Total)
	db.DB.Model(&models.User{}).Where("role = ?", models.RoleTutor).Count(&stats.Users.Tutors)
	db.DB.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&stats.Users.Students)
	db.DB.Model(&models.Booking{}).Count(&stats.Bookings.Total)
	db.DB.Model(&models.Booking{}).Where("status = ?", models.StatusCompleted).Count(&stats.Bookings.Completed)
	db.DB.Model(&models.Booking{}).Where("status = ?", models.StatusPending).Count(&stats.Bookings.Pending)
	db.DB.Model(&models.Booking{}).Where("status = ?", models.StatusCancelled).Count(&stats.Bookings.Cancelled)
	db.DB.Model(&models.Review{}).Count(&stats.TotalReviews)
	db.DB.Model(&models.Category{}).Count(&stats.TotalCategories)

	if err := db.DB.
		Preload("Student").
		Preload("Tutor.User").
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentBookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch stats",
			Error:   err.Error(),
		})
	}
	if err := db.DB.
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentUsers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch stats",
			Error:   err.Error(),
		})
	}

	redis.SetJSON(adminStatsCacheKey, stats, 2*time.Minute)

	return c.JSON(fiber.Map{"success": true, "data": stats})
}
