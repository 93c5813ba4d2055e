package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
	"github.com/skillbridge/api/redis"
	"github.com/skillbridge/api/utils"
	"gorm.io/gorm"
)

var errAlreadyReviewed = errors.New("booking already reviewed")

type CreateReviewRequest struct {
	BookingID uint   `json:"booking_id"`
	StudentID uint   `json:"student_id"`
	TutorID   uint   `json:"tutor_id"`
	Rating    string `json:"rating"`
	Comment   string `json:"comment"`
}

// CreateReview validates the review gate and commits the review together
// with the booking's COMPLETED transition in one transaction.
func CreateReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if req.BookingID == 0 || req.StudentID == 0 || req.TutorID == 0 || req.Rating == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "booking_id, student_id, tutor_id and rating are required",
		})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, req.BookingID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	if booking.StudentID != req.StudentID {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Only the student who made the booking can submit a review",
		})
	}

	if booking.TutorID != req.TutorID {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Tutor ID does not match the booking",
		})
	}

	review := models.Review{
		StudentID: req.StudentID,
		TutorID:   req.TutorID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	// The duplicate check, the review row and the booking's COMPLETED flip
	// must all land together; checking outside the transaction would let two
	// concurrent submissions both pass the guard.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		hasExisting, err := review.HasExistingReview(tx)
		if err != nil {
			return err
		}
		if hasExisting {
			return errAlreadyReviewed
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return tx.Model(&booking).Update("status", models.StatusCompleted).Error
	})
	if err == errAlreadyReviewed {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This booking has already been reviewed",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create review",
			Error:   err.Error(),
		})
	}

	redis.InvalidatePrefix(tutorDirectoryCachePrefix)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review created successfully",
		"review":  review,
	})
}

// GetTutorReviews returns all reviews addressed to a tutor profile.
func GetTutorReviews(c *fiber.Ctx) error {
	tutorID := c.Params("id")

	var reviews []models.Review
	if err := db.DB.Preload("Student").
		Where("tutor_id = ?", tutorID).
		Order("review_date DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    reviews,
	})
}

// GetStudentReviews returns all reviews a student has written.
func GetStudentReviews(c *fiber.Ctx) error {
	studentID := c.Params("id")

	var reviews []models.Review
	if err := db.DB.Preload("Tutor.User").
		Where("student_id = ?", studentID).
		Order("review_date DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    reviews,
	})
}

// GetAllReviews returns every review with both parties attached.
func GetAllReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	if err := db.DB.Preload("Student").Preload("Tutor.User").
		Order("review_date DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    reviews,
	})
}

// GetReview returns a single review by ID.
func GetReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var review models.Review
	if err := db.DB.Preload("Student").Preload("Tutor.User").
		First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Review not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    review,
	})
}
