package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
	"github.com/skillbridge/api/utils"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	StudentID   uint      `json:"student_id"`
	TutorID     uint      `json:"tutor_id"`
	SessionDate time.Time `json:"session_date"`
	SessionLink string    `json:"session_link"`
}

// resolveTutorProfile accepts either a TutorProfile ID or the ID of a user
// holding a tutor profile. Callers pass whichever they have; the booking row
// always stores the profile ID.
func resolveTutorProfile(id uint) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	if err := db.DB.Where("user_id = ?", id).First(&profile).Error; err == nil {
		return &profile, nil
	}
	if err := db.DB.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateBooking godoc
// @Summary Book a tutoring session
// @Description Creates a PENDING booking after checking the tutor's weekly availability
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking"
// @Success 201 {object} models.Booking
// @Failure 400 {object} utils.ErrorResponse
// @Router /bookings [post]
func CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if req.StudentID == 0 || req.TutorID == 0 || req.SessionDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "student_id, tutor_id and session_date are required",
		})
	}

	profile, err := resolveTutorProfile(req.TutorID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Tutor profile not found",
		})
	}

	if err := utils.CheckTutorAvailability(profile.ID, req.SessionDate); err != nil {
		switch err.(type) {
		case *utils.NoAvailabilityError, *utils.OutsideWindowError:
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Error checking availability",
				Error:   err.Error(),
			})
		}
	}

	booking := models.Booking{
		StudentID:   req.StudentID,
		TutorID:     profile.ID,
		SessionDate: req.SessionDate,
		SessionLink: req.SessionLink,
		Status:      models.StatusPending,
	}
	if err := db.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	sendBookingConfirmation(&booking)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// sendBookingConfirmation emails the student. Delivery is best effort; a
// booking is never rolled back because SMTP is down.
func sendBookingConfirmation(booking *models.Booking) {
	var student models.User
	if err := db.DB.First(&student, booking.StudentID).Error; err != nil {
		return
	}
	var profile models.TutorProfile
	if err := db.DB.Preload("User").First(&profile, booking.TutorID).Error; err != nil {
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your tutoring session has been requested.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Tutor:</strong> %s</li>
			<li><strong>Session Date:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>You will be able to join via your dashboard once the session starts.</p>
		<p>Best regards,</p>
		<p>The SkillBridge Team</p>
	`, student.Name, profile.User.Name,
		booking.SessionDate.UTC().Format("2006-01-02 15:04"),
		booking.Status)

	if err := utils.SendEmail(student.Email, "Booking Confirmation - SkillBridge", body); err != nil {
		log.Printf("Failed to send booking confirmation for booking %d: %v", booking.ID, err)
	}
}

// UpdateBookingStatus godoc
// @Summary Update a booking's status
// @Description Applies the booking state machine; illegal transitions are rejected
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 400 {object} utils.ErrorResponse
// @Router /bookings/{id} [patch]
func UpdateBookingStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Status is required",
		})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	if err := booking.UpdateStatus(db.DB, body.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Booking status updated successfully",
		"booking": booking,
	})
}

// GetUserBookings returns all bookings where the user is either the student
// or the tutor, newest session first.
func GetUserBookings(c *fiber.Ctx) error {
	userID := c.QueryInt("userId")
	if userID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "userId is required",
		})
	}

	query := db.DB.
		Preload("Student").
		Preload("Tutor.User").
		Order("session_date DESC")

	var profile models.TutorProfile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		query = query.Where("student_id = ? OR tutor_id = ?", userID, profile.ID)
	} else {
		query = query.Where("student_id = ?", userID)
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

// GetBooking returns a single booking enriched with student and tutor
// (including the tutor's categories).
func GetBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	var booking models.Booking
	if err := db.DB.
		Preload("Student").
		Preload("Tutor.User").
		Preload("Tutor.Categories").
		First(&booking, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Booking not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch booking",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    booking,
	})
}
