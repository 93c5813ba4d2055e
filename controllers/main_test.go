package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.TutorProfile{},
		&models.Category{},
		&models.Availability{},
		&models.Booking{},
		&models.Review{},
	))
	db.DB = gdb
}

// newTestApp registers the handlers without auth middleware; the gate logic
// under test works from request bodies and params, not the session.
func newTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/bookings", CreateBooking)
	app.Get("/bookings", GetUserBookings)
	app.Get("/bookings/:id", GetBooking)
	app.Patch("/bookings/:id", UpdateBookingStatus)
	app.Post("/reviews", CreateReview)
	app.Get("/reviews", GetAllReviews)
	app.Get("/reviews/tutor/:id", GetTutorReviews)
	app.Get("/reviews/:id", GetReview)
	app.Get("/tutors", GetAllTutors)
	app.Get("/tutors/:id<int>", GetTutor)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := make(map[string]interface{})
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp, decoded
}

func createStudent(t *testing.T, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, EmailVerified: true, Role: models.RoleStudent}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func createTutor(t *testing.T, name, email string) (models.User, models.TutorProfile) {
	t.Helper()
	user := models.User{Name: name, Email: email, EmailVerified: true, Role: models.RoleTutor}
	require.NoError(t, db.DB.Create(&user).Error)
	profile := models.TutorProfile{UserID: user.ID}
	require.NoError(t, db.DB.Create(&profile).Error)
	return user, profile
}

func addSlot(t *testing.T, tutorID uint, day string, startHour, endHour int) {
	t.Helper()
	require.NoError(t, db.DB.Create(&models.Availability{
		TutorID:   tutorID,
		DayOfWeek: day,
		StartTime: time.Date(2024, 1, 1, startHour, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 1, endHour, 0, 0, 0, time.UTC),
	}).Error)
}

func addReview(t *testing.T, studentID, tutorID, bookingID uint, rating string) {
	t.Helper()
	require.NoError(t, db.DB.Create(&models.Review{
		StudentID: studentID,
		TutorID:   tutorID,
		BookingID: bookingID,
		Rating:    rating,
	}).Error)
}
