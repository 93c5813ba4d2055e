package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview_CompletesBooking(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")

	booking := models.Booking{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Now()}
	require.NoError(t, db.DB.Create(&booking).Error)
	require.Equal(t, models.StatusPending, booking.Status)

	resp, body := doJSON(t, app, "POST", "/reviews", map[string]interface{}{
		"booking_id": booking.ID,
		"student_id": student.ID,
		"tutor_id":   profile.ID,
		"rating":     "5",
		"comment":    "Great session",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	review := body["review"].(map[string]interface{})
	assert.Equal(t, "5", review["rating"])
	assert.NotEmpty(t, review["review_date"])

	var updated models.Booking
	require.NoError(t, db.DB.First(&updated, booking.ID).Error)
	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestCreateReview_CompletesCancelledBooking(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")

	// Review submission overrides the state machine and marks the booking
	// COMPLETED regardless of what it was before.
	booking := models.Booking{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Now(), Status: models.StatusCancelled}
	require.NoError(t, db.DB.Create(&booking).Error)

	resp, _ := doJSON(t, app, "POST", "/reviews", map[string]interface{}{
		"booking_id": booking.ID,
		"student_id": student.ID,
		"tutor_id":   profile.ID,
		"rating":     "4",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var updated models.Booking
	require.NoError(t, db.DB.First(&updated, booking.ID).Error)
	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestCreateReview_StudentMismatch(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	other := createStudent(t, "Bob Wilson", "bob@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")

	booking := models.Booking{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Now()}
	require.NoError(t, db.DB.Create(&booking).Error)

	resp, body := doJSON(t, app, "POST", "/reviews", map[string]interface{}{
		"booking_id": booking.ID,
		"student_id": other.ID,
		"tutor_id":   profile.ID,
		"rating":     "5",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "Only the student who made the booking")
}

func TestCreateReview_TutorMismatch(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")
	_, otherProfile := createTutor(t, "Sarah Johnson", "sarah@example.com")

	booking := models.Booking{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Now()}
	require.NoError(t, db.DB.Create(&booking).Error)

	resp, body := doJSON(t, app, "POST", "/reviews", map[string]interface{}{
		"booking_id": booking.ID,
		"student_id": student.ID,
		"tutor_id":   otherProfile.ID,
		"rating":     "5",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "Tutor ID does not match")
}

func TestCreateReview_UnknownBooking(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	resp, body := doJSON(t, app, "POST", "/reviews", map[string]interface{}{
		"booking_id": 404,
		"student_id": 1,
		"tutor_id":   1,
		"rating":     "5",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "Booking not found")
}

func TestCreateReview_DuplicateRejected(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")

	booking := models.Booking{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Now()}
	require.NoError(t, db.DB.Create(&booking).Error)

	payload := map[string]interface{}{
		"booking_id": booking.ID,
		"student_id": student.ID,
		"tutor_id":   profile.ID,
		"rating":     "5",
	}

	resp, _ := doJSON(t, app, "POST", "/reviews", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/reviews", payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["message"], "already been reviewed")

	var count int64
	require.NoError(t, db.DB.Model(&models.Review{}).Where("booking_id = ?", booking.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetTutorReviews(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")
	_, otherProfile := createTutor(t, "Sarah Johnson", "sarah@example.com")

	addReview(t, student.ID, profile.ID, 0, "5")
	addReview(t, student.ID, profile.ID, 0, "4")
	addReview(t, student.ID, otherProfile.ID, 0, "3")

	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/reviews/tutor/%d", profile.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Alice Brown", first["student"].(map[string]interface{})["name"])
}

func TestGetReview_NotFound(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	resp, body := doJSON(t, app, "GET", "/reviews/999", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["message"], "Review not found")
}
