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

// 2026-09-01 is a Tuesday, 2026-09-06 a Sunday.
const (
	tuesdayNine     = "2026-09-01T09:00:00Z"
	tuesdayEarly    = "2026-09-01T08:59:00Z"
	tuesdayFive     = "2026-09-01T17:00:00Z"
	sundayMidMorn   = "2026-09-06T10:00:00Z"
)

func TestCreateBooking_AtWindowStart(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")
	addSlot(t, profile.ID, "Tuesday", 9, 17)

	resp, body := doJSON(t, app, "POST", "/bookings", map[string]interface{}{
		"student_id":   student.ID,
		"tutor_id":     profile.ID,
		"session_date": tuesdayNine,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	booking := body["booking"].(map[string]interface{})
	assert.Equal(t, string(models.StatusPending), booking["status"])
	assert.Equal(t, float64(profile.ID), booking["tutor_id"])
	assert.Equal(t, "", booking["session_link"])
}

func TestCreateBooking_AtWindowEnd(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")
	addSlot(t, profile.ID, "Tuesday", 9, 17)

	resp, _ := doJSON(t, app, "POST", "/bookings", map[string]interface{}{
		"student_id":   student.ID,
		"tutor_id":     profile.ID,
		"session_date": tuesdayFive,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateBooking_BeforeWindow(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")
	addSlot(t, profile.ID, "Tuesday", 9, 17)

	resp, body := doJSON(t, app, "POST", "/bookings", map[string]interface{}{
		"student_id":   student.ID,
		"tutor_id":     profile.ID,
		"session_date": tuesdayEarly,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "between 9:00 AM and 5:00 PM")
}

func TestCreateBooking_NoSlotOnDay(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")
	addSlot(t, profile.ID, "Tuesday", 9, 17)

	resp, body := doJSON(t, app, "POST", "/bookings", map[string]interface{}{
		"student_id":   student.ID,
		"tutor_id":     profile.ID,
		"session_date": sundayMidMorn,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "not available on Sunday")
}

func TestCreateBooking_AcceptsTutorUserID(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	tutorUser, profile := createTutor(t, "John Smith", "john@example.com")
	addSlot(t, profile.ID, "Tuesday", 9, 17)

	// Caller passes the tutor's user ID; the booking stores the profile ID.
	resp, body := doJSON(t, app, "POST", "/bookings", map[string]interface{}{
		"student_id":   student.ID,
		"tutor_id":     tutorUser.ID,
		"session_date": tuesdayNine,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	booking := body["booking"].(map[string]interface{})
	assert.Equal(t, float64(profile.ID), booking["tutor_id"])
}

func TestCreateBooking_UnknownTutor(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")

	resp, body := doJSON(t, app, "POST", "/bookings", map[string]interface{}{
		"student_id":   student.ID,
		"tutor_id":     999,
		"session_date": tuesdayNine,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "Tutor profile not found")
}

func TestCreateBooking_DuplicateRequestsBothSucceed(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")
	addSlot(t, profile.ID, "Tuesday", 9, 17)

	payload := map[string]interface{}{
		"student_id":   student.ID,
		"tutor_id":     profile.ID,
		"session_date": tuesdayNine,
	}

	resp1, body1 := doJSON(t, app, "POST", "/bookings", payload)
	resp2, body2 := doJSON(t, app, "POST", "/bookings", payload)
	require.Equal(t, http.StatusCreated, resp1.StatusCode)
	require.Equal(t, http.StatusCreated, resp2.StatusCode)

	id1 := body1["booking"].(map[string]interface{})["ID"]
	id2 := body2["booking"].(map[string]interface{})["ID"]
	assert.NotEqual(t, id1, id2)
}

func TestUpdateBookingStatus(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")

	booking := models.Booking{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Now()}
	require.NoError(t, db.DB.Create(&booking).Error)

	resp, body := doJSON(t, app, "PATCH", fmt.Sprintf("/bookings/%d", booking.ID), map[string]interface{}{
		"status": "CANCELLED",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CANCELLED", body["booking"].(map[string]interface{})["status"])
}

func TestUpdateBookingStatus_InvalidStatus(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")

	booking := models.Booking{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Now()}
	require.NoError(t, db.DB.Create(&booking).Error)

	resp, body := doJSON(t, app, "PATCH", fmt.Sprintf("/bookings/%d", booking.ID), map[string]interface{}{
		"status": "CONFIRMED",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "invalid status")
}

func TestUpdateBookingStatus_IllegalTransition(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")

	booking := models.Booking{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Now(), Status: models.StatusCancelled}
	require.NoError(t, db.DB.Create(&booking).Error)

	resp, body := doJSON(t, app, "PATCH", fmt.Sprintf("/bookings/%d", booking.ID), map[string]interface{}{
		"status": "PENDING",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "no transitions allowed")
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	resp, body := doJSON(t, app, "PATCH", "/bookings/42", map[string]interface{}{
		"status": "CANCELLED",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "Booking not found")
}

func TestGetUserBookings_UnionOfRoles(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	tutorUser, profile := createTutor(t, "John Smith", "john@example.com")
	other := createStudent(t, "Bob Wilson", "bob@example.com")

	// John also books a session as a student with another tutor.
	_, otherProfile := createTutor(t, "Sarah Johnson", "sarah@example.com")
	bookings := []models.Booking{
		{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)},
		{StudentID: other.ID, TutorID: profile.ID, SessionDate: time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC)},
		{StudentID: tutorUser.ID, TutorID: otherProfile.ID, SessionDate: time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)},
	}
	for i := range bookings {
		require.NoError(t, db.DB.Create(&bookings[i]).Error)
	}

	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/bookings?userId=%d", tutorUser.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	require.Len(t, data, 3)

	// Newest session first.
	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(bookings[2].ID), first["ID"])
}

func TestGetUserBookings_MissingUserID(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	resp, body := doJSON(t, app, "GET", "/bookings", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "userId is required")
}

func TestGetBooking_EnrichedAndNotFound(t *testing.T) {
	setupTestDB(t)
	app := newTestApp()

	student := createStudent(t, "Alice Brown", "alice@example.com")
	_, profile := createTutor(t, "John Smith", "john@example.com")

	booking := models.Booking{StudentID: student.ID, TutorID: profile.ID, SessionDate: time.Now()}
	require.NoError(t, db.DB.Create(&booking).Error)

	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/bookings/%d", booking.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Alice Brown", data["student"].(map[string]interface{})["name"])
	assert.Equal(t, "John Smith", data["tutor"].(map[string]interface{})["user"].(map[string]interface{})["name"])

	resp, _ = doJSON(t, app, "GET", "/bookings/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
