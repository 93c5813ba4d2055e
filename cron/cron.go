package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/skillbridge/api/db"
	"github.com/skillbridge/api/models"
	"github.com/skillbridge/api/utils"
)

// StartCronJobs initializes and starts the cron scheduler for session reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to catch sessions starting in the next hour
	_, err := c.AddFunc("* * * * *", sendSessionReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for session reminders")
}

// sendSessionReminders emails students whose pending sessions start in about
// an hour.
func sendSessionReminders() {
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var bookings []models.Booking
	err := db.DB.Preload("Student").Preload("Tutor.User").
		Where("status = ? AND session_date BETWEEN ? AND ?", models.StatusPending, startWindow, endWindow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.Student.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: Upcoming Session with %s", booking.Tutor.User.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your tutoring session scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Tutor:</strong> %s</li>
			<li><strong>Session Date:</strong> %s</li>
			<li><strong>Session Link:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so from your dashboard as soon as possible.</p>
		<p>Best regards,</p>
		<p>The SkillBridge Team</p>
	`, booking.Student.Name, booking.Tutor.User.Name,
		booking.SessionDate.UTC().Format("2006-01-02 15:04"),
		booking.SessionLink)

	return utils.SendEmail(booking.Student.Email, subject, body)
}
