// services/greeting_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"loyaltypos-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// GreetingService sends birthday wishes to members over SMS and logs
// every attempt. Failures are logged, never fatal.
type GreetingService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewGreetingService(db *gorm.DB) *GreetingService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &GreetingService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *GreetingService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendBirthdayGreetings(time.Now())
	})

	c.Start()
	log.Println("Birthday greeting scheduler started")
}

func (s *GreetingService) SendBirthdayGreetings(today time.Time) {
	log.Println("Starting birthday greeting processing...")

	var members []models.Member
	err := s.db.
		Where("birthday IS NOT NULL").
		Where("EXTRACT(MONTH FROM birthday) = ? AND EXTRACT(DAY FROM birthday) = ?",
			int(today.Month()), today.Day()).
		Find(&members).Error
	if err != nil {
		log.Printf("Failed to fetch birthday members: %v", err)
		return
	}

	for _, member := range members {
		s.sendGreeting(member)
	}
}

func (s *GreetingService) sendGreeting(member models.Member) {
	message := fmt.Sprintf("Happy birthday, %s! Come by today and spend your %d points on a treat.",
		member.Name, member.Points)

	entry := models.GreetingLog{
		MemberID: member.ID,
		Message:  message,
		Status:   "sent",
		SentAt:   time.Now(),
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(member.Phone)
	params.SetFrom(os.Getenv("TWILIO_FROM_NUMBER"))
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Failed to send greeting to %s: %v", member.Phone, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log greeting for %s: %v", member.Phone, err)
	}
}
