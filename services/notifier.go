package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Notification event kinds
const (
	EventTransactionApproved = "transaction_approved"
	EventTransactionRejected = "transaction_rejected"
	EventInvestmentApproved  = "investment_approved"
	EventInvestmentRejected  = "investment_rejected"
	EventInvestmentCompleted = "investment_completed"
	EventCardApproved        = "card_approved"
	EventCardRejected        = "card_rejected"
	EventKYCReviewed         = "kyc_reviewed"
	EventReferralReward      = "referral_reward_staged"
)

// Notifier delivers user-facing event notifications. Delivery is
// best-effort: it is invoked only after the financial mutation has
// committed, and a false return is logged, never propagated.
type Notifier interface {
	Notify(event string, userID uint, payload map[string]interface{}) bool
}

// NopNotifier drops every notification. Used when email is disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(event string, userID uint, payload map[string]interface{}) bool {
	return true
}

// EmailNotifier sends event emails over SMTP.
type EmailNotifier struct {
	db *gorm.DB
}

func NewEmailNotifier(db *gorm.DB) *EmailNotifier {
	return &EmailNotifier{db: db}
}

// Notify looks up the user's address and sends a short event email.
func (n *EmailNotifier) Notify(event string, userID uint, payload map[string]interface{}) bool {
	var user models.User
	if err := n.db.First(&user, userID).Error; err != nil {
		utils.LogError("Notifier: user %d not found: %v", userID, err)
		return false
	}

	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", subjectFor(event))

	body := fmt.Sprintf("<p>Hello %s,</p><p>%s</p>", user.FirstName, bodyFor(event, payload))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		utils.LogError("Notifier: failed to send %s email to user %d: %v", event, userID, err)
		return false
	}
	utils.LogInfo("Notifier: sent %s email to user %d", event, userID)
	return true
}

func subjectFor(event string) string {
	switch event {
	case EventTransactionApproved:
		return "Your transaction has been approved"
	case EventTransactionRejected:
		return "Your transaction has been rejected"
	case EventInvestmentApproved:
		return "Your investment is now active"
	case EventInvestmentRejected:
		return "Your investment request was rejected"
	case EventInvestmentCompleted:
		return "Your investment has matured"
	case EventCardApproved:
		return "Your virtual card is ready"
	case EventCardRejected:
		return "Your virtual card request was rejected"
	case EventKYCReviewed:
		return "Your identity verification has been reviewed"
	case EventReferralReward:
		return "You have earned a referral reward"
	}
	return "Account update"
}

func bodyFor(event string, payload map[string]interface{}) string {
	if amount, ok := payload["amount"]; ok {
		return fmt.Sprintf("Event: %s. Amount: %v.", event, amount)
	}
	return fmt.Sprintf("Event: %s.", event)
}
