package services

import (
	"fmt"
	"testing"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int

// newTestDB opens a fresh in-memory database with the full schema. The DSN
// is named per test so every pooled connection sees the same database while
// tests stay isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Wallet{},
		&models.Transaction{},
		&models.InvestmentPlan{},
		&models.UserInvestment{},
		&models.DailyRoiPayout{},
		&models.AdminAuditLog{},
		&models.AdminNotification{},
		&models.Referral{},
		&models.ReferralReward{},
		&models.VirtualCardRequest{},
		&models.KYCRequest{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

var userSeq int

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	userSeq++
	user := models.User{
		Username:     fmt.Sprintf("user%d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		Password:     "hashed",
		ReferralCode: fmt.Sprintf("CODE%d", userSeq),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.Admin {
	t.Helper()
	userSeq++
	admin := models.Admin{
		Email:    fmt.Sprintf("admin%d@example.com", userSeq),
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func seedWallet(t *testing.T, db *gorm.DB, userID uint, balance string) *models.Wallet {
	t.Helper()
	wallet := models.Wallet{UserID: userID, Balance: dec(balance)}
	require.NoError(t, db.Create(&wallet).Error)
	return &wallet
}

func seedPlan(t *testing.T, db *gorm.DB, name string, dailyROI string, durationDays int, min, max string) *models.InvestmentPlan {
	t.Helper()
	plan := models.InvestmentPlan{
		Name:         name,
		DailyROI:     dec(dailyROI),
		DurationDays: durationDays,
		MinAmount:    dec(min),
		MaxAmount:    dec(max),
		Active:       true,
	}
	require.NoError(t, db.Create(&plan).Error)
	return &plan
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func walletBalance(t *testing.T, db *gorm.DB, userID uint) decimal.Decimal {
	t.Helper()
	var wallet models.Wallet
	require.NoError(t, db.Where("user_id = ?", userID).First(&wallet).Error)
	return wallet.Balance
}

func countAudit(t *testing.T, db *gorm.DB, entity string, entityID uint, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.AdminAuditLog{}).
		Where("entity = ? AND entity_id = ? AND action = ?", entity, entityID, action).
		Count(&n).Error)
	return n
}

// recordingNotifier captures delivered events for assertions.
type recordingNotifier struct {
	events []string
	users  []uint
}

func (r *recordingNotifier) Notify(event string, userID uint, payload map[string]interface{}) bool {
	r.events = append(r.events, event)
	r.users = append(r.users, userID)
	return true
}
