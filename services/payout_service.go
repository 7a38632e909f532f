package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayoutService computes and stages the daily ROI credit for every approved
// investment, once per calendar day per investment. The staged credit is an
// ordinary pending deposit: it requires the same admin approval as any
// other deposit before funds move.
type PayoutService struct {
	db           *gorm.DB
	transactions *TransactionService
}

func NewPayoutService(db *gorm.DB, transactions *TransactionService) *PayoutService {
	return &PayoutService{db: db, transactions: transactions}
}

// PayoutRunResult summarizes a job run.
type PayoutRunResult struct {
	Date       string          `json:"date"`
	Considered int             `json:"considered"`
	Staged     int             `json:"staged"`
	Skipped    int             `json:"skipped"`
	Total      decimal.Decimal `json:"total"`
	DryRun     bool            `json:"dry_run"`
}

// Run processes every approved investment for the given calendar date.
// The (investment, date) pair is the idempotency key: an existing
// DailyRoiPayout row means the investment is skipped entirely, with no new
// transaction and no duplicate row, no matter how many times the job runs.
// Zero and negative computed payouts are skipped without creating a row.
func (s *PayoutService) Run(date time.Time, dryRun bool) (*PayoutRunResult, error) {
	day := date.Format("2006-01-02")
	result := &PayoutRunResult{Date: day, Total: decimal.Zero, DryRun: dryRun}

	var investments []models.UserInvestment
	if err := s.db.Preload("Plan").
		Where("status = ?", models.InvestmentStatusApproved).
		Find(&investments).Error; err != nil {
		return nil, err
	}
	result.Considered = len(investments)

	for _, inv := range investments {
		payout := inv.Amount.Mul(inv.Plan.DailyROI).Div(decimal.NewFromInt(100)).Round(2)
		if !payout.IsPositive() {
			result.Skipped++
			continue
		}

		var existing models.DailyRoiPayout
		err := s.db.Where("investment_id = ? AND payout_date = ?", inv.ID, day).First(&existing).Error
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if dryRun {
			result.Staged++
			result.Total = result.Total.Add(payout)
			continue
		}

		if err := s.stage(&inv, day, payout); err != nil {
			// A unique-index violation means a concurrent run got there
			// first; treat it as an ordinary skip.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				result.Skipped++
				continue
			}
			utils.LogError("Payout staging failed for investment %d on %s: %v", inv.ID, day, err)
			return nil, err
		}
		result.Staged++
		result.Total = result.Total.Add(payout)
	}

	utils.LogInfo("Payout run %s: %d considered, %d staged, %d skipped, total %s (dry-run=%v)",
		day, result.Considered, result.Staged, result.Skipped, result.Total.StringFixed(2), dryRun)
	return result, nil
}

func (s *PayoutService) stage(inv *models.UserInvestment, day string, payout decimal.Decimal) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		row := models.DailyRoiPayout{
			InvestmentID: inv.ID,
			PayoutDate:   day,
			Amount:       payout,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		staged, err := s.transactions.withDB(tx).Create(CreateTransactionInput{
			UserID:        inv.UserID,
			Type:          models.TransactionTypeDeposit,
			Amount:        payout,
			Reference:     fmt.Sprintf("ROI-%d-%s", inv.ID, day),
			PaymentMethod: "roi_payout",
		})
		if err != nil {
			return err
		}

		row.TransactionID = &staged.ID
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		// Actor 0 marks the system job, not an administrator.
		return writeAudit(tx, 0, models.AuditEntityRoiPayout, row.ID, models.AuditActionAutoCredit,
			fmt.Sprintf("staged %s for investment %d on %s", payout.StringFixed(2), inv.ID, day))
	})
}
