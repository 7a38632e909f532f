package controllers

import (
	"github.com/Harsha-217/CrestVault/services"
	"gorm.io/gorm"
)

var (
	transactionService *services.TransactionService
	investmentService  *services.InvestmentService
	walletService      *services.WalletService
	referralService    *services.ReferralService
	payoutService      *services.PayoutService
	cardService        *services.CardService
	kycService         *services.KYCService
)

// InitServices wires the ledger services once at startup. Thresholds come
// in as explicit configuration, not ambient globals.
func InitServices(db *gorm.DB, cfg services.Config) {
	var notifier services.Notifier = services.NopNotifier{}
	if cfg.EmailEnabled {
		notifier = services.NewEmailNotifier(db)
	}

	transactionService = services.NewTransactionService(db, cfg, notifier)
	referralService = services.NewReferralService(db, cfg, transactionService)
	transactionService.SetRewardStager(referralService)

	investmentService = services.NewInvestmentService(db, cfg, notifier)
	walletService = services.NewWalletService(db)
	payoutService = services.NewPayoutService(db, transactionService)
	cardService = services.NewCardService(db, notifier)
	kycService = services.NewKYCService(db, notifier)
}
