package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/services"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// The payout job stages one ROI credit per approved investment per calendar
// day. Runs are idempotent, so re-running a date after a crash is safe.
func main() {
	dateFlag := flag.String("date", "", "payout date as YYYY-MM-DD (default today)")
	dryRun := flag.Bool("dry-run", false, "report what would be staged without writing")
	schedule := flag.String("schedule", "", "cron spec to run continuously (e.g. \"5 0 * * *\")")
	flag.Parse()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	if err := utils.InitLogger(); err != nil {
		logrus.Fatal("Failed to initialize logger: ", err)
	}
	if _, err := config.LoadConfig(); err != nil {
		logrus.Fatal("Failed to load config: ", err)
	}
	config.InitDB()

	transactions := services.NewTransactionService(config.DB, config.ServiceConfig(), services.NopNotifier{})
	payouts := services.NewPayoutService(config.DB, transactions)

	if *schedule == "" {
		date := time.Now()
		if *dateFlag != "" {
			parsed, err := time.Parse("2006-01-02", *dateFlag)
			if err != nil {
				logrus.Fatalf("Invalid -date %q, expected YYYY-MM-DD", *dateFlag)
			}
			date = parsed
		}
		if err := runOnce(payouts, date, *dryRun); err != nil {
			os.Exit(1)
		}
		return
	}

	if *dateFlag != "" {
		logrus.Fatal("-date cannot be combined with -schedule")
	}

	c := cron.New()
	if _, err := c.AddFunc(*schedule, func() {
		// Errors are logged and the next scheduled run retries; idempotency
		// makes the retry safe.
		_ = runOnce(payouts, time.Now(), *dryRun)
	}); err != nil {
		logrus.Fatalf("Invalid -schedule %q: %v", *schedule, err)
	}
	c.Start()
	logrus.Infof("Payout scheduler started with spec %q", *schedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := c.Stop()
	<-ctx.Done()
	logrus.Info("Payout scheduler stopped")
}

func runOnce(payouts *services.PayoutService, date time.Time, dryRun bool) error {
	result, err := payouts.Run(date, dryRun)
	if err != nil {
		logrus.Errorf("Payout run for %s failed: %v", date.Format("2006-01-02"), err)
		return err
	}
	logrus.WithFields(logrus.Fields{
		"date":       result.Date,
		"considered": result.Considered,
		"staged":     result.Staged,
		"skipped":    result.Skipped,
		"total":      result.Total.StringFixed(2),
		"dry_run":    result.DryRun,
	}).Info("Payout run finished")
	return nil
}
