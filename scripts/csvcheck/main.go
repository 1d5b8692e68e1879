package main

import (
	"os"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	report_config "github.com/carson-networks/expense-report/internal/config"
	"github.com/carson-networks/expense-report/internal/ledger"
	"github.com/carson-networks/expense-report/internal/logging"
	"github.com/carson-networks/expense-report/internal/period"
)

func main() {
	// Load .env for local development, missing file is fine.
	_ = godotenv.Load()

	env, err := report_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(env.LogLevel)

	path := env.CSVPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	transactions, err := ledger.LoadFile(path)
	if err != nil {
		logger.WithError(err).Fatal("ledger.LoadFile")
		return
	}

	accounts := map[string]struct{}{}
	var first, last time.Time
	for _, tx := range transactions {
		accounts[tx.Account] = struct{}{}
		if first.IsZero() || tx.Date.Before(first) {
			first = tx.Date
		}
		if tx.Date.After(last) {
			last = tx.Date
		}
	}

	fields := logrus.Fields{
		"run_id":       uuid.Must(uuid.NewV4()).String(),
		"path":         path,
		"transactions": len(transactions),
		"accounts":     len(accounts),
	}
	if !first.IsZero() {
		fields["first_date"] = first.Format(period.DateLayout)
		fields["last_date"] = last.Format(period.DateLayout)
	}

	logger.WithFields(fields).Info("Export status")
}
