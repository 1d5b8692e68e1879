package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-report/internal/cli"
	"github.com/carson-networks/expense-report/internal/config"
	"github.com/carson-networks/expense-report/internal/logging"
	"github.com/carson-networks/expense-report/report"
)

func main() {
	// Load .env for local development, missing file is fine.
	_ = godotenv.Load()

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("expense-report starting")

	options, err := cli.Parse(os.Args[1:], envConfig)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.WithError(err).Fatal("cli.Parse")
		return
	}

	generator := report.Generator{
		Logger: logger,
		Now:    time.Now,
	}

	if err := generator.Run(options); err != nil {
		logger.WithError(err).Fatal("report.Generator.Run")
		return
	}
}
