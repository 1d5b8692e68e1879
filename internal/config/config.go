package config

import (
	"os"
)

type Config struct {
	CSVPath         string
	PayeeMapPath    string
	PaymentsMapPath string
	LogLevel        string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for an ExpenseManager
	// export and its mapping files sitting in the working directory
	env := Config{
		CSVPath:         "expensemanager.csv",
		PayeeMapPath:    "payee_mapping.csv",
		PaymentsMapPath: "account_payments_mapping.csv",
		LogLevel:        "info",
	}

	envCSVPath := os.Getenv("EXPENSE_CSV_PATH")
	envPayeeMapPath := os.Getenv("EXPENSE_PAYEE_MAP")
	envPaymentsMapPath := os.Getenv("EXPENSE_PAYMENTS_MAP")
	envLogLevel := os.Getenv("LOG_LEVEL")

	if len(envCSVPath) != 0 {
		env.CSVPath = envCSVPath
	}

	if len(envPayeeMapPath) != 0 {
		env.PayeeMapPath = envPayeeMapPath
	}

	if len(envPaymentsMapPath) != 0 {
		env.PaymentsMapPath = envPaymentsMapPath
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	return &env, nil
}
