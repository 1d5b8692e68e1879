// Package cli turns command line arguments into a report run.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-report/internal/config"
	"github.com/carson-networks/expense-report/internal/period"
	"github.com/carson-networks/expense-report/report"
)

// alwaysPaidFlats lists the flats on a standing-order arrangement. Their
// Paid cells are filled with the fixed amount regardless of matched receipts.
var alwaysPaidFlats = []string{
	"A 002", "A 003", "A 004", "A 005",
	"A 101", "A 102", "A 104", "A 105", "A 106",
	"A 201", "A 203", "A 204", "A 205", "A 206",
	"A 302", "A 304", "A 305", "A 306",
	"A 401", "A 403", "A 404", "A 405", "A 406",
	"B 003", "B 005",
	"B 102", "B 106",
	"B 201",
	"B 304", "B 306",
	"B 401", "B 403", "B 405",
}

// Parse reads command line arguments into report options, falling back to the
// environment config for any path the caller does not override. It returns
// flag.ErrHelp unchanged so callers can exit cleanly on -h.
func Parse(args []string, cfg *config.Config) (report.Options, error) {
	fs := flag.NewFlagSet("expense-report", flag.ContinueOnError)
	asOf := fs.String("as-of", "", "date the report runs as of, YYYY-MM-DD (defaults to today)")
	output := fs.String("output", "", "write the report to this file instead of stdout")
	excelTemplate := fs.String("excel-template", "", "existing collection workbook to fill in")
	excelOutput := fs.String("excel-output", "", "where to save the updated workbook")
	fixedPaid := fs.String("fixed-paid-amount", "3500", "amount filled in for flats on the fixed-payment list")
	payeeMap := fs.String("payee-map", cfg.PayeeMapPath, "CSV mapping workbook row labels to ledger payees")
	paymentsMap := fs.String("payments-map", cfg.PaymentsMapPath, "CSV mapping workbook account rows to payment criteria")
	if err := fs.Parse(args); err != nil {
		return report.Options{}, err
	}

	options := report.Options{
		CSVPath:         cfg.CSVPath,
		OutputPath:      *output,
		ExcelTemplate:   *excelTemplate,
		ExcelOutput:     *excelOutput,
		PayeeMapPath:    *payeeMap,
		PaymentsMapPath: *paymentsMap,
	}

	if *asOf != "" {
		parsed, err := time.Parse(period.DateLayout, *asOf)
		if err != nil {
			return report.Options{}, fmt.Errorf("invalid --as-of date %q", *asOf)
		}
		options.AsOf = parsed
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		options.CSVPath = rest[0]
	default:
		return report.Options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(rest[1:], " "))
	}

	if (options.ExcelTemplate == "") != (options.ExcelOutput == "") {
		return report.Options{}, errors.New("--excel-template and --excel-output must be used together")
	}

	amount, err := decimal.NewFromString(*fixedPaid)
	if err != nil {
		return report.Options{}, fmt.Errorf("invalid --fixed-paid-amount %q", *fixedPaid)
	}
	options.FixedPaid = make(map[string]decimal.Decimal, len(alwaysPaidFlats))
	for _, label := range alwaysPaidFlats {
		options.FixedPaid[label] = amount
	}

	return options, nil
}
