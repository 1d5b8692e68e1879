// Package report wires the ledger loader, summary builders, renderer, and
// workbook updater into one month-end report run.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-report/internal/ledger"
	"github.com/carson-networks/expense-report/internal/logging"
	"github.com/carson-networks/expense-report/internal/mapping"
	"github.com/carson-networks/expense-report/internal/period"
	"github.com/carson-networks/expense-report/internal/render"
	"github.com/carson-networks/expense-report/internal/summary"
	"github.com/carson-networks/expense-report/internal/workbook"
)

// Options selects the inputs and outputs of one report run. A zero AsOf
// means "now". ExcelTemplate and ExcelOutput are either both set or both
// empty.
type Options struct {
	CSVPath         string
	AsOf            time.Time
	OutputPath      string
	ExcelTemplate   string
	ExcelOutput     string
	PayeeMapPath    string
	PaymentsMapPath string
	FixedPaid       map[string]decimal.Decimal
}

// Result carries the artifacts of one run.
type Result struct {
	RunID      string
	Period     period.Period
	Ledger     []ledger.Transaction
	InPeriod   []ledger.Transaction
	Collection []summary.CollectionRow
	Statement  summary.Statement
	Text       string
}

// Generator produces monthly reports.
type Generator struct {
	Logger *logrus.Logger
	Now    func() time.Time
}

// Generate loads the ledger, resolves the reporting period, and builds the
// report text. It touches no outputs; Run handles delivery.
func (g *Generator) Generate(options Options) (*Result, error) {
	runID := uuid.Must(uuid.NewV4()).String()
	logData := logging.NewLogData(g.logger())
	logData.AddData("run_id", runID)
	logData.AddData("csv_path", options.CSVPath)

	asOf := options.AsOf
	if asOf.IsZero() {
		asOf = g.now()()
	}
	result := &Result{RunID: runID, Period: period.PriorMonth(asOf)}
	logData.AddData("period", result.Period.String())

	err := logging.Stage("LoadLedger", logData, func() error {
		txs, err := ledger.LoadFile(options.CSVPath)
		if err != nil {
			return err
		}
		result.Ledger = txs
		return nil
	})
	if err != nil {
		return nil, err
	}
	logData.AddData("transactions", len(result.Ledger))

	if err := logging.Stage("FilterPeriod", logData, func() error {
		result.InPeriod = ledger.FilterByPeriod(result.Ledger, result.Period)
		return nil
	}); err != nil {
		return nil, err
	}
	logData.AddData("in_period", len(result.InPeriod))

	if err := logging.Stage("BuildSummaries", logData, func() error {
		result.Collection = summary.BuildCollectionSummary(result.InPeriod)
		result.Statement = summary.BuildStatement(result.Ledger, result.Period)
		return nil
	}); err != nil {
		return nil, err
	}

	if g.logger().IsLevelEnabled(logrus.DebugLevel) {
		logData.Log().Debugf("Generator.Generate.Aggregates %v", spew.Sdump(result.Collection, result.Statement))
	}

	if err := logging.Stage("RenderReport", logData, func() error {
		result.Text = render.Report(result.Collection, result.Statement)
		return nil
	}); err != nil {
		return nil, err
	}

	logData.Log().Info("Generator.Generate.Complete")
	return result, nil
}

// Run generates the report and delivers it: to stdout or the output file,
// plus the optional workbook update.
func (g *Generator) Run(options Options) error {
	result, err := g.Generate(options)
	if err != nil {
		return err
	}

	if options.OutputPath != "" {
		if err := os.WriteFile(options.OutputPath, []byte(result.Text), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		g.logger().WithFields(logrus.Fields{
			"run_id": result.RunID,
			"path":   options.OutputPath,
		}).Info("Generator.Run.ReportWritten")
	} else {
		fmt.Println(result.Text)
	}

	if options.ExcelTemplate != "" && options.ExcelOutput != "" {
		if err := g.updateWorkbook(options, result); err != nil {
			return fmt.Errorf("update workbook: %w", err)
		}
	}

	return nil
}

func (g *Generator) updateWorkbook(options Options, result *Result) error {
	payeeMap, err := mapping.LoadPayeeMapFile(options.PayeeMapPath)
	if err != nil {
		return err
	}
	rules, err := mapping.LoadPaymentRulesFile(options.PaymentsMapPath)
	if err != nil {
		return err
	}

	if err := workbook.Update(workbook.UpdateRequest{
		TemplatePath: options.ExcelTemplate,
		OutputPath:   options.ExcelOutput,
		Collection:   result.Collection,
		InPeriod:     result.InPeriod,
		PayeeMap:     payeeMap,
		Rules:        rules,
		FixedPaid:    options.FixedPaid,
		Period:       result.Period,
	}); err != nil {
		return err
	}

	g.logger().WithFields(logrus.Fields{
		"run_id": result.RunID,
		"path":   options.ExcelOutput,
	}).Info("Generator.Run.WorkbookWritten")
	return nil
}

func (g *Generator) logger() *logrus.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return logrus.StandardLogger()
}

func (g *Generator) now() func() time.Time {
	if g.Now != nil {
		return g.Now
	}
	return time.Now
}
