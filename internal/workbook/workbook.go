// Package workbook fills the Paid columns and Account sheet of a statements
// workbook from one month's summaries.
package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/carson-networks/expense-report/internal/ledger"
	"github.com/carson-networks/expense-report/internal/mapping"
	"github.com/carson-networks/expense-report/internal/period"
	"github.com/carson-networks/expense-report/internal/summary"
)

// UpdateRequest carries everything needed to refresh a statements workbook.
// FixedPaid amounts are written to their flats regardless of receipts; the
// keys are normalized before use.
type UpdateRequest struct {
	TemplatePath string
	OutputPath   string
	Collection   []summary.CollectionRow
	InPeriod     []ledger.Transaction
	PayeeMap     mapping.PayeeMap
	Rules        []mapping.PaymentRule
	FixedPaid    map[string]decimal.Decimal
	Period       period.Period
}

// paidSection is one Block/Flat/Paid column group on the collection sheet.
type paidSection struct {
	blockCol int
	flatCol  int
	paidCols []int
}

// Update opens the workbook at TemplatePath, fills every Paid column from
// the collection summary, refreshes the Account sheet payment rows and
// period dates, and writes the result to OutputPath. The template itself is
// never modified. A missing Account sheet is tolerated; a collection sheet
// without Block/Flat/Paid headers is not.
func Update(req UpdateRequest) error {
	wb, err := excelize.OpenFile(req.TemplatePath)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheet := collectionSheetName(wb)
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	headerRow, err := findHeaderRow(rows)
	if err != nil {
		return err
	}
	sections, err := detectSections(rows[headerRow-1])
	if err != nil {
		return err
	}

	values := paidValues{
		overrides: normalizeOverrides(req.FixedPaid),
		receipts:  receiptsByPayee(req.Collection),
		payees:    req.PayeeMap,
	}
	if err := fillPaidColumns(wb, sheet, rows, headerRow, sections, values); err != nil {
		return err
	}
	if err := setCell(wb, sheet, "C1", req.Period.LastDay()); err != nil {
		return err
	}

	if accountSheet := findSheetByName(wb, "account"); accountSheet != "" {
		if err := applyAccountAdjustments(wb, accountSheet); err != nil {
			return err
		}
		totals := mapping.TotalsByRule(req.Rules, req.InPeriod)
		if err := applyPaymentTotals(wb, accountSheet, totals); err != nil {
			return err
		}
		if err := setCell(wb, accountSheet, "A4", req.Period.Start); err != nil {
			return err
		}
		if err := setCell(wb, accountSheet, "A31", req.Period.LastDay()); err != nil {
			return err
		}
	}

	if err := wb.SaveAs(req.OutputPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// collectionSheetName picks the collection summary sheet, tolerating the
// misspelled title found in older workbooks. Falls back to the first sheet.
func collectionSheetName(wb *excelize.File) string {
	sheets := wb.GetSheetList()
	for _, sheet := range sheets {
		key := strings.ReplaceAll(mapping.NormalizeText(sheet), " ", "")
		if key == "collectionsummary" || key == "collectionsummarry" {
			return sheet
		}
	}
	return sheets[0]
}

func findSheetByName(wb *excelize.File, name string) string {
	target := mapping.NormalizeText(name)
	for _, sheet := range wb.GetSheetList() {
		if mapping.NormalizeText(sheet) == target {
			return sheet
		}
	}
	return ""
}

// findHeaderRow locates the first row among the top ten containing a cell
// that mentions "paid". Returns a 1-based row number.
func findHeaderRow(rows [][]string) (int, error) {
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if strings.Contains(strings.ToLower(cell), "paid") {
				return i + 1, nil
			}
		}
	}
	return 0, errors.New("no header row with a Paid column")
}

// detectSections walks the header cells left to right. Each "Block" header
// starts a section whose Flat column is the next one over and whose Paid
// columns run until the following "Block" header.
func detectSections(header []string) ([]paidSection, error) {
	var sections []paidSection
	col := 1
	for col <= len(header) {
		if !isBlockHeader(header[col-1]) {
			col++
			continue
		}
		blockCol := col
		flatCol := 0
		if col+1 <= len(header) {
			flatCol = col + 1
		}
		var paidCols []int
		scan := col
		for scan <= len(header) {
			cell := header[scan-1]
			if scan != blockCol && isBlockHeader(cell) {
				break
			}
			if strings.Contains(strings.ToLower(cell), "paid") {
				paidCols = append(paidCols, scan)
			}
			scan++
		}
		if flatCol != 0 && len(paidCols) > 0 {
			sections = append(sections, paidSection{blockCol: blockCol, flatCol: flatCol, paidCols: paidCols})
		}
		col = scan
	}
	if len(sections) == 0 {
		return nil, errors.New("no Block/Flat columns with Paid headers")
	}
	return sections, nil
}

func isBlockHeader(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), "block")
}

// paidValues resolves the amount written to a flat's Paid cells.
type paidValues struct {
	overrides map[string]decimal.Decimal
	receipts  map[string]decimal.Decimal
	payees    mapping.PayeeMap
}

// valueFor returns the amount for label, or nil when its Paid cells should
// be cleared. A fixed override wins; otherwise the mapped payees' receipts
// are summed and only a positive total is written.
func (v paidValues) valueFor(label string) any {
	if amount, ok := v.overrides[mapping.NormalizeLabel(label)]; ok {
		return roundedFloat(amount)
	}
	payees := v.payees.PayeesFor(label)
	if len(payees) == 0 {
		return nil
	}
	total := decimal.Zero
	for _, payee := range payees {
		total = total.Add(v.receipts[mapping.NormalizeText(payee)])
	}
	if !total.IsPositive() {
		return nil
	}
	return roundedFloat(total)
}

func fillPaidColumns(wb *excelize.File, sheet string, rows [][]string, headerRow int, sections []paidSection, values paidValues) error {
	for _, section := range sections {
		for row := headerRow + 1; row <= len(rows); row++ {
			label := mapping.LabelFromCells(
				cellAt(rows, row, section.blockCol),
				cellAt(rows, row, section.flatCol),
			)
			if label == "" {
				continue
			}
			value := values.valueFor(label)
			for _, col := range section.paidCols {
				cell, err := excelize.CoordinatesToCellName(col, row)
				if err != nil {
					return err
				}
				if err := setCell(wb, sheet, cell, value); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// applyAccountAdjustments clears the payment rows and carries the cached
// closing figures forward: C31 into C4 and C56:I56 into C36:I36.
func applyAccountAdjustments(wb *excelize.File, sheet string) error {
	for row := 5; row <= 21; row++ {
		if err := setCell(wb, sheet, fmt.Sprintf("E%d", row), nil); err != nil {
			return err
		}
	}
	if err := copyCachedCell(wb, sheet, "C31", "C4"); err != nil {
		return err
	}
	for col := 3; col <= 9; col++ {
		from, err := excelize.CoordinatesToCellName(col, 56)
		if err != nil {
			return err
		}
		to, err := excelize.CoordinatesToCellName(col, 36)
		if err != nil {
			return err
		}
		if err := copyCachedCell(wb, sheet, from, to); err != nil {
			return err
		}
	}
	return nil
}

// applyPaymentTotals writes each rule total into column E of the row whose
// column B label normalizes to the rule's label.
func applyPaymentTotals(wb *excelize.File, sheet string, totals map[string]decimal.Decimal) error {
	if len(totals) == 0 {
		return nil
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	for i := range rows {
		label := cellAt(rows, i+1, 2)
		if label == "" {
			continue
		}
		total, ok := totals[mapping.NormalizeText(label)]
		if !ok {
			continue
		}
		if err := setCell(wb, sheet, fmt.Sprintf("E%d", i+1), roundedFloat(total)); err != nil {
			return err
		}
	}
	return nil
}

func receiptsByPayee(rows []summary.CollectionRow) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		name := strings.TrimSpace(row.Payee)
		if name == "" {
			continue
		}
		key := mapping.NormalizeText(name)
		totals[key] = totals[key].Add(row.Receipts)
	}
	return totals
}

func normalizeOverrides(fixed map[string]decimal.Decimal) map[string]decimal.Decimal {
	normalized := make(map[string]decimal.Decimal, len(fixed))
	for label, amount := range fixed {
		normalized[mapping.NormalizeLabel(label)] = amount
	}
	return normalized
}

// copyCachedCell copies the cached value of one cell onto another as a
// literal, so formula results survive into the written workbook.
func copyCachedCell(wb *excelize.File, sheet, from, to string) error {
	raw, err := wb.GetCellValue(sheet, from, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}
	if raw == "" {
		return setCell(wb, sheet, to, nil)
	}
	if number, err := strconv.ParseFloat(raw, 64); err == nil {
		return setCell(wb, sheet, to, number)
	}
	return setCell(wb, sheet, to, raw)
}

// setCell writes a literal value, dropping any formula already in the cell.
// A nil value clears the cell.
func setCell(wb *excelize.File, sheet, cell string, value any) error {
	if err := wb.SetCellFormula(sheet, cell, ""); err != nil {
		return err
	}
	return wb.SetCellValue(sheet, cell, value)
}

func roundedFloat(amount decimal.Decimal) float64 {
	value, _ := amount.Round(2).Float64()
	return value
}

func cellAt(rows [][]string, row, col int) string {
	if row < 1 || row > len(rows) {
		return ""
	}
	cells := rows[row-1]
	if col < 1 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}
