package mapping

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-report/internal/ledger"
)

// PaymentRule routes matching payments onto one Account sheet row. All
// criteria are stored lowercased; an empty criterion matches everything.
type PaymentRule struct {
	RowLabel            string
	Category            string
	Subcategory         string
	DescriptionContains string
	PayeeContains       string
}

// Matches reports whether tx is a payment satisfying every criterion set on
// the rule. Category and Subcategory compare whole values, the Contains
// criteria look for substrings.
func (r PaymentRule) Matches(tx ledger.Transaction) bool {
	if !tx.IsPayment() {
		return false
	}
	if r.Category != "" && lowered(tx.Category) != r.Category {
		return false
	}
	if r.Subcategory != "" && lowered(tx.Subcategory) != r.Subcategory {
		return false
	}
	if r.DescriptionContains != "" && !strings.Contains(strings.ToLower(tx.Description), r.DescriptionContains) {
		return false
	}
	if r.PayeeContains != "" && !strings.Contains(strings.ToLower(tx.PayeePayer), r.PayeeContains) {
		return false
	}
	return true
}

// LoadPaymentRules reads a payments mapping CSV. The header row names the
// columns; "row_label" is required per row, the criterion columns
// ("category", "subcategory", "description_contains", "payee_contains") are
// optional. Rows without a label are skipped.
func LoadPaymentRules(r io.Reader) ([]PaymentRule, error) {
	rows, err := readMappingRows(r)
	if err != nil {
		return nil, err
	}
	rules := []PaymentRule{}
	if len(rows) == 0 {
		return rules, nil
	}
	header := rows[0]
	labelCol := columnIndex(header, "row_label")
	categoryCol := columnIndex(header, "category")
	subcategoryCol := columnIndex(header, "subcategory")
	descriptionCol := columnIndex(header, "description_contains")
	payeeCol := columnIndex(header, "payee_contains")
	for _, row := range rows[1:] {
		label := strings.TrimSpace(fieldAt(row, labelCol))
		if label == "" {
			continue
		}
		rules = append(rules, PaymentRule{
			RowLabel:            label,
			Category:            lowered(fieldAt(row, categoryCol)),
			Subcategory:         lowered(fieldAt(row, subcategoryCol)),
			DescriptionContains: lowered(fieldAt(row, descriptionCol)),
			PayeeContains:       lowered(fieldAt(row, payeeCol)),
		})
	}
	return rules, nil
}

// LoadPaymentRulesFile reads the payments mapping CSV at path.
func LoadPaymentRulesFile(path string) ([]PaymentRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open payments map: %w", err)
	}
	defer f.Close()

	rules, err := LoadPaymentRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// TotalsByRule sums the absolute amounts of the payments each rule matches,
// keyed by the rule's normalized row label. Rules matching no payments are
// omitted; when two rules share a normalized label the later one wins.
func TotalsByRule(rules []PaymentRule, txs []ledger.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, rule := range rules {
		total := decimal.Zero
		for _, tx := range txs {
			if rule.Matches(tx) {
				total = total.Add(tx.Amount.Abs())
			}
		}
		if total.IsPositive() {
			totals[NormalizeText(rule.RowLabel)] = total
		}
	}
	return totals
}

func lowered(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
