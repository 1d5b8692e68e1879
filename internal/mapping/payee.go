// Package mapping loads the workbook mapping files and normalizes the
// labels they key on.
package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	labelPattern   = regexp.MustCompile(`([A-Z])0*([0-9]{1,3})`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	nonAlnumRun    = regexp.MustCompile(`[^a-z0-9\s]`)
	payeeSeparator = regexp.MustCompile(`[;|]`)
)

// NormalizeLabel returns block/flat labels in the canonical "B 402" form.
// Whitespace, hyphens, and leading zeros are ignored when locating the block
// letter and flat number. Values that do not contain such a pair pass
// through trimmed and uppercased.
func NormalizeLabel(value string) string {
	if value == "" {
		return ""
	}
	cleaned := whitespaceRun.ReplaceAllString(strings.ToUpper(value), "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	match := labelPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return strings.ToUpper(strings.TrimSpace(value))
	}
	number, _ := strconv.Atoi(match[2])
	return fmt.Sprintf("%s %03d", match[1], number)
}

// LabelFromCells turns spreadsheet Block and Flat cells into a canonical
// label, or "" when either cell is blank. Numeric flat cells keep their
// integer part, so values exported as "402.0" become "B 402".
func LabelFromCells(blockCell, flatCell string) string {
	block := strings.ToUpper(strings.TrimSpace(blockCell))
	flat := strings.TrimSpace(flatCell)
	if block == "" || flat == "" {
		return ""
	}
	flat = strings.ReplaceAll(flat, ".0", "")
	if number, err := strconv.ParseFloat(flat, 64); err == nil {
		return fmt.Sprintf("%s %03d", block, int(number))
	}
	return NormalizeLabel(block + " " + flat)
}

// NormalizeText flattens free text for lookups: lowercased, punctuation
// replaced by spaces, whitespace runs collapsed to single spaces.
func NormalizeText(text string) string {
	t := strings.ToLower(text)
	t = nonAlnumRun.ReplaceAllString(t, " ")
	t = whitespaceRun.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// PayeeMap relates canonical block/flat labels to the payee names whose
// receipts fund that flat.
type PayeeMap map[string][]string

// PayeesFor looks up the payees recorded against label, normalizing it
// first. Unknown and empty labels yield nil.
func (m PayeeMap) PayeesFor(label string) []string {
	if label == "" {
		return nil
	}
	return m[NormalizeLabel(label)]
}

// LoadPayeeMap reads a payee mapping CSV. The header row names the columns;
// "row_label" carries the block/flat label and "payees" a ";" or "|"
// separated list of names. Rows without a usable label are skipped.
func LoadPayeeMap(r io.Reader) (PayeeMap, error) {
	rows, err := readMappingRows(r)
	if err != nil {
		return nil, err
	}
	m := make(PayeeMap)
	if len(rows) == 0 {
		return m, nil
	}
	labelCol := columnIndex(rows[0], "row_label")
	payeesCol := columnIndex(rows[0], "payees")
	for _, row := range rows[1:] {
		label := NormalizeLabel(fieldAt(row, labelCol))
		if label == "" {
			continue
		}
		m[label] = splitPayees(fieldAt(row, payeesCol))
	}
	return m, nil
}

// LoadPayeeMapFile reads the payee mapping CSV at path.
func LoadPayeeMapFile(path string) (PayeeMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open payee map: %w", err)
	}
	defer f.Close()

	m, err := LoadPayeeMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func splitPayees(cell string) []string {
	var parts []string
	for _, chunk := range payeeSeparator.Split(cell, -1) {
		if name := strings.TrimSpace(chunk); name != "" {
			parts = append(parts, name)
		}
	}
	return parts
}

func readMappingRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func columnIndex(header []string, name string) int {
	for i, cell := range header {
		if cell == name {
			return i
		}
	}
	return -1
}

func fieldAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
