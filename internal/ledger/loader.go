package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-report/internal/period"
)

// Header is the exact column set of an ExpenseManager CSV export.
var Header = []string{
	"Date",
	"Amount",
	"Category",
	"Subcategory",
	"Payment Method",
	"Description",
	"Ref/Check No",
	"Payee/Payer",
	"Status",
	"Receipt Picture",
	"Account",
	"Tag",
	"Tax",
	"Quantity",
	"Split Total",
	"Row Id",
	"Type Id",
}

// ErrUnexpectedHeader reports an export whose header row does not match
// Header.
var ErrUnexpectedHeader = errors.New("unexpected CSV header")

// LoadFile reads and parses an export from disk.
func LoadFile(path string) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	txs, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return txs, nil
}

// Load parses an export stream. Fully blank rows are ignored, as is a junk
// first row when the row after it carries the expected header. Everything
// else must parse: a truncated row, a non-blank row with an empty date, or an
// unreadable date or amount aborts the load, because skipping such rows would
// silently corrupt the opening-balance arithmetic.
func Load(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := readCleanRows(cr)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Transaction{}, nil
	}

	if slices.Equal(rows[0].fields, Header) {
		rows = rows[1:]
	} else if len(rows) > 1 && slices.Equal(rows[1].fields, Header) {
		// Some exports carry a junk first row; the real header follows it.
		rows = rows[2:]
	} else {
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedHeader, rows[0].fields)
	}

	txs := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := parseRow(row.fields)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", row.num, err)
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

type rawRow struct {
	num    int
	fields []string
}

func readCleanRows(cr *csv.Reader) ([]rawRow, error) {
	var rows []rawRow
	for num := 1; ; num++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", num, err)
		}
		if num == 1 && len(fields) > 0 {
			fields[0] = strings.TrimPrefix(fields[0], "\ufeff")
		}
		if isBlank(fields) {
			continue
		}
		rows = append(rows, rawRow{num: num, fields: fields})
	}
}

func isBlank(fields []string) bool {
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func parseRow(fields []string) (Transaction, error) {
	if len(fields) != len(Header) {
		return Transaction{}, fmt.Errorf("expected %d columns, got %d", len(Header), len(fields))
	}

	rawDate := fields[0]
	if rawDate == "" {
		return Transaction{}, errors.New("missing date")
	}
	date, err := time.Parse(period.DateLayout, rawDate)
	if err != nil {
		return Transaction{}, fmt.Errorf("parse date %q: %w", rawDate, err)
	}

	amount := decimal.Zero
	if rawAmount := fields[1]; rawAmount != "" {
		amount, err = decimal.NewFromString(strings.TrimSpace(rawAmount))
		if err != nil {
			return Transaction{}, fmt.Errorf("parse amount %q: %w", rawAmount, err)
		}
	}

	var rowID *int64
	if rawRowID := fields[15]; rawRowID != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(rawRowID), 10, 64)
		if err != nil {
			return Transaction{}, fmt.Errorf("parse row id %q: %w", rawRowID, err)
		}
		rowID = &id
	}

	return Transaction{
		Date:           date,
		Amount:         amount,
		Category:       fields[2],
		Subcategory:    fields[3],
		PaymentMethod:  fields[4],
		Description:    fields[5],
		RefCheckNo:     fields[6],
		PayeePayer:     fields[7],
		Status:         fields[8],
		ReceiptPicture: fields[9],
		Account:        fields[10],
		Tag:            fields[11],
		Tax:            fields[12],
		Quantity:       fields[13],
		SplitTotal:     fields[14],
		RowID:          rowID,
		TypeID:         fields[16],
	}, nil
}
