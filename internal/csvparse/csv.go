package csvparse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rocjay1/wire-dashboard/internal/dataerr"
	"github.com/rocjay1/wire-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultDateLayouts are tried in order when parsing a transaction date.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Options controls how a batch file is read.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// DateLayouts are tried in order. Empty means DefaultDateLayouts.
	DateLayouts []string
}

var (
	transactionColumns = []string{models.ColumnCustomerID, models.ColumnTransactionDate, models.ColumnOutgoingAmount}
	limitColumns       = []string{models.ColumnCustomerID, models.ColumnCustomerName, models.ColumnWireTransferLimit}
)

// ParseTransactions parses one SWIFT batch. batch is the 1-based batch number stamped on every row.
// Structural problems return a *dataerr.DataLoadError; bad values return a *dataerr.DataTypeError
// listing every offending row.
func ParseTransactions(name string, batch int, r io.Reader, opts Options) ([]models.Transaction, error) {
	headers, rows, err := readTable(name, r, opts, transactionColumns)
	if err != nil {
		return nil, err
	}

	known := map[string]bool{
		models.ColumnCustomerID:      true,
		models.ColumnCustomerName:    true,
		models.ColumnTransactionDate: true,
		models.ColumnOutgoingAmount:  true,
	}

	transactions := make([]models.Transaction, 0, len(rows))
	var problems []string
	for i, record := range rows {
		rowNum := i + 2
		rowMap := mapRow(headers, record)

		t, err := mapToTransaction(rowMap, opts)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		t.Batch = batch
		t.Extra = extraFields(headers, rowMap, known)
		transactions = append(transactions, *t)
	}

	if len(problems) > 0 {
		return nil, &dataerr.DataTypeError{File: name, Problems: problems}
	}
	return transactions, nil
}

// ParseLimits parses the KYC limit batch. Customer IDs must be unique.
func ParseLimits(name string, r io.Reader, opts Options) ([]models.CustomerLimit, error) {
	headers, rows, err := readTable(name, r, opts, limitColumns)
	if err != nil {
		return nil, err
	}

	known := map[string]bool{
		models.ColumnCustomerID:        true,
		models.ColumnCustomerName:      true,
		models.ColumnWireTransferLimit: true,
	}

	limits := make([]models.CustomerLimit, 0, len(rows))
	seen := make(map[string]int)
	var problems []string
	for i, record := range rows {
		rowNum := i + 2
		rowMap := mapRow(headers, record)

		l, err := mapToLimit(rowMap)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if first, dup := seen[l.CustomerID]; dup {
			return nil, dataerr.NewLoadError(name,
				fmt.Sprintf("duplicate %s %q on rows %d and %d", models.ColumnCustomerID, l.CustomerID, first, rowNum), nil)
		}
		seen[l.CustomerID] = rowNum
		l.Extra = extraFields(headers, rowMap, known)
		limits = append(limits, *l)
	}

	if len(problems) > 0 {
		return nil, &dataerr.DataTypeError{File: name, Problems: problems}
	}
	return limits, nil
}

func readTable(name string, r io.Reader, opts Options, required []string) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, dataerr.NewLoadError(name, "malformed content", err)
	}
	if len(records) == 0 {
		return nil, nil, dataerr.NewLoadError(name, "missing header row", nil)
	}

	headers := parseHeaders(records[0])
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	for _, col := range required {
		if !present[col] {
			return nil, nil, dataerr.NewLoadError(name, fmt.Sprintf("missing required column %q", col), nil)
		}
	}

	return headers, records[1:], nil
}

func parseHeaders(row []string) []string {
	headers := make([]string, len(row))
	for i, h := range row {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

func mapRow(headers, record []string) map[string]string {
	rowMap := make(map[string]string, len(headers))
	for j, header := range headers {
		if j < len(record) {
			rowMap[header] = strings.TrimSpace(record[j])
		}
	}
	return rowMap
}

// extraFields returns the cells of unknown columns in header order, or nil if there are none.
func extraFields(headers []string, row map[string]string, known map[string]bool) models.Fields {
	var extra models.Fields
	seen := make(map[string]bool)
	for _, h := range headers {
		if known[h] || h == "" || seen[h] {
			continue
		}
		seen[h] = true
		extra = append(extra, models.Field{Name: h, Value: row[h]})
	}
	return extra
}

func mapToTransaction(row map[string]string, opts Options) (*models.Transaction, error) {
	id := row[models.ColumnCustomerID]
	if id == "" {
		return nil, fmt.Errorf("missing %s", models.ColumnCustomerID)
	}

	dateStr := row[models.ColumnTransactionDate]
	if dateStr == "" {
		return nil, fmt.Errorf("missing %s", models.ColumnTransactionDate)
	}
	date, err := parseDate(dateStr, opts.DateLayouts)
	if err != nil {
		return nil, err
	}

	// A blank amount is kept as absent; such a row can never be flagged.
	var amount decimal.NullDecimal
	if amountStr := row[models.ColumnOutgoingAmount]; amountStr != "" {
		d, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", models.ColumnOutgoingAmount, amountStr)
		}
		amount = decimal.NewNullDecimal(d)
	}

	return &models.Transaction{
		CustomerID:   id,
		CustomerName: row[models.ColumnCustomerName],
		Date:         date,
		Amount:       amount,
	}, nil
}

func mapToLimit(row map[string]string) (*models.CustomerLimit, error) {
	id := row[models.ColumnCustomerID]
	if id == "" {
		return nil, fmt.Errorf("missing %s", models.ColumnCustomerID)
	}

	limitStr := row[models.ColumnWireTransferLimit]
	if limitStr == "" {
		return nil, fmt.Errorf("missing %s", models.ColumnWireTransferLimit)
	}
	limit, err := decimal.NewFromString(limitStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", models.ColumnWireTransferLimit, limitStr)
	}

	return &models.CustomerLimit{
		CustomerID:   id,
		CustomerName: row[models.ColumnCustomerName],
		Limit:        limit,
	}, nil
}

func parseDate(value string, layouts []string) (time.Time, error) {
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s format: %s", models.ColumnTransactionDate, value)
}
