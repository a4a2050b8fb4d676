package pipeline

import (
	"github.com/rocjay1/wire-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// LimitPlaceholder is the KYC limit value recorded as a data-entry placeholder.
	LimitPlaceholder = decimal.NewFromInt(500)
	// LimitPlaceholderBump is added to a placeholder limit before comparison.
	LimitPlaceholderBump = decimal.NewFromInt(5000000)
)

// CorrectLimit replaces the placeholder limit of exactly 500 with 5,000,500.
// Any other value is returned unchanged, so applying it twice is a no-op.
func CorrectLimit(limit decimal.Decimal) decimal.Decimal {
	if limit.Equal(LimitPlaceholder) {
		return limit.Add(LimitPlaceholderBump)
	}
	return limit
}

// CorrectLimits returns a copy of limits with CorrectLimit applied, and how many values changed.
func CorrectLimits(limits []models.CustomerLimit) ([]models.CustomerLimit, int) {
	out := make([]models.CustomerLimit, len(limits))
	corrected := 0
	for i, l := range limits {
		fixed := CorrectLimit(l.Limit)
		if !fixed.Equal(l.Limit) {
			corrected++
		}
		l.Limit = fixed
		out[i] = l
	}
	return out, corrected
}

// Concat joins batches end to end in argument order without deduplication.
func Concat(batches ...[]models.Transaction) []models.Transaction {
	n := 0
	for _, b := range batches {
		n += len(b)
	}
	out := make([]models.Transaction, 0, n)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

// LeftJoin joins transactions onto limits by customer ID, keeping every limit.
// Rows follow limit order, then transaction order within a customer. A limit
// without transactions yields one row with a nil Transaction. Transactions for
// unknown customers are dropped.
func LeftJoin(limits []models.CustomerLimit, transactions []models.Transaction) []models.JoinedRecord {
	byCustomer := make(map[string][]int)
	for i, t := range transactions {
		byCustomer[t.CustomerID] = append(byCustomer[t.CustomerID], i)
	}

	joined := make([]models.JoinedRecord, 0, len(limits)+len(transactions))
	for _, l := range limits {
		idxs := byCustomer[l.CustomerID]
		if len(idxs) == 0 {
			joined = append(joined, models.JoinedRecord{Limit: l})
			continue
		}
		for _, i := range idxs {
			joined = append(joined, models.JoinedRecord{Limit: l, Transaction: &transactions[i]})
		}
	}
	return joined
}

// FilterExceeding keeps joined rows whose transaction amount is present and strictly above the limit.
func FilterExceeding(joined []models.JoinedRecord) []models.FlaggedRecord {
	flagged := make([]models.FlaggedRecord, 0)
	for _, j := range joined {
		if !j.Exceeds() {
			continue
		}
		if f, ok := j.Flag(); ok {
			flagged = append(flagged, f)
		}
	}
	return flagged
}

// Detection is the output of Detect.
type Detection struct {
	Joined          []models.JoinedRecord
	Flagged         []models.FlaggedRecord
	CorrectedLimits int
}

// Detect corrects the limits, concatenates the batches, joins and filters.
func Detect(limits []models.CustomerLimit, batches ...[]models.Transaction) Detection {
	corrected, n := CorrectLimits(limits)
	joined := LeftJoin(corrected, Concat(batches...))
	return Detection{
		Joined:          joined,
		Flagged:         FilterExceeding(joined),
		CorrectedLimits: n,
	}
}
