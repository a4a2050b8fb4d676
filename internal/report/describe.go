package report

import (
	"math"
	"sort"

	"github.com/rocjay1/wire-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// ColumnStats is the descriptive summary of one numeric column.
// Pointer fields are nil where the statistic is undefined (no values, or std of a single value).
type ColumnStats struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	P25    *float64 `json:"p25"`
	P50    *float64 `json:"p50"`
	P75    *float64 `json:"p75"`
	Max    *float64 `json:"max"`
}

// Describe summarizes every numeric column of rows: the limit, the transfer amount,
// then each passthrough column whose non-empty values all parse as numbers. Passthrough
// columns keep source order, limit file first. A header present in both files is reported
// once per file, suffixed with LimitSuffix or TransactionSuffix.
func Describe(rows []models.FlaggedRecord) []ColumnStats {
	limits := make([]float64, len(rows))
	amounts := make([]float64, len(rows))
	for i, r := range rows {
		limits[i] = r.WireTransferLimit.InexactFloat64()
		amounts[i] = r.Amount.InexactFloat64()
	}

	stats := []ColumnStats{
		summarize(models.ColumnWireTransferLimit, limits),
		summarize(models.ColumnOutgoingAmount, amounts),
	}

	for _, col := range numericExtraColumns(rows) {
		stats = append(stats, summarize(col.name, col.values))
	}
	return stats
}

// Suffixes that disambiguate a passthrough header found in both the limit and transaction files.
const (
	LimitSuffix       = " (limit)"
	TransactionSuffix = " (transaction)"
)

type side int

const (
	limitSide side = iota
	transactionSide
)

type columnKey struct {
	side side
	name string
}

type numericColumn struct {
	name   string
	values []float64
}

func numericExtraColumns(rows []models.FlaggedRecord) []numericColumn {
	var order []columnKey
	values := make(map[columnKey][]float64)
	registered := make(map[columnKey]bool)
	rejected := make(map[columnKey]bool)
	names := [2]map[string]bool{make(map[string]bool), make(map[string]bool)}

	collect := func(s side, extra models.Fields) {
		for _, f := range extra {
			key := columnKey{side: s, name: f.Name}
			if !registered[key] {
				registered[key] = true
				names[s][f.Name] = true
				order = append(order, key)
			}
			if rejected[key] || f.Value == "" {
				continue
			}
			d, err := decimal.NewFromString(f.Value)
			if err != nil {
				rejected[key] = true
				delete(values, key)
				continue
			}
			values[key] = append(values[key], d.InexactFloat64())
		}
	}
	for _, r := range rows {
		collect(limitSide, r.LimitExtra)
	}
	for _, r := range rows {
		collect(transactionSide, r.TransactionExtra)
	}

	cols := make([]numericColumn, 0, len(order))
	for _, key := range order {
		if len(values[key]) == 0 {
			continue
		}
		name := key.name
		if names[limitSide][name] && names[transactionSide][name] {
			if key.side == limitSide {
				name += LimitSuffix
			} else {
				name += TransactionSuffix
			}
		}
		cols = append(cols, numericColumn{name: name, values: values[key]})
	}
	return cols
}

func summarize(name string, values []float64) ColumnStats {
	s := ColumnStats{Column: name, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	s.Mean = ptr(mean)
	s.Min = ptr(sorted[0])
	s.P25 = ptr(quantile(sorted, 0.25))
	s.P50 = ptr(quantile(sorted, 0.50))
	s.P75 = ptr(quantile(sorted, 0.75))
	s.Max = ptr(sorted[len(sorted)-1])

	if len(sorted) > 1 {
		ss := 0.0
		for _, v := range sorted {
			ss += (v - mean) * (v - mean)
		}
		s.Std = ptr(math.Sqrt(ss / float64(len(sorted)-1)))
	}
	return s
}

// quantile interpolates linearly between closest ranks of an ascending slice.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func ptr(v float64) *float64 { return &v }
