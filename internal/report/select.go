package report

import (
	"sort"

	"github.com/rocjay1/wire-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// AllCustomers is the selection that passes every flagged row through.
const AllCustomers = "All"

// CustomerNames returns the distinct non-empty display names, sorted.
func CustomerNames(rows []models.FlaggedRecord) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, r := range rows {
		name := r.DisplayName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options returns the selection list: AllCustomers followed by CustomerNames.
func Options(rows []models.FlaggedRecord) []string {
	return append([]string{AllCustomers}, CustomerNames(rows)...)
}

// IsAll reports whether name selects every customer.
func IsAll(name string) bool {
	return name == "" || name == AllCustomers
}

// Select returns the rows whose display name equals name exactly, or every row for AllCustomers.
func Select(rows []models.FlaggedRecord, name string) []models.FlaggedRecord {
	if IsAll(name) {
		return rows
	}
	out := make([]models.FlaggedRecord, 0)
	for _, r := range rows {
		if r.DisplayName() == name {
			out = append(out, r)
		}
	}
	return out
}

// Comparison holds the summed limit and summed transfer amount of a selection.
type Comparison struct {
	TotalLimit  decimal.Decimal `json:"total_wire_transfer_limit"`
	TotalAmount decimal.Decimal `json:"total_outgoing_wire_amount"`
}

// Compare sums the limit and amount columns of rows.
func Compare(rows []models.FlaggedRecord) Comparison {
	c := Comparison{TotalLimit: decimal.Zero, TotalAmount: decimal.Zero}
	for _, r := range rows {
		c.TotalLimit = c.TotalLimit.Add(r.WireTransferLimit)
		c.TotalAmount = c.TotalAmount.Add(r.Amount)
	}
	return c
}

// Distribution splits the transfer volume of the full flagged set into the selection and the rest.
type Distribution struct {
	Selected         decimal.Decimal `json:"selected_amount"`
	Remaining        decimal.Decimal `json:"remaining_amount"`
	Overall          decimal.Decimal `json:"overall_amount"`
	SelectedPercent  float64         `json:"selected_percent"`
	RemainingPercent float64         `json:"remaining_percent"`
}

// Distribute computes the share of all's transfer volume that selected accounts for.
func Distribute(all, selected []models.FlaggedRecord) Distribution {
	overall := Compare(all).TotalAmount
	sel := Compare(selected).TotalAmount
	d := Distribution{
		Selected:  sel,
		Remaining: overall.Sub(sel),
		Overall:   overall,
	}
	if !overall.IsZero() {
		hundred := decimal.NewFromInt(100)
		d.SelectedPercent = sel.Div(overall).Mul(hundred).InexactFloat64()
		d.RemainingPercent = d.Remaining.Div(overall).Mul(hundred).InexactFloat64()
	}
	return d
}

// CountByCustomer returns the number of flagged rows per display name.
func CountByCustomer(rows []models.FlaggedRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.DisplayName()]++
	}
	return counts
}

// Appearances returns how many flagged rows carry the display name.
func Appearances(rows []models.FlaggedRecord, name string) int {
	return CountByCustomer(rows)[name]
}
