package pipeline

import (
	"sort"
	"testing"
	"time"

	"github.com/rocjay1/wire-dashboard/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limit(id, name string, value string) models.CustomerLimit {
	return models.CustomerLimit{CustomerID: id, CustomerName: name, Limit: decimal.RequireFromString(value)}
}

func txn(id string, amount string, batch int) models.Transaction {
	return models.Transaction{
		CustomerID: id,
		Date:       time.Date(2025, 9, 24, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewNullDecimal(decimal.RequireFromString(amount)),
		Batch:      batch,
	}
}

func TestCorrectLimit(t *testing.T) {
	assert.True(t, CorrectLimit(decimal.NewFromInt(500)).Equal(decimal.NewFromInt(5000500)))
	assert.True(t, CorrectLimit(decimal.RequireFromString("500.00")).Equal(decimal.NewFromInt(5000500)))
	assert.True(t, CorrectLimit(decimal.RequireFromString("500.01")).Equal(decimal.RequireFromString("500.01")))
	assert.True(t, CorrectLimit(decimal.NewFromInt(499)).Equal(decimal.NewFromInt(499)))
	assert.True(t, CorrectLimit(decimal.NewFromInt(10000)).Equal(decimal.NewFromInt(10000)))
}

func TestCorrectLimit_Idempotent(t *testing.T) {
	values := []string{"-500", "0", "1", "499.99", "500", "500.0000", "5000500", "10000", "123456.78"}
	for _, v := range values {
		once := CorrectLimit(decimal.RequireFromString(v))
		twice := CorrectLimit(once)
		assert.True(t, once.Equal(twice), "value %s: once=%s twice=%s", v, once, twice)
		assert.False(t, once.Equal(LimitPlaceholder), "value %s corrected back to the placeholder", v)
	}
}

func TestCorrectLimits_CopiesAndCounts(t *testing.T) {
	limits := []models.CustomerLimit{limit("C1", "Acme", "500"), limit("C2", "Beta", "10000")}

	out, n := CorrectLimits(limits)

	assert.Equal(t, 1, n)
	assert.True(t, out[0].Limit.Equal(decimal.NewFromInt(5000500)))
	assert.True(t, out[1].Limit.Equal(decimal.NewFromInt(10000)))
	assert.True(t, limits[0].Limit.Equal(decimal.NewFromInt(500)), "input slice must not be modified")
}

func TestConcat_PreservesOrder(t *testing.T) {
	b1 := []models.Transaction{txn("A", "1", 1), txn("B", "2", 1)}
	b2 := []models.Transaction{txn("A", "3", 2)}
	b3 := []models.Transaction{txn("A", "1", 3), txn("A", "1", 3)}

	out := Concat(b1, b2, b3)

	require.Len(t, out, 5)
	got := make([]string, len(out))
	for i, tx := range out {
		got[i] = tx.Amount.Decimal.String()
	}
	assert.Equal(t, []string{"1", "2", "3", "1", "1"}, got)
	assert.Equal(t, []int{1, 1, 2, 3, 3}, []int{out[0].Batch, out[1].Batch, out[2].Batch, out[3].Batch, out[4].Batch})
}

func TestLeftJoin_Cardinality(t *testing.T) {
	limits := []models.CustomerLimit{
		limit("C1", "Acme", "100"),
		limit("C2", "Beta", "100"),
		limit("C3", "Gamma", "100"),
	}
	transactions := []models.Transaction{
		txn("C1", "1", 1),
		txn("C2", "2", 1),
		txn("C1", "3", 2),
		txn("ZZ", "4", 3), // no limit record
	}

	joined := LeftJoin(limits, transactions)

	// C1 x2, C2 x1, C3 unmatched x1.
	require.Len(t, joined, 4)
	assert.GreaterOrEqual(t, len(joined), len(limits))

	assert.Equal(t, "C1", joined[0].Limit.CustomerID)
	assert.Equal(t, "1", joined[0].Transaction.Amount.Decimal.String())
	assert.Equal(t, "C1", joined[1].Limit.CustomerID)
	assert.Equal(t, "3", joined[1].Transaction.Amount.Decimal.String())
	assert.Equal(t, "C2", joined[2].Limit.CustomerID)
	assert.Equal(t, "C3", joined[3].Limit.CustomerID)
	assert.Nil(t, joined[3].Transaction)

	for _, j := range joined {
		if j.Transaction != nil {
			assert.NotEqual(t, "ZZ", j.Transaction.CustomerID)
		}
	}
}

func TestLeftJoin_NoTransactions(t *testing.T) {
	limits := []models.CustomerLimit{limit("C1", "Acme", "100"), limit("C2", "Beta", "100")}

	joined := LeftJoin(limits, nil)

	require.Len(t, joined, 2)
	for _, j := range joined {
		assert.False(t, j.HasTransaction())
	}
	assert.Empty(t, FilterExceeding(joined))
}

func TestFilterExceeding_StrictInequality(t *testing.T) {
	limits := []models.CustomerLimit{limit("C2", "Beta", "10000")}
	transactions := []models.Transaction{
		txn("C2", "10000", 1),
		txn("C2", "10000.01", 1),
		txn("C2", "9999.99", 1),
	}

	flagged := FilterExceeding(LeftJoin(limits, transactions))

	require.Len(t, flagged, 1)
	assert.True(t, flagged[0].Amount.Equal(decimal.RequireFromString("10000.01")))
}

func TestFilterExceeding_SkipsMissingAmount(t *testing.T) {
	limits := []models.CustomerLimit{limit("C2", "Beta", "10000")}
	blank := txn("C2", "0", 1)
	blank.Amount = decimal.NullDecimal{}
	transactions := []models.Transaction{blank, txn("C2", "20000", 1)}

	joined := LeftJoin(limits, transactions)
	flagged := FilterExceeding(joined)

	assert.Len(t, joined, 2)
	require.Len(t, flagged, 1)
	assert.True(t, flagged[0].Amount.Equal(decimal.NewFromInt(20000)))
}

func TestFilterExceeding_MatchesPredicate(t *testing.T) {
	limits := []models.CustomerLimit{
		limit("C1", "Acme", "100"),
		limit("C2", "Beta", "50"),
		limit("C3", "Gamma", "0"),
	}
	transactions := []models.Transaction{
		txn("C1", "100", 1),
		txn("C1", "101", 1),
		txn("C2", "49", 2),
		txn("C2", "51", 2),
		txn("C1", "0", 3),
	}

	joined := LeftJoin(limits, transactions)
	flagged := FilterExceeding(joined)

	expected := 0
	for _, j := range joined {
		if j.Transaction != nil && j.Transaction.Amount.Valid && j.Transaction.Amount.Decimal.GreaterThan(j.Limit.Limit) {
			expected++
		}
	}
	assert.Equal(t, expected, len(flagged))
	for _, f := range flagged {
		assert.True(t, f.Amount.GreaterThan(f.WireTransferLimit))
	}
}

func TestDetect_PlaceholderExamples(t *testing.T) {
	limits := []models.CustomerLimit{
		limit("C1", "Acme", "500"),
		limit("C2", "Beta", "10000"),
		limit("C3", "Gamma", "250"),
	}
	b1 := []models.Transaction{txn("C1", "6000000", 1), txn("C2", "10000", 1)}
	b2 := []models.Transaction{txn("C1", "5000000", 2)}
	b3 := []models.Transaction{txn("C2", "10000.01", 3)}

	d := Detect(limits, b1, b2, b3)

	assert.Equal(t, 1, d.CorrectedLimits)
	// C1 x2, C2 x2, C3 unmatched.
	assert.Len(t, d.Joined, 5)
	require.Len(t, d.Flagged, 2)

	assert.Equal(t, "C1", d.Flagged[0].CustomerID)
	assert.True(t, d.Flagged[0].Amount.Equal(decimal.NewFromInt(6000000)))
	assert.True(t, d.Flagged[0].WireTransferLimit.Equal(decimal.NewFromInt(5000500)))

	assert.Equal(t, "C2", d.Flagged[1].CustomerID)
	assert.True(t, d.Flagged[1].Amount.Equal(decimal.RequireFromString("10000.01")))
	assert.Equal(t, 3, d.Flagged[1].Batch)

	for _, f := range d.Flagged {
		assert.NotEqual(t, "C3", f.CustomerID)
	}
	var c3 []models.JoinedRecord
	for _, j := range d.Joined {
		if j.Limit.CustomerID == "C3" {
			c3 = append(c3, j)
		}
	}
	require.Len(t, c3, 1)
	assert.Nil(t, c3[0].Transaction)
}

func TestDetect_ConcatenationEqualsUnionOfBatches(t *testing.T) {
	limits := []models.CustomerLimit{
		limit("C1", "Acme", "500"),
		limit("C2", "Beta", "100"),
		limit("C3", "Gamma", "1000"),
	}
	b1 := []models.Transaction{txn("C1", "6000000", 1), txn("C2", "150", 1), txn("C3", "10", 1)}
	b2 := []models.Transaction{txn("C2", "99", 2), txn("C3", "1001", 2), txn("C4", "1", 2)}
	b3 := []models.Transaction{txn("C2", "101", 3), txn("C1", "5000500", 3)}

	all := Detect(limits, b1, b2, b3).Flagged

	var union []models.FlaggedRecord
	for _, b := range [][]models.Transaction{b1, b2, b3} {
		union = append(union, Detect(limits, b).Flagged...)
	}

	assert.ElementsMatch(t, keys(all), keys(union))
}

func keys(rows []models.FlaggedRecord) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.CustomerID + "|" + r.Amount.String() + "|" + r.WireTransferLimit.String()
	}
	sort.Strings(out)
	return out
}
