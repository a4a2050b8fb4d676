package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day layout used when a transaction date is rendered.
const DateLayout = "2006-01-02"

// Column headers of the SWIFT and KYC files.
const (
	ColumnCustomerID        = "Customer ID"
	ColumnCustomerName      = "Customer Name"
	ColumnTransactionDate   = "Date of Transaction"
	ColumnOutgoingAmount    = "Outgoing Wire Transfer Amount"
	ColumnWireTransferLimit = "Wire Transfer Limit"
)

// Transaction represents one outgoing wire transfer from a SWIFT batch.
type Transaction struct {
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name,omitempty"` // optional column in the SWIFT batches
	Date         time.Time           `json:"date"`
	Amount       decimal.NullDecimal `json:"amount"` // invalid when the cell is blank
	Batch        int                 `json:"batch"`  // 1-based source batch
	Extra        Fields              `json:"extra,omitempty"`
}

// CustomerLimit represents one customer's configured wire transfer ceiling from the KYC batch.
type CustomerLimit struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Limit        decimal.Decimal `json:"wire_transfer_limit"`
	Extra        Fields          `json:"extra,omitempty"`
}

// Field is one passthrough cell of a column the dashboard does not interpret.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Fields holds passthrough cells in source column order.
type Fields []Field

// Get returns the value of the named column, or "" if the row has none.
func (f Fields) Get(name string) string {
	for _, field := range f {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}
