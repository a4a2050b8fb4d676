package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JoinedRecord is one row of the limit-preserving join of limits to transactions.
// Transaction is nil when the customer has no transactions.
type JoinedRecord struct {
	Limit       CustomerLimit
	Transaction *Transaction
}

// HasTransaction reports whether the row matched a transaction.
func (j JoinedRecord) HasTransaction() bool {
	return j.Transaction != nil
}

// HasAmount reports whether the row matched a transaction that carries an amount.
func (j JoinedRecord) HasAmount() bool {
	return j.Transaction != nil && j.Transaction.Amount.Valid
}

// Exceeds reports whether the matched transaction amount is present and strictly above the limit.
func (j JoinedRecord) Exceeds() bool {
	return j.HasAmount() && j.Transaction.Amount.Decimal.GreaterThan(j.Limit.Limit)
}

// FlaggedRecord is a joined row whose transfer amount exceeded the customer's limit.
type FlaggedRecord struct {
	CustomerID              string          `json:"customer_id"`
	CustomerName            string          `json:"customer_name"`
	TransactionCustomerName string          `json:"transaction_customer_name,omitempty"`
	WireTransferLimit       decimal.Decimal `json:"wire_transfer_limit"`
	Amount                  decimal.Decimal `json:"outgoing_wire_transfer_amount"`
	Date                    time.Time       `json:"date_of_transaction"`
	Batch                   int             `json:"batch"`
	LimitExtra              Fields          `json:"limit_extra,omitempty"`
	TransactionExtra        Fields          `json:"transaction_extra,omitempty"`
}

// DisplayName returns the name the dashboard filters on.
// The SWIFT-side name wins when present, otherwise the KYC name is used.
func (f FlaggedRecord) DisplayName() string {
	if f.TransactionCustomerName != "" {
		return f.TransactionCustomerName
	}
	return f.CustomerName
}

// Excess returns how far the transfer went over the limit.
func (f FlaggedRecord) Excess() decimal.Decimal {
	return f.Amount.Sub(f.WireTransferLimit)
}

// Flag flattens a joined row into a FlaggedRecord.
// ok is false when the row has no transaction or the transaction has no amount.
func (j JoinedRecord) Flag() (f FlaggedRecord, ok bool) {
	if !j.HasAmount() {
		return FlaggedRecord{}, false
	}
	t := j.Transaction
	return FlaggedRecord{
		CustomerID:              j.Limit.CustomerID,
		CustomerName:            j.Limit.CustomerName,
		TransactionCustomerName: t.CustomerName,
		WireTransferLimit:       j.Limit.Limit,
		Amount:                  t.Amount.Decimal,
		Date:                    t.Date,
		Batch:                   t.Batch,
		LimitExtra:              j.Limit.Extra,
		TransactionExtra:        t.Extra,
	}, true
}
