package domain

import "time"

// EntryType represents the type of a credit ledger transaction
type EntryType string

const (
	EntryPurchase EntryType = "purchase"
	EntryConsume  EntryType = "consume"
	EntryRefund   EntryType = "refund"
)

// LedgerEntry is an immutable credit transaction of a member.
// Entries are append-only: corrections are made by appending a refund,
// never by editing history. Balance is always the sum of signed amounts.
type LedgerEntry struct {
	ID       int64
	MemberID int64
	Type     EntryType

	// Amount is signed: positive for purchase and refund, negative for consume
	Amount int

	// UnitPriceMinor is the per-credit price in minor currency units (purchases only)
	UnitPriceMinor *int64

	// Reference is the booking ref of the session this entry belongs to
	// (consume and refund only)
	Reference *string

	// ChargeID is the payment provider charge id (purchases only)
	ChargeID *string

	CreatedAt time.Time
}

// CreditBand is the UI-facing projection of a balance. It is recomputed on
// every read and never stored.
type CreditBand string

const (
	BandOK       CreditBand = "ok"
	BandWarning  CreditBand = "warning"
	BandCritical CreditBand = "critical"
)

// BandForBalance maps a balance to its credit band:
// ok above WarningBandMax, warning within [1, WarningBandMax], critical at or below zero
func BandForBalance(balance int) CreditBand {
	switch {
	case balance > WarningBandMax:
		return BandOK
	case balance >= 1:
		return BandWarning
	default:
		return BandCritical
	}
}
