package model

import "time"

// User is one account record. Credits are decremented by the ledger
// transaction only; the document/page counters only ever grow.
type User struct {
	UserID           string    `db:"user_id" json:"user_id"`
	Email            string    `db:"email" json:"email"`
	CreditsRemaining int       `db:"credits_remaining" json:"credits_remaining"`
	TotalDocuments   int       `db:"total_documents" json:"total_documents"`
	PagesDigitized   int       `db:"pages_digitized" json:"pages_digitized"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// LedgerUpdate is the post-charge view of the account counters, returned by
// the credit transaction.
type LedgerUpdate struct {
	NewCredits        int
	NewTotalDocuments int
	NewPagesDigitized int
}
