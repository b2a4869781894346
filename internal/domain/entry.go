package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one immutable record of money movement against a book.
// ForeignAmount is denominated in the owning book's currency. TwdAmount is
// present only for TWD-denominated legs. RelatedBookID links the two halves of
// a cross-book transfer.
type Entry struct {
	CreatedAt                time.Time
	TwdAmount                *int64
	RelatedBookID            *string
	RelatedBookForeignAmount *decimal.Decimal
	ID                       string
	BookID                   string
	Creator                  string
	TransactionType          TransactionType
	ForeignAmount            decimal.Decimal
}

// HasRelatedBook reports whether the entry is one half of a cross-book
// transfer.
func (e *Entry) HasRelatedBook() bool {
	return e.RelatedBookID != nil && *e.RelatedBookID != ""
}

// RelatedBookEntry derives the mirrored entry for the related book of a
// cross-book transfer. transferOutBook is the book money leaves: the related
// book when the primary entry is a transfer-in, the primary book otherwise.
//
// The mirror carries the opposite direction, points back at the primary book,
// and moves the related-book foreign amount. Its TWD amount copies the
// primary's when present; otherwise it is derived from the transfer-out
// book's break-even point, so both halves report the same TWD value without
// any rate lookup.
func RelatedBookEntry(transferOutBook *Book, primary *Entry) (*Entry, error) {
	amount := *primary.RelatedBookForeignAmount

	if primary.TransactionType.IsTransferIn() && transferOutBook.Balance.LessThan(amount) {
		return nil, &InsufficientBalanceError{
			Available: transferOutBook.Balance,
			Requested: amount,
		}
	}

	mirrorType := TransferOutToForeign
	if primary.TransactionType.IsTransferOut() {
		mirrorType = TransferInFromForeign
	}

	mirror := &Entry{
		BookID:                   *primary.RelatedBookID,
		TransactionType:          mirrorType,
		ForeignAmount:            amount,
		RelatedBookID:            &primary.BookID,
		RelatedBookForeignAmount: &primary.ForeignAmount,
		Creator:                  primary.Creator,
		CreatedAt:                primary.CreatedAt,
	}

	if primary.TwdAmount != nil {
		twd := *primary.TwdAmount
		mirror.TwdAmount = &twd
	} else {
		twd := transferOutBook.BreakEvenPoint.Mul(amount).Round(0).IntPart()
		mirror.TwdAmount = &twd
	}

	return mirror, nil
}
