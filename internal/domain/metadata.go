package domain

// SingleBookUpdater recomputes one book's metadata after an entry touching it
// has been appended. It mutates the book in memory only; callers persist.
//
// Not replay-safe: applying the same entry twice double-counts the balance
// delta. Invoke exactly once per appended entry.
type SingleBookUpdater struct {
	book *Book
}

// NewSingleBookUpdater creates an updater for one book.
func NewSingleBookUpdater(book *Book) *SingleBookUpdater {
	return &SingleBookUpdater{book: book}
}

// Update applies the entry's signed foreign amount to the balance, tracks the
// TWD fund moved in or out, and recomputes the break-even point. The stored
// profit fields are cleared; they are refreshed against a current buying rate
// by the caller when one is at hand.
func (u *SingleBookUpdater) Update(entry *Entry) {
	if entry.TransactionType.IsTransferIn() {
		u.book.Balance = u.book.Balance.Add(entry.ForeignAmount)
		if entry.TwdAmount != nil {
			u.book.RemainingTwdFund += *entry.TwdAmount
		}
	} else {
		u.book.Balance = u.book.Balance.Sub(entry.ForeignAmount)
		if entry.TwdAmount != nil {
			u.book.RemainingTwdFund -= *entry.TwdAmount
		}
	}

	u.book.recomputeBreakEvenPoint()
	u.book.ClearProfit()
}

// DoubleBookUpdater recomputes metadata for both halves of a cross-book
// transfer. Same replay precondition as SingleBookUpdater.
type DoubleBookUpdater struct {
	transferOutBook *Book
	transferInBook  *Book
}

// NewDoubleBookUpdater creates an updater for a transfer-out/transfer-in book
// pair.
func NewDoubleBookUpdater(transferOutBook, transferInBook *Book) *DoubleBookUpdater {
	return &DoubleBookUpdater{
		transferOutBook: transferOutBook,
		transferInBook:  transferInBook,
	}
}

// Update applies each mirrored entry to its own book.
func (u *DoubleBookUpdater) Update(outEntry, inEntry *Entry) {
	NewSingleBookUpdater(u.transferOutBook).Update(outEntry)
	NewSingleBookUpdater(u.transferInBook).Update(inEntry)
}
