package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRelatedBookEntry_TransferOut(t *testing.T) {
	now := time.Now().UTC()
	bookA := &Book{
		ID:               "book-a",
		Bank:             "FUBON",
		Currency:         "USD",
		Balance:          decimal.NewFromInt(100),
		RemainingTwdFund: 3000,
		BreakEvenPoint:   decimal.NewFromInt(30),
	}

	relatedID := "book-b"
	relatedAmt := decimal.NewFromInt(50)
	primary := &Entry{
		ID:                       "entry-1",
		BookID:                   "book-a",
		TransactionType:          TransferOutToForeign,
		ForeignAmount:            decimal.NewFromInt(50),
		RelatedBookID:            &relatedID,
		RelatedBookForeignAmount: &relatedAmt,
		Creator:                  "user-1",
		CreatedAt:                now,
	}

	mirror, err := RelatedBookEntry(bookA, primary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mirror.BookID != "book-b" {
		t.Errorf("expected mirror book book-b, got %s", mirror.BookID)
	}
	if mirror.TransactionType != TransferInFromForeign {
		t.Errorf("expected opposite direction, got %s", mirror.TransactionType)
	}
	if mirror.RelatedBookID == nil || *mirror.RelatedBookID != "book-a" {
		t.Error("mirror must link back to the primary book")
	}
	if !mirror.ForeignAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected mirror foreign amount 50, got %s", mirror.ForeignAmount)
	}
	if mirror.RelatedBookForeignAmount == nil || !mirror.RelatedBookForeignAmount.Equal(primary.ForeignAmount) {
		t.Error("mirror related foreign amount must equal the primary's foreign amount")
	}
	if !mirror.CreatedAt.Equal(now) {
		t.Error("mirror must share the primary's creation time")
	}

	// No TWD amount on the primary: derived from the out book's break-even
	// point, 50 * 30 = 1500.
	if mirror.TwdAmount == nil || *mirror.TwdAmount != 1500 {
		t.Errorf("expected derived twd amount 1500, got %v", mirror.TwdAmount)
	}
}

func TestRelatedBookEntry_CopiesPrimaryTwdAmount(t *testing.T) {
	bookB := &Book{
		ID:             "book-b",
		Balance:        decimal.NewFromInt(500),
		BreakEvenPoint: decimal.NewFromFloat(27.5),
	}

	relatedID := "book-b"
	relatedAmt := decimal.NewFromInt(200)
	twd := int64(6200)
	primary := &Entry{
		BookID:                   "book-a",
		TransactionType:          TransferInFromForeign,
		ForeignAmount:            decimal.NewFromInt(180),
		TwdAmount:                &twd,
		RelatedBookID:            &relatedID,
		RelatedBookForeignAmount: &relatedAmt,
	}

	mirror, err := RelatedBookEntry(bookB, primary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mirror.TransactionType != TransferOutToForeign {
		t.Errorf("expected transfer-out mirror, got %s", mirror.TransactionType)
	}
	if mirror.TwdAmount == nil || *mirror.TwdAmount != 6200 {
		t.Errorf("expected copied twd amount 6200, got %v", mirror.TwdAmount)
	}
}

func TestRelatedBookEntry_InsufficientBalance(t *testing.T) {
	bookB := &Book{
		ID:      "book-b",
		Balance: decimal.NewFromInt(100),
	}

	relatedID := "book-b"
	relatedAmt := decimal.NewFromInt(200)
	primary := &Entry{
		BookID:                   "book-a",
		TransactionType:          TransferInFromForeign,
		ForeignAmount:            decimal.NewFromInt(190),
		RelatedBookID:            &relatedID,
		RelatedBookForeignAmount: &relatedAmt,
	}

	_, err := RelatedBookEntry(bookB, primary)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	var insufficientErr *InsufficientBalanceError
	if !errors.As(err, &insufficientErr) {
		t.Fatal("expected InsufficientBalanceError")
	}
	if !insufficientErr.Available.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected available 100, got %s", insufficientErr.Available)
	}
	if !insufficientErr.Requested.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected requested 200, got %s", insufficientErr.Requested)
	}
}

func TestRelatedBookEntry_NoCheckForPrimaryTransferOut(t *testing.T) {
	// The sufficiency check applies only when the primary entry is a
	// transfer-in, i.e. when money leaves the related book.
	bookA := &Book{
		ID:      "book-a",
		Balance: decimal.NewFromInt(100),
	}

	relatedID := "book-b"
	relatedAmt := decimal.NewFromInt(500)
	primary := &Entry{
		BookID:                   "book-a",
		TransactionType:          TransferOutToForeign,
		ForeignAmount:            decimal.NewFromInt(60),
		RelatedBookID:            &relatedID,
		RelatedBookForeignAmount: &relatedAmt,
	}

	if _, err := RelatedBookEntry(bookA, primary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
