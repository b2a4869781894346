package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	MaxBookNameLength = 100
	MinBookNameLength = 1
)

// Bank codes of institutions the ledger knows how to quote rates for.
var validBanks = map[string]bool{
	"FUBON":   true,
	"RICHART": true,
	"CATHAY":  true,
	"ESUN":    true,
	"MEGA":    true,
	"TAISHIN": true,
	"SINOPAC": true,
}

// Currencies a foreign-currency book may be denominated in. TWD itself is
// excluded: TWD cash is the counterparty, never a book.
var validCurrencies = map[string]bool{
	"USD": true, "CNY": true, "JPY": true, "EUR": true,
	"HKD": true, "AUD": true, "ZAR": true, "CAD": true,
	"GBP": true, "SGD": true, "CHF": true, "NZD": true,
	"SEK": true,
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Banks returns the known bank codes in sorted order.
func Banks() []string {
	banks := make([]string, 0, len(validBanks))
	for b := range validBanks {
		banks = append(banks, b)
	}
	sort.Strings(banks)

	return banks
}

// ValidateEntry checks that the entry's field combination is legal for its
// transaction type. Pure; performs no I/O.
//
// Rules per type:
//   - TWD legs require a positive TWD amount and no related-book fields.
//   - Foreign legs are either a related-book pair (id and positive foreign
//     amount both present) or a TWD-equivalent leg (neither present, positive
//     TWD amount).
//   - Interest and other types carry none of the three fields; the movement
//     is implied by the entry's own foreign amount.
func ValidateEntry(e *Entry) error {
	if !e.TransactionType.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownTransactionType, e.TransactionType)
	}

	hasTwd := e.TwdAmount != nil
	positiveTwd := hasTwd && *e.TwdAmount > 0
	hasRelatedID := e.HasRelatedBook()
	hasRelatedAmount := e.RelatedBookForeignAmount != nil
	positiveRelatedAmount := hasRelatedAmount && e.RelatedBookForeignAmount.IsPositive()

	var valid bool

	switch e.TransactionType {
	case TransferInFromTWD, TransferOutToTWD:
		valid = positiveTwd && !hasRelatedID && !hasRelatedAmount

	case TransferInFromForeign, TransferOutToForeign:
		relatedPair := hasRelatedID && positiveRelatedAmount
		twdEquivalent := !hasRelatedID && !hasRelatedAmount && positiveTwd
		valid = relatedPair || twdEquivalent

	case TransferInFromInterest, TransferInFromOther, TransferOutToOther:
		valid = !hasTwd && !hasRelatedID && !hasRelatedAmount
	}

	if !valid {
		return fmt.Errorf("%w of %s type", ErrInvalidEntryFields, e.TransactionType)
	}

	return nil
}

// ValidateRelatedBookSide checks only the related-book half of a transfer-out
// entry: no TWD amount on that side, and the related book id and foreign
// amount either both present (with a positive amount) or both absent.
func ValidateRelatedBookSide(e *Entry) error {
	if e.TwdAmount != nil {
		return fmt.Errorf("%w of %s type", ErrInvalidEntryFields, e.TransactionType)
	}

	hasRelatedID := e.HasRelatedBook()
	hasRelatedAmount := e.RelatedBookForeignAmount != nil

	if hasRelatedID != hasRelatedAmount {
		return fmt.Errorf("%w of %s type", ErrInvalidEntryFields, e.TransactionType)
	}

	if hasRelatedID && !e.RelatedBookForeignAmount.IsPositive() {
		return fmt.Errorf("%w of %s type", ErrInvalidEntryFields, e.TransactionType)
	}

	return nil
}

// ValidateBookName validates a book name.
func ValidateBookName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinBookNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidBookName)
	}

	if len(name) > MaxBookNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidBookName, MaxBookNameLength)
	}

	return nil
}

// ValidateBank validates a bank code.
func ValidateBank(bank string) error {
	if !validBanks[strings.ToUpper(strings.TrimSpace(bank))] {
		return fmt.Errorf("%w: %s", ErrInvalidBank, bank)
	}

	return nil
}

// ValidateCurrency validates a book currency code.
func ValidateCurrency(currency string) error {
	if !validCurrencies[strings.ToUpper(strings.TrimSpace(currency))] {
		return fmt.Errorf("%w: %s", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateEmail validates an email address.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(strings.ToLower(email))) {
		return ErrInvalidEmail
	}

	return nil
}
