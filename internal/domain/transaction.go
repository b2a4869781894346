package domain

// TransactionType identifies how an entry moves money in or out of a book.
type TransactionType string

const (
	TransferInFromTWD      TransactionType = "TRANSFER_IN_FROM_TWD"
	TransferOutToTWD       TransactionType = "TRANSFER_OUT_TO_TWD"
	TransferInFromForeign  TransactionType = "TRANSFER_IN_FROM_FOREIGN"
	TransferOutToForeign   TransactionType = "TRANSFER_OUT_TO_FOREIGN"
	TransferInFromInterest TransactionType = "TRANSFER_IN_FROM_INTEREST"
	TransferInFromOther    TransactionType = "TRANSFER_IN_FROM_OTHER"
	TransferOutToOther     TransactionType = "TRANSFER_OUT_TO_OTHER"
)

var validTransactionTypes = map[TransactionType]bool{
	TransferInFromTWD:      true,
	TransferOutToTWD:       true,
	TransferInFromForeign:  true,
	TransferOutToForeign:   true,
	TransferInFromInterest: true,
	TransferInFromOther:    true,
	TransferOutToOther:     true,
}

// IsValid checks if the transaction type is a known type.
func (t TransactionType) IsValid() bool {
	return validTransactionTypes[t]
}

// IsTransferIn reports whether the type credits the owning book.
func (t TransactionType) IsTransferIn() bool {
	switch t {
	case TransferInFromTWD, TransferInFromForeign, TransferInFromInterest, TransferInFromOther:
		return true
	default:
		return false
	}
}

// IsTransferOut reports whether the type debits the owning book.
func (t TransactionType) IsTransferOut() bool {
	return t.IsValid() && !t.IsTransferIn()
}
