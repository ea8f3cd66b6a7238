// =============================================================================
// SEPA Direct Debit Initiation - Batching Engine
// =============================================================================
//
// This file partitions the ordered transaction list of a message into
// batches ("payment informations"). The partition is stable: batch
// membership is fully determined by the key tuple
//
//   (requested collection date, sequence type, batch booking flag,
//    creditor account field set)
//
// and sequence numbers reflect the first-appearance order of distinct keys,
// never a sort of the key values. Grouping the same list twice yields
// identical membership and identical sequence numbers.
//
// The local instrument is deliberately NOT part of the key: it is a
// message-wide property, and mixing instruments is a validation error, not
// a grouping dimension.
//
// =============================================================================

package sepa

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormat is the ISO calendar date layout used in keys and XML output.
const dateFormat = "2006-01-02"

// batchKey is the grouping key tuple. All fields are comparable values:
// dates by calendar value, accounts by their full field set, so two
// distinct account values with identical fields land in the same batch.
type batchKey struct {
	requestedDate string
	sequenceType  string
	batchBooking  bool
	account       CreditorAccount
}

// =============================================================================
// BATCH
// =============================================================================

// Batch is one payment information block: the transactions sharing a key
// tuple, in insertion order.
type Batch struct {
	// SequenceNumber is the 1-based position of the batch, assigned in
	// order of first appearance of its key tuple.
	SequenceNumber int

	// Account is the creditor account the batch collects into.
	Account CreditorAccount

	// RequestedDate, SequenceType and BatchBooking are the shared key
	// attributes of the member transactions.
	RequestedDate time.Time
	SequenceType  string
	BatchBooking  bool

	// LocalInstrument is the scheme variant of the member transactions.
	// It is uniform across the whole message.
	LocalInstrument string

	// Transactions are the members, in the order they were added to the
	// message.
	Transactions []Transaction
}

// ID renders the batch identifier "<message_id>/<sequence_number>".
func (b *Batch) ID(messageID string) string {
	return fmt.Sprintf("%s/%d", messageID, b.SequenceNumber)
}

// ControlSum is the exact decimal sum of the member amounts.
func (b *Batch) ControlSum() decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range b.Transactions {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// =============================================================================
// GROUPING
// =============================================================================

// groupTransactions partitions transactions into batches. account is the
// message-level creditor account; a per-transaction override replaces it in
// the key. The result is ordered by first appearance, O(n) in the number of
// transactions.
func groupTransactions(account CreditorAccount, transactions []Transaction) []*Batch {
	index := make(map[batchKey]*Batch, len(transactions))
	var ordered []*Batch

	for _, tx := range transactions {
		acct := account
		if tx.CreditorAccount != nil {
			acct = *tx.CreditorAccount
		}

		key := batchKey{
			requestedDate: tx.RequestedDate.Format(dateFormat),
			sequenceType:  tx.SequenceType,
			batchBooking:  tx.BatchBooking,
			account:       acct,
		}

		batch, ok := index[key]
		if !ok {
			batch = &Batch{
				SequenceNumber:  len(ordered) + 1,
				Account:         acct,
				RequestedDate:   tx.RequestedDate,
				SequenceType:    tx.SequenceType,
				BatchBooking:    tx.BatchBooking,
				LocalInstrument: tx.LocalInstrument,
			}
			index[key] = batch
			ordered = append(ordered, batch)
		}
		batch.Transactions = append(batch.Transactions, tx)
	}

	return ordered
}
