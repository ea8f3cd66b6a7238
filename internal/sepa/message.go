// =============================================================================
// SEPA Direct Debit Initiation - Message
// =============================================================================
//
// DirectDebit is the root aggregate: the creditor account, the ordered
// transaction list and the message identifier. Transactions are validated
// and appended one by one; batches are derived from the stored order on
// demand; rendering a specific schema version runs the whole-message
// validation and produces the XML document.
//
// LIFECYCLE:
//   m := sepa.NewDirectDebit(account)
//   m.AddTransaction(opts)        // per-entry validation, fail-fast
//   m.BatchID(reference)          // batch ids are visible before rendering
//   m.ToXMLVersion(version)       // whole-message validation + serialization
//
// A DirectDebit is not safe for concurrent mutation; distinct instances are
// fully independent.
//
// =============================================================================

package sepa

import (
	"time"

	"github.com/shopspring/decimal"
)

// DirectDebit is a pain.008 customer direct debit initiation message under
// construction.
type DirectDebit struct {
	account      CreditorAccount
	messageID    string
	creationDate time.Time
	transactions []Transaction
	ids          IDSource
}

// NewDirectDebit creates an empty message collecting into account. The
// account is validated together with the rest of the message when the XML
// is requested, so callers may build up an incomplete message first.
func NewDirectDebit(account CreditorAccount) *DirectDebit {
	return &DirectDebit{
		account:      account,
		creationDate: time.Now(),
		ids:          RandomIDSource{},
	}
}

// Account returns the message-level creditor account.
func (m *DirectDebit) Account() CreditorAccount {
	return m.account
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

// MessageID returns the message identifier, generating it on first use.
// Once generated the identifier never changes, so batch identifiers stay
// stable across calls.
func (m *DirectDebit) MessageID() string {
	if m.messageID == "" {
		m.messageID = m.ids.MessageID()
	}
	return m.messageID
}

// SetMessageID fixes the message identifier. The value is used verbatim;
// its length still participates in the batch identifier length check at
// serialization time. Callers needing reproducible output must set it.
func (m *DirectDebit) SetMessageID(id string) {
	m.messageID = id
}

// SetIDSource replaces the identifier generator. It has no effect once an
// identifier was generated or set.
func (m *DirectDebit) SetIDSource(src IDSource) {
	m.ids = src
}

// CreationDate returns the timestamp rendered as the group header CreDtTm.
func (m *DirectDebit) CreationDate() time.Time {
	return m.creationDate
}

// SetCreationDate overrides the creation timestamp for reproducible output.
func (m *DirectDebit) SetCreationDate(t time.Time) {
	m.creationDate = t
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// AddTransaction validates opts and appends the resulting transaction. An
// invalid record is rejected with a *FieldValidationError and nothing is
// stored.
func (m *DirectDebit) AddTransaction(opts TransactionOptions) error {
	tx, err := NewTransaction(opts)
	if err != nil {
		return err
	}
	m.transactions = append(m.transactions, tx)
	return nil
}

// Transactions returns a copy of the stored transactions in insertion
// order.
func (m *DirectDebit) Transactions() []Transaction {
	out := make([]Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// ControlSum is the exact decimal sum over all stored transaction amounts.
func (m *DirectDebit) ControlSum() decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range m.transactions {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// =============================================================================
// BATCHES
// =============================================================================

// Batches derives the payment information blocks from the stored
// transactions. The partition is stable; see grouper.go.
func (m *DirectDebit) Batches() []*Batch {
	return groupTransactions(m.account, m.transactions)
}

// BatchID returns the identifier of the batch containing the transaction
// with the given end-to-end reference. It returns a
// *ReferenceNotFoundError when no transaction carries the reference.
func (m *DirectDebit) BatchID(reference string) (string, error) {
	for _, batch := range m.Batches() {
		for _, tx := range batch.Transactions {
			if tx.Reference == reference {
				return batch.ID(m.MessageID()), nil
			}
		}
	}
	return "", &ReferenceNotFoundError{Reference: reference}
}

// BatchIDs returns the identifiers of all batches in sequence order.
func (m *DirectDebit) BatchIDs() []string {
	batches := m.Batches()
	ids := make([]string, len(batches))
	for i, batch := range batches {
		ids[i] = batch.ID(m.MessageID())
	}
	return ids
}
