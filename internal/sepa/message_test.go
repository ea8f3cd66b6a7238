package sepa_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerard76/sepa-king/internal/sepa"
)

var messageIDRe = regexp.MustCompile(`^SEPA-KING/[0-9a-z_]{22}$`)

func secondDebtorOptions() sepa.TransactionOptions {
	opts := validTransactionOptions()
	opts.Name = "Meier & Schulze oHG"
	opts.BIC = ""
	opts.IBAN = "DE68210501700012345678"
	opts.Amount = decimal.RequireFromString("750.00")
	opts.Reference = "XYZ/2013-08-ABO/6789"
	return opts
}

func newMessage(t *testing.T) *sepa.DirectDebit {
	t.Helper()
	return sepa.NewDirectDebit(validCreditor())
}

func TestDirectDebit_MessageIDFormat(t *testing.T) {
	m := newMessage(t)
	assert.Regexp(t, messageIDRe, m.MessageID())
}

func TestDirectDebit_MessageIDStable(t *testing.T) {
	m := newMessage(t)
	assert.Equal(t, m.MessageID(), m.MessageID())
}

func TestDirectDebit_MessageIDsDiffer(t *testing.T) {
	a := newMessage(t)
	b := newMessage(t)
	assert.NotEqual(t, a.MessageID(), b.MessageID())
}

func TestDirectDebit_SetMessageIDVerbatim(t *testing.T) {
	m := newMessage(t)
	m.SetMessageID("ACME-CORP/20260831/0001")
	assert.Equal(t, "ACME-CORP/20260831/0001", m.MessageID())
}

func TestDirectDebit_FixedIDSource(t *testing.T) {
	m := newMessage(t)
	m.SetIDSource(sepa.FixedIDSource("MSG/1"))
	assert.Equal(t, "MSG/1", m.MessageID())
}

func TestDirectDebit_AddTransactionRejectsInvalid(t *testing.T) {
	m := newMessage(t)

	opts := validTransactionOptions()
	opts.MandateID = ""
	err := m.AddTransaction(opts)

	require.Error(t, err)
	assert.Empty(t, m.Transactions())
}

func TestDirectDebit_ControlSum(t *testing.T) {
	m := newMessage(t)
	require.NoError(t, m.AddTransaction(validTransactionOptions()))
	require.NoError(t, m.AddTransaction(secondDebtorOptions()))

	assert.Equal(t, "789.99", m.ControlSum().StringFixed(2))
}

// =============================================================================
// BATCHING
// =============================================================================

func TestBatches_SingleBatch(t *testing.T) {
	m := newMessage(t)
	require.NoError(t, m.AddTransaction(validTransactionOptions()))
	require.NoError(t, m.AddTransaction(secondDebtorOptions()))

	batches := m.Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, 1, batches[0].SequenceNumber)
	assert.Len(t, batches[0].Transactions, 2)
	assert.Equal(t, "789.99", batches[0].ControlSum().StringFixed(2))
	assert.Equal(t, m.MessageID()+"/1", batches[0].ID(m.MessageID()))
}

func TestBatches_SplitByRequestedDate(t *testing.T) {
	m := newMessage(t)

	first := validTransactionOptions()
	first.RequestedDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	second := secondDebtorOptions()
	second.RequestedDate = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	third := validTransactionOptions()
	third.RequestedDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, m.AddTransaction(first))
	require.NoError(t, m.AddTransaction(second))
	require.NoError(t, m.AddTransaction(third))

	batches := m.Batches()
	require.Len(t, batches, 2)
	assert.Len(t, batches[0].Transactions, 2)
	assert.Len(t, batches[1].Transactions, 1)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), batches[0].RequestedDate)
	assert.Equal(t, time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), batches[1].RequestedDate)
}

func TestBatches_SplitBySequenceType(t *testing.T) {
	m := newMessage(t)

	first := validTransactionOptions()
	first.SequenceType = sepa.SequenceTypeFRST
	second := secondDebtorOptions()
	second.SequenceType = sepa.SequenceTypeRCUR

	require.NoError(t, m.AddTransaction(first))
	require.NoError(t, m.AddTransaction(second))

	batches := m.Batches()
	require.Len(t, batches, 2)
	assert.Equal(t, sepa.SequenceTypeFRST, batches[0].SequenceType)
	assert.Equal(t, sepa.SequenceTypeRCUR, batches[1].SequenceType)
}

func TestBatches_SplitByBatchBooking(t *testing.T) {
	m := newMessage(t)

	first := validTransactionOptions()
	first.BatchBooking = sepa.Bool(true)
	second := secondDebtorOptions()
	second.BatchBooking = sepa.Bool(false)

	require.NoError(t, m.AddTransaction(first))
	require.NoError(t, m.AddTransaction(second))

	batches := m.Batches()
	require.Len(t, batches, 2)
	assert.True(t, batches[0].BatchBooking)
	assert.False(t, batches[1].BatchBooking)
}

func TestBatches_SplitByCreditorOverride(t *testing.T) {
	m := newMessage(t)

	first := validTransactionOptions()
	second := secondDebtorOptions()
	second.CreditorAccount = &sepa.CreditorAccount{
		Name:               "Creditor Inc.",
		BIC:                "RABONL2U",
		IBAN:               "NL08RABO0135742099",
		CreditorIdentifier: "NL53ZZZ091734220000",
	}

	require.NoError(t, m.AddTransaction(first))
	require.NoError(t, m.AddTransaction(second))

	batches := m.Batches()
	require.Len(t, batches, 2)
	assert.Equal(t, "Gläubiger GmbH", batches[0].Account.Name)
	assert.Equal(t, "Creditor Inc.", batches[1].Account.Name)
}

func TestBatches_LocalInstrumentIsNotAGroupingKey(t *testing.T) {
	m := newMessage(t)

	first := validTransactionOptions()
	first.LocalInstrument = sepa.LocalInstrumentCORE
	second := secondDebtorOptions()
	second.LocalInstrument = sepa.LocalInstrumentB2B

	require.NoError(t, m.AddTransaction(first))
	require.NoError(t, m.AddTransaction(second))

	// Mixing instruments is rejected at rendering time, not by a split.
	assert.Len(t, m.Batches(), 1)
}

func TestBatches_StableAcrossCalls(t *testing.T) {
	m := newMessage(t)

	dates := []time.Time{
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		opts := validTransactionOptions()
		opts.RequestedDate = d
		require.NoError(t, m.AddTransaction(opts))
	}

	first := m.BatchIDs()
	second := m.BatchIDs()
	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		m.MessageID() + "/1",
		m.MessageID() + "/2",
		m.MessageID() + "/3",
	}, first)
}

// =============================================================================
// BATCH LOOKUP
// =============================================================================

func TestBatchID_ByReference(t *testing.T) {
	m := newMessage(t)

	first := validTransactionOptions()
	first.RequestedDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	second := secondDebtorOptions()
	second.RequestedDate = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	require.NoError(t, m.AddTransaction(first))
	require.NoError(t, m.AddTransaction(second))

	id, err := m.BatchID("XYZ/2013-08-ABO/6789")
	require.NoError(t, err)
	assert.Equal(t, m.MessageID()+"/2", id)
}

func TestBatchID_UnknownReference(t *testing.T) {
	m := newMessage(t)
	require.NoError(t, m.AddTransaction(validTransactionOptions()))

	_, err := m.BatchID("no-such-reference")

	var nferr *sepa.ReferenceNotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "no-such-reference", nferr.Reference)
}
