// =============================================================================
// SEPA Direct Debit Initiation - Identifier Generation
// =============================================================================
//
// Message identifiers have the form
//
//   SEPA-KING/xxxxxxxxxxxxxxxxxxxxxx
//
// with 22 characters drawn from the alphabet [0-9a-z_]. They are unique
// with high probability but not cryptographically random. Batch identifiers
// append "/<sequence_number>" and must stay within the 35 character bound
// of the schema (checked at serialization time).
//
// The IDSource interface makes generation injectable: the default draws
// entropy from UUIDs, tests use FixedIDSource for deterministic output.
//
// =============================================================================

package sepa

import "github.com/google/uuid"

// MessageIDPrefix is the fixed prefix of generated message identifiers.
const MessageIDPrefix = "SEPA-KING"

const (
	messageIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz_"
	messageIDLength   = 22
)

// IDSource produces message identifiers.
type IDSource interface {
	MessageID() string
}

// =============================================================================
// RANDOM SOURCE
// =============================================================================

// RandomIDSource generates "SEPA-KING/[0-9a-z_]{22}" identifiers. Each call
// draws from an independent entropy source, so distinct messages may be
// built concurrently without coordination.
type RandomIDSource struct{}

// MessageID implements IDSource.
func (RandomIDSource) MessageID() string {
	// Two UUIDs provide 22 independent entropy bytes with headroom.
	u1, u2 := uuid.New(), uuid.New()
	entropy := append(u1[:], u2[:]...)

	buf := make([]byte, messageIDLength)
	for i := range buf {
		buf[i] = messageIDAlphabet[int(entropy[i])%len(messageIDAlphabet)]
	}
	return MessageIDPrefix + "/" + string(buf)
}

// =============================================================================
// FIXED SOURCE
// =============================================================================

// FixedIDSource always returns itself as the message identifier. It exists
// for deterministic tests and reproducible output.
type FixedIDSource string

// MessageID implements IDSource.
func (f FixedIDSource) MessageID() string {
	return string(f)
}
