// =============================================================================
// SEPA Direct Debit Initiation - Error Types
// =============================================================================
//
// This file defines the error values surfaced by the sepa package.
//
// ERROR MODEL:
//   There are two moments where building a message can fail:
//   1. Add time: a transaction or account with invalid fields is rejected
//      immediately with a FieldValidationError and is never stored.
//   2. Serialization time: cross-transaction and schema-profile checks run
//      when the XML is requested. They surface as MixedInstrumentError,
//      SchemaCompatibilityError or LengthConstraintError and no document is
//      produced.
//
//   All types are plain structs implementing error, so callers can use
//   errors.As to branch on the failure kind.
//
// =============================================================================

package sepa

import (
	"fmt"
	"strings"
)

// =============================================================================
// FIELD-LEVEL ERRORS
// =============================================================================

// FieldError describes a single invalid field on an account or transaction.
type FieldError struct {
	// Field is the option name of the offending field, e.g. "iban".
	Field string

	// Message describes the violated rule.
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// FieldValidationError aggregates the field errors of one rejected entry.
type FieldValidationError struct {
	Errors []FieldError
}

// Error implements the error interface. All collected field errors are
// reported, separated by semicolons.
func (e *FieldValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return "invalid fields: " + strings.Join(msgs, "; ")
}

// =============================================================================
// MESSAGE-LEVEL ERRORS
// =============================================================================

// MixedInstrumentError is returned when the transactions of one message do
// not share a single local instrument.
type MixedInstrumentError struct {
	// Instruments are the distinct local instruments found, in first-seen
	// order.
	Instruments []string
}

// Error implements the error interface.
func (e *MixedInstrumentError) Error() string {
	return fmt.Sprintf("CORE, COR1 AND B2B must not be mixed in one message (found: %s)",
		strings.Join(e.Instruments, ", "))
}

// SchemaCompatibilityError is returned when a field or value of the message
// is not representable under the selected schema profile.
type SchemaCompatibilityError struct {
	// Version is the schema version the message was checked against.
	Version SchemaVersion

	// Reason names the offending constraint.
	Reason string
}

// Error implements the error interface.
func (e *SchemaCompatibilityError) Error() string {
	return fmt.Sprintf("incompatible with schema %s: %s", e.Version, e.Reason)
}

// LengthConstraintError is returned when a rendered identifier exceeds the
// maximum length the schema profile allows.
type LengthConstraintError struct {
	// Value is the identifier that is too long.
	Value string

	// Actual is the rendered length of the identifier.
	Actual int

	// Max is the maximum length the profile permits.
	Max int
}

// Error implements the error interface.
func (e *LengthConstraintError) Error() string {
	return fmt.Sprintf("the value %q has a length of '%d'; this exceeds the allowed maximum length of '%d'",
		e.Value, e.Actual, e.Max)
}

// =============================================================================
// LOOKUP ERRORS
// =============================================================================

// ReferenceNotFoundError is returned by BatchID when no transaction carries
// the requested end-to-end reference.
type ReferenceNotFoundError struct {
	Reference string
}

// Error implements the error interface.
func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("no transaction with reference %q", e.Reference)
}
