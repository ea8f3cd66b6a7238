// =============================================================================
// SEPA Direct Debit Initiation - Whole-Message Validation
// =============================================================================
//
// The checks in this file run when serialization is requested with a
// specific schema version, never at add time. They run in a fixed order and
// surface the first violation as a typed error, so a failing message always
// reports a deterministic, actionable cause:
//
//   1. creditor account field validity (required fields, length bounds)
//   2. at least one transaction
//   3. local instrument uniformity
//   4. schema compatibility (currency, BIC presence, local instrument)
//   5. batch identifier length bound
//
// A validation failure aborts serialization; no partial document is ever
// returned.
//
// =============================================================================

package sepa

import "fmt"

// validate runs the whole-message checks against a schema profile.
func (m *DirectDebit) validate(profile SchemaProfile) error {
	if errs := m.account.Validate(); len(errs) > 0 {
		return &FieldValidationError{Errors: errs}
	}

	if len(m.transactions) == 0 {
		return fmt.Errorf("message must contain at least one transaction")
	}

	if err := m.validateInstrumentUniformity(); err != nil {
		return err
	}
	if err := m.validateSchemaCompatibility(profile); err != nil {
		return err
	}
	return m.validateIdentifierLengths(profile)
}

// validateInstrumentUniformity enforces the message-wide local instrument
// invariant. The instrument is never a grouping dimension, so mixing CORE,
// COR1 and B2B is an error rather than a batch split.
func (m *DirectDebit) validateInstrumentUniformity() error {
	var seen []string
	for _, tx := range m.transactions {
		if !contains(seen, tx.LocalInstrument) {
			seen = append(seen, tx.LocalInstrument)
		}
	}
	if len(seen) > 1 {
		return &MixedInstrumentError{Instruments: seen}
	}
	return nil
}

// validateSchemaCompatibility checks every transaction's currency, BIC
// presence and local instrument against the profile.
func (m *DirectDebit) validateSchemaCompatibility(profile SchemaProfile) error {
	if profile.CreditorBICRequired && m.account.BIC == "" {
		return &SchemaCompatibilityError{
			Version: profile.Version,
			Reason:  "creditor BIC is required",
		}
	}

	for _, tx := range m.transactions {
		if tx.CreditorAccount != nil && profile.CreditorBICRequired && tx.CreditorAccount.BIC == "" {
			return &SchemaCompatibilityError{
				Version: profile.Version,
				Reason:  fmt.Sprintf("creditor BIC is required (transaction %q)", tx.Reference),
			}
		}
		if profile.DebtorBICRequired && tx.BIC == "" {
			return &SchemaCompatibilityError{
				Version: profile.Version,
				Reason:  fmt.Sprintf("debtor BIC is required (transaction %q)", tx.Reference),
			}
		}
		if !profile.CurrencyAllowed(tx.Currency) {
			return &SchemaCompatibilityError{
				Version: profile.Version,
				Reason:  fmt.Sprintf("currency %q is not allowed (transaction %q)", tx.Currency, tx.Reference),
			}
		}
		if !profile.LocalInstrumentAllowed(tx.LocalInstrument) {
			return &SchemaCompatibilityError{
				Version: profile.Version,
				Reason:  fmt.Sprintf("local instrument %q is not allowed (transaction %q)", tx.LocalInstrument, tx.Reference),
			}
		}
	}
	return nil
}

// validateIdentifierLengths bounds the longest rendered batch identifier,
// i.e. the message identifier plus the largest sequence number suffix.
func (m *DirectDebit) validateIdentifierLengths(profile SchemaProfile) error {
	batches := m.Batches()
	if len(batches) == 0 {
		return nil
	}

	longest := batches[len(batches)-1].ID(m.MessageID())
	if len(longest) > profile.MaxIdentifierLength {
		return &LengthConstraintError{
			Value:  longest,
			Actual: len(longest),
			Max:    profile.MaxIdentifierLength,
		}
	}

	if len(m.MessageID()) > profile.MaxIdentifierLength {
		return &LengthConstraintError{
			Value:  m.MessageID(),
			Actual: len(m.MessageID()),
			Max:    profile.MaxIdentifierLength,
		}
	}
	return nil
}
