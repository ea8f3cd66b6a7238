// =============================================================================
// SEPA Direct Debit Initiation - Account Value Objects
// =============================================================================
//
// This file defines the self-validating account types of the data model:
//
//   CreditorAccount - the party collecting the money. It carries the name,
//                     IBAN, optional BIC and the SEPA creditor identifier.
//                     It is used both as the message-level account and as a
//                     per-transaction override for split collections.
//
//   DebtorAddress   - the optional postal address of a debtor, either as
//                     free-text address lines or as structured fields. The
//                     two representations are mutually exclusive.
//
// =============================================================================

package sepa

import (
	"unicode/utf8"

	"github.com/gerard76/sepa-king/internal/validation"
)

// maxNameLength is the SEPA bound for party names (Max70Text).
const maxNameLength = 70

// =============================================================================
// CREDITOR ACCOUNT
// =============================================================================

// CreditorAccount identifies the collecting party of a direct debit.
// Two CreditorAccount values with identical fields are the same account for
// batching purposes.
type CreditorAccount struct {
	// Name is the creditor name, 1 to 70 characters.
	Name string

	// IBAN is the creditor account number.
	IBAN string

	// BIC is the creditor agent. Optional for IBAN-only schema versions.
	BIC string

	// CreditorIdentifier is the SEPA creditor identifier issued to the
	// creditor, e.g. "DE98ZZZ09999999999".
	CreditorIdentifier string
}

// Validate returns the list of field errors of the account. An empty list
// means the account is valid.
func (a CreditorAccount) Validate() []FieldError {
	var errs []FieldError

	errs = appendNameErrors(errs, "name", a.Name)

	if err := validation.ValidateIBAN(a.IBAN); err != nil {
		errs = append(errs, FieldError{Field: "iban", Message: err.Error()})
	}
	if a.BIC != "" {
		if err := validation.ValidateBIC(a.BIC); err != nil {
			errs = append(errs, FieldError{Field: "bic", Message: err.Error()})
		}
	}
	if err := validation.ValidateCreditorIdentifier(a.CreditorIdentifier); err != nil {
		errs = append(errs, FieldError{Field: "creditor_identifier", Message: err.Error()})
	}

	return errs
}

// validateAsOriginalCreditor checks the subset of fields an amendment's
// original creditor needs: a name and a creditor identifier. The IBAN and
// BIC are not part of the OrgnlCdtrSchmeId block and may be absent.
func (a CreditorAccount) validateAsOriginalCreditor() []FieldError {
	var errs []FieldError

	errs = appendNameErrors(errs, "original_creditor_account.name", a.Name)

	if err := validation.ValidateCreditorIdentifier(a.CreditorIdentifier); err != nil {
		errs = append(errs, FieldError{Field: "original_creditor_account.creditor_identifier", Message: err.Error()})
	}

	return errs
}

// appendNameErrors applies the 1..70 character bound shared by all party
// names.
func appendNameErrors(errs []FieldError, field, name string) []FieldError {
	switch l := utf8.RuneCountInString(name); {
	case l == 0:
		errs = append(errs, FieldError{Field: field, Message: "is too short (minimum is 1 character)"})
	case l > maxNameLength:
		errs = append(errs, FieldError{Field: field, Message: "is too long (maximum is 70 characters)"})
	}
	return errs
}

// =============================================================================
// DEBTOR ADDRESS
// =============================================================================

// DebtorAddress is the postal address of a debtor. Either the unstructured
// form (CountryCode plus up to two address lines) or the structured form
// (CountryCode, StreetName, BuildingNumber, PostCode, TownName) may be
// used, never both.
type DebtorAddress struct {
	// CountryCode is the two letter ISO 3166 country code. Required.
	CountryCode string

	// AddressLine1 and AddressLine2 are the unstructured representation.
	AddressLine1 string
	AddressLine2 string

	// StreetName, BuildingNumber, PostCode and TownName are the
	// structured representation.
	StreetName     string
	BuildingNumber string
	PostCode       string
	TownName       string
}

// unstructured reports whether any free-text address line is set.
func (a DebtorAddress) unstructured() bool {
	return a.AddressLine1 != "" || a.AddressLine2 != ""
}

// structured reports whether any structured address field is set.
func (a DebtorAddress) structured() bool {
	return a.StreetName != "" || a.BuildingNumber != "" || a.PostCode != "" || a.TownName != ""
}

// Validate returns the list of field errors of the address.
func (a DebtorAddress) Validate() []FieldError {
	var errs []FieldError

	if err := validation.ValidateCountryCode(a.CountryCode); err != nil {
		errs = append(errs, FieldError{Field: "debtor_address.country_code", Message: err.Error()})
	}

	switch {
	case a.unstructured() && a.structured():
		errs = append(errs, FieldError{
			Field:   "debtor_address",
			Message: "must use either address lines or structured fields, not both",
		})
	case !a.unstructured() && !a.structured():
		errs = append(errs, FieldError{
			Field:   "debtor_address",
			Message: "must carry at least one address line or structured field",
		})
	}

	return errs
}
