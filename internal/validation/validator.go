// =============================================================================
// SEPA Direct Debit Initiation - Field Validation Primitives
// =============================================================================
//
// This module provides the low-level field validators shared by the account
// and transaction types:
//   - IBAN structure and MOD-97-10 checksum
//   - BIC (ISO 9362) structure
//   - SEPA creditor identifier structure
//   - ISO 3166 country code structure
//   - ISO 4217 currency code structure
//
// VALIDATION STRATEGY:
//   Each validator checks exactly one rule family and returns a descriptive
//   error, or nil when the value is acceptable. Callers decide whether an
//   empty value is allowed; every validator here treats its input as
//   present.
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
)

// =============================================================================
// PATTERNS
// =============================================================================

var (
	// ibanRe covers the structural shape of an IBAN: two letter country
	// code, two check digits, up to 30 alphanumeric BBAN characters.
	ibanRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)

	// bicRe covers ISO 9362: 4 letter bank code, 2 letter country code,
	// 2 alphanumeric location characters and an optional 3 character
	// branch code.
	bicRe = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

	// creditorIdentifierRe covers the EPC creditor identifier: country
	// code, check digits, 3 character business code and a national
	// identifier of up to 28 characters.
	creditorIdentifierRe = regexp.MustCompile(`^[A-Za-z]{2}[0-9]{2}[A-Za-z0-9]{3}[A-Za-z0-9+?/\-:().,']{1,28}$`)

	countryCodeRe  = regexp.MustCompile(`^[A-Z]{2}$`)
	currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)
)

// =============================================================================
// IBAN
// =============================================================================

// ValidateIBAN checks the structural shape and the MOD-97-10 checksum of an
// IBAN. The input must already be normalized: uppercase, no spaces.
func ValidateIBAN(iban string) error {
	if !ibanRe.MatchString(iban) {
		return fmt.Errorf("is not a valid IBAN: %q has an invalid structure", iban)
	}
	if mod97(iban[4:]+iban[:4]) != 1 {
		return fmt.Errorf("is not a valid IBAN: %q fails the checksum", iban)
	}
	return nil
}

// mod97 computes the ISO 7064 MOD-97-10 remainder of the rearranged IBAN,
// with letters substituted by their numeric values (A=10 .. Z=35).
func mod97(s string) int {
	remainder := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			remainder = (remainder*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			v := int(c-'A') + 10
			remainder = (remainder*100 + v) % 97
		}
	}
	return remainder
}

// =============================================================================
// BIC
// =============================================================================

// ValidateBIC checks the structural shape of a BIC (8 or 11 characters).
func ValidateBIC(bic string) error {
	if !bicRe.MatchString(bic) {
		return fmt.Errorf("is not a valid BIC: %q", bic)
	}
	return nil
}

// =============================================================================
// CREDITOR IDENTIFIER
// =============================================================================

// ValidateCreditorIdentifier checks the structural shape of a SEPA creditor
// identifier as defined by the EPC scheme rulebooks.
func ValidateCreditorIdentifier(identifier string) error {
	if len(identifier) > 35 {
		return fmt.Errorf("is not a valid creditor identifier: %q exceeds 35 characters", identifier)
	}
	if !creditorIdentifierRe.MatchString(identifier) {
		return fmt.Errorf("is not a valid creditor identifier: %q", identifier)
	}
	return nil
}

// =============================================================================
// CODES
// =============================================================================

// ValidateCountryCode checks for a two letter uppercase ISO 3166 code.
func ValidateCountryCode(code string) error {
	if !countryCodeRe.MatchString(code) {
		return fmt.Errorf("is not a valid country code: %q", code)
	}
	return nil
}

// ValidateCurrencyCode checks for a three letter uppercase ISO 4217 code.
func ValidateCurrencyCode(code string) error {
	if !currencyCodeRe.MatchString(code) {
		return fmt.Errorf("is not a valid currency code: %q", code)
	}
	return nil
}
