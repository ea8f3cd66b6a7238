// =============================================================================
// SEPA Direct Debit Initiation - Transaction Model
// =============================================================================
//
// This file defines the debit transaction record and its construction from
// an explicit options struct. The options struct is the full set of
// recognized construction inputs; anything a caller cannot express here is
// not a supported option.
//
// DEFAULTS:
//   currency        "EUR"
//   reference       "NOTPROVIDED"
//   local instrument "CORE"
//   sequence type   "OOFF"
//   batch booking   true
//   requested date  1999-01-01 (stable sentinel meaning "not specified";
//                   banks treat it as "collect at the earliest possible
//                   date")
//
// VALIDATION:
//   NewTransaction validates every field and rejects the record with a
//   FieldValidationError before it can be stored. Cross-transaction rules
//   (such as local instrument uniformity) are message-level and checked at
//   serialization time instead.
//
// =============================================================================

package sepa

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gerard76/sepa-king/internal/validation"
)

// =============================================================================
// CONSTANTS AND DEFAULTS
// =============================================================================

// Local instrument codes of the direct debit schemes.
const (
	LocalInstrumentCORE = "CORE"
	LocalInstrumentCOR1 = "COR1"
	LocalInstrumentB2B  = "B2B"
)

// Sequence type codes within a mandate's lifecycle.
const (
	SequenceTypeFRST = "FRST" // first collection
	SequenceTypeOOFF = "OOFF" // one-off collection
	SequenceTypeRCUR = "RCUR" // recurring collection
	SequenceTypeFNAL = "FNAL" // final collection
)

const (
	// DefaultCurrency is used when no currency is given.
	DefaultCurrency = "EUR"

	// DefaultReference is the end-to-end reference used when none is
	// given, as mandated by the EPC implementation guidelines.
	DefaultReference = "NOTPROVIDED"
)

// DefaultRequestedDate is the sentinel collection date used when none is
// given. The fixed date 1999-01-01 tells the bank to collect at the
// earliest possible date and keeps batching deterministic.
var DefaultRequestedDate = time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	localInstruments = []string{LocalInstrumentCORE, LocalInstrumentCOR1, LocalInstrumentB2B}
	sequenceTypes    = []string{SequenceTypeFRST, SequenceTypeOOFF, SequenceTypeRCUR, SequenceTypeFNAL}
)

// Bool returns a pointer to v. It is a convenience for the optional boolean
// options, e.g. TransactionOptions{BatchBooking: sepa.Bool(false)}.
func Bool(v bool) *bool {
	return &v
}

// =============================================================================
// TRANSACTION OPTIONS
// =============================================================================

// TransactionOptions is the full set of recognized inputs for one debit
// collection. Zero values of optional fields select the documented
// defaults.
type TransactionOptions struct {
	// Name is the debtor name, 1 to 70 characters. Required.
	Name string

	// IBAN is the debtor account. Required.
	IBAN string

	// BIC is the debtor agent. Optional; schema versions tolerating its
	// absence render a NOTPROVIDED identifier instead.
	BIC string

	// Amount is the amount to collect. Must be positive with at most two
	// fraction digits. Required.
	Amount decimal.Decimal

	// Currency of the amount. Defaults to "EUR". Non-EUR currencies are
	// only representable under schema versions without an EUR
	// restriction.
	Currency string

	// Reference is the end-to-end reference, up to 35 characters.
	// Defaults to "NOTPROVIDED".
	Reference string

	// RemittanceInformation is the unstructured remittance text, up to
	// 140 characters. Optional.
	RemittanceInformation string

	// MandateID identifies the signed mandate, 1 to 35 characters.
	// Required.
	MandateID string

	// MandateDateOfSignature is the day the mandate was signed. Required;
	// must not lie in the future.
	MandateDateOfSignature time.Time

	// LocalInstrument is the scheme variant: CORE, COR1 or B2B. Defaults
	// to CORE. All transactions of one message must share it.
	LocalInstrument string

	// SequenceType is FRST, OOFF, RCUR or FNAL. Defaults to OOFF.
	SequenceType string

	// BatchBooking requests a single booked entry per batch. Defaults to
	// true; use sepa.Bool(false) to disable.
	BatchBooking *bool

	// RequestedDate is the requested collection date. Defaults to
	// DefaultRequestedDate.
	RequestedDate time.Time

	// Instruction is an optional instruction identification, up to 35
	// characters.
	Instruction string

	// DebtorAddress is the optional postal address of the debtor.
	DebtorAddress *DebtorAddress

	// CreditorAccount overrides the message-level creditor account for
	// this transaction, splitting it into its own batch.
	CreditorAccount *CreditorAccount

	// OriginalDebtorAccount is the IBAN the mandate originally named.
	// Setting it marks the mandate as amended.
	OriginalDebtorAccount string

	// SameMandateNewDebtorAgent marks the mandate as amended with an
	// unchanged mandate but a new debtor agent (rendered as SMNDA).
	SameMandateNewDebtorAgent bool

	// OriginalCreditorAccount carries the name and creditor identifier
	// the mandate originally named. Setting it marks the mandate as
	// amended.
	OriginalCreditorAccount *CreditorAccount
}

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction is one validated debit collection with all defaults applied.
type Transaction struct {
	Name                      string
	IBAN                      string
	BIC                       string
	Amount                    decimal.Decimal
	Currency                  string
	Reference                 string
	RemittanceInformation     string
	MandateID                 string
	MandateDateOfSignature    time.Time
	LocalInstrument           string
	SequenceType              string
	BatchBooking              bool
	RequestedDate             time.Time
	Instruction               string
	DebtorAddress             *DebtorAddress
	CreditorAccount           *CreditorAccount
	OriginalDebtorAccount     string
	SameMandateNewDebtorAgent bool
	OriginalCreditorAccount   *CreditorAccount
}

// NewTransaction applies the documented defaults to opts and validates the
// result. Invalid records are rejected with a *FieldValidationError and
// must not be stored by the caller.
func NewTransaction(opts TransactionOptions) (Transaction, error) {
	tx := Transaction{
		Name:                      opts.Name,
		IBAN:                      opts.IBAN,
		BIC:                       opts.BIC,
		Amount:                    opts.Amount,
		Currency:                  opts.Currency,
		Reference:                 opts.Reference,
		RemittanceInformation:     opts.RemittanceInformation,
		MandateID:                 opts.MandateID,
		MandateDateOfSignature:    opts.MandateDateOfSignature,
		LocalInstrument:           opts.LocalInstrument,
		SequenceType:              opts.SequenceType,
		BatchBooking:              true,
		RequestedDate:             opts.RequestedDate,
		Instruction:               opts.Instruction,
		DebtorAddress:             opts.DebtorAddress,
		CreditorAccount:           opts.CreditorAccount,
		OriginalDebtorAccount:     opts.OriginalDebtorAccount,
		SameMandateNewDebtorAgent: opts.SameMandateNewDebtorAgent,
		OriginalCreditorAccount:   opts.OriginalCreditorAccount,
	}

	if tx.Currency == "" {
		tx.Currency = DefaultCurrency
	}
	if tx.Reference == "" {
		tx.Reference = DefaultReference
	}
	if tx.LocalInstrument == "" {
		tx.LocalInstrument = LocalInstrumentCORE
	}
	if tx.SequenceType == "" {
		tx.SequenceType = SequenceTypeOOFF
	}
	if opts.BatchBooking != nil {
		tx.BatchBooking = *opts.BatchBooking
	}
	if tx.RequestedDate.IsZero() {
		tx.RequestedDate = DefaultRequestedDate
	}

	if errs := tx.Validate(); len(errs) > 0 {
		return Transaction{}, &FieldValidationError{Errors: errs}
	}
	return tx, nil
}

// HasAmendment reports whether any mandate amendment field is set.
func (t Transaction) HasAmendment() bool {
	return t.OriginalDebtorAccount != "" || t.SameMandateNewDebtorAgent || t.OriginalCreditorAccount != nil
}

// Validate returns the list of field errors of the transaction. An empty
// list means the record is valid.
func (t Transaction) Validate() []FieldError {
	var errs []FieldError

	errs = appendNameErrors(errs, "name", t.Name)

	if err := validation.ValidateIBAN(t.IBAN); err != nil {
		errs = append(errs, FieldError{Field: "iban", Message: err.Error()})
	}
	if t.BIC != "" {
		if err := validation.ValidateBIC(t.BIC); err != nil {
			errs = append(errs, FieldError{Field: "bic", Message: err.Error()})
		}
	}

	if !t.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	} else if !t.Amount.Equal(t.Amount.Round(2)) {
		errs = append(errs, FieldError{Field: "amount", Message: "must have at most two fraction digits"})
	}
	if err := validation.ValidateCurrencyCode(t.Currency); err != nil {
		errs = append(errs, FieldError{Field: "currency", Message: err.Error()})
	}

	errs = appendMaxLengthError(errs, "reference", t.Reference, 35)
	errs = appendMaxLengthError(errs, "remittance_information", t.RemittanceInformation, 140)
	errs = appendMaxLengthError(errs, "instruction", t.Instruction, 35)

	if t.MandateID == "" {
		errs = append(errs, FieldError{Field: "mandate_id", Message: "is required"})
	} else {
		errs = appendMaxLengthError(errs, "mandate_id", t.MandateID, 35)
	}
	if t.MandateDateOfSignature.IsZero() {
		errs = append(errs, FieldError{Field: "mandate_date_of_signature", Message: "is required"})
	} else if t.MandateDateOfSignature.After(time.Now()) {
		errs = append(errs, FieldError{Field: "mandate_date_of_signature", Message: "must not be in the future"})
	}

	if !contains(localInstruments, t.LocalInstrument) {
		errs = append(errs, FieldError{Field: "local_instrument", Message: "must be one of CORE, COR1, B2B"})
	}
	if !contains(sequenceTypes, t.SequenceType) {
		errs = append(errs, FieldError{Field: "sequence_type", Message: "must be one of FRST, OOFF, RCUR, FNAL"})
	}

	if t.DebtorAddress != nil {
		errs = append(errs, t.DebtorAddress.Validate()...)
	}
	if t.CreditorAccount != nil {
		errs = append(errs, prefixFields("creditor_account.", t.CreditorAccount.Validate())...)
	}
	if t.OriginalDebtorAccount != "" {
		if err := validation.ValidateIBAN(t.OriginalDebtorAccount); err != nil {
			errs = append(errs, FieldError{Field: "original_debtor_account", Message: err.Error()})
		}
	}
	if t.OriginalCreditorAccount != nil {
		errs = append(errs, t.OriginalCreditorAccount.validateAsOriginalCreditor()...)
	}

	return errs
}

// =============================================================================
// HELPERS
// =============================================================================

func appendMaxLengthError(errs []FieldError, field, value string, max int) []FieldError {
	if l := len(value); l > max {
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("is too long (maximum is %d characters, got %d)", max, l),
		})
	}
	return errs
}

func prefixFields(prefix string, errs []FieldError) []FieldError {
	for i := range errs {
		errs[i].Field = prefix + errs[i].Field
	}
	return errs
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
