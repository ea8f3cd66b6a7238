package sepa_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerard76/sepa-king/internal/sepa"
)

func validCreditor() sepa.CreditorAccount {
	return sepa.CreditorAccount{
		Name:               "Gläubiger GmbH",
		BIC:                "BANKDEFFXXX",
		IBAN:               "DE87200500001234567890",
		CreditorIdentifier: "DE98ZZZ09999999999",
	}
}

func TestCreditorAccount_Valid(t *testing.T) {
	assert.Empty(t, validCreditor().Validate())
}

func TestCreditorAccount_ValidWithoutBIC(t *testing.T) {
	account := validCreditor()
	account.BIC = ""

	assert.Empty(t, account.Validate())
}

func TestCreditorAccount_NameTooShort(t *testing.T) {
	account := validCreditor()
	account.Name = ""

	errs := account.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Contains(t, errs[0].Message, "is too short")
}

func TestCreditorAccount_NameTooLong(t *testing.T) {
	account := validCreditor()
	account.Name = strings.Repeat("x", 71)

	errs := account.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Contains(t, errs[0].Message, "is too long")
}

func TestCreditorAccount_NameLengthCountsRunes(t *testing.T) {
	account := validCreditor()
	account.Name = strings.Repeat("ü", 70)

	assert.Empty(t, account.Validate())
}

func TestCreditorAccount_BadIBAN(t *testing.T) {
	account := validCreditor()
	account.IBAN = "DE88200500001234567890"

	errs := account.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "iban", errs[0].Field)
}

func TestCreditorAccount_BadBIC(t *testing.T) {
	account := validCreditor()
	account.BIC = "not-a-bic"

	errs := account.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "bic", errs[0].Field)
}

func TestCreditorAccount_BadCreditorIdentifier(t *testing.T) {
	account := validCreditor()
	account.CreditorIdentifier = "invalid!"

	errs := account.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "creditor_identifier", errs[0].Field)
}

func TestDebtorAddress_UnstructuredValid(t *testing.T) {
	addr := sepa.DebtorAddress{
		CountryCode:  "CH",
		AddressLine1: "Mustergasse 123a",
		AddressLine2: "1234 Musterstadt",
	}

	assert.Empty(t, addr.Validate())
}

func TestDebtorAddress_StructuredValid(t *testing.T) {
	addr := sepa.DebtorAddress{
		CountryCode:    "CH",
		StreetName:     "Mustergasse",
		BuildingNumber: "123a",
		PostCode:       "1234",
		TownName:       "Musterstadt",
	}

	assert.Empty(t, addr.Validate())
}

func TestDebtorAddress_MixedFormsRejected(t *testing.T) {
	addr := sepa.DebtorAddress{
		CountryCode:  "CH",
		AddressLine1: "Mustergasse 123a",
		TownName:     "Musterstadt",
	}

	errs := addr.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "not both")
}

func TestDebtorAddress_EmptyRejected(t *testing.T) {
	addr := sepa.DebtorAddress{CountryCode: "CH"}

	errs := addr.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "at least one")
}

func TestDebtorAddress_BadCountryCode(t *testing.T) {
	addr := sepa.DebtorAddress{
		CountryCode:  "Schweiz",
		AddressLine1: "Mustergasse 123a",
	}

	errs := addr.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "debtor_address.country_code", errs[0].Field)
}
