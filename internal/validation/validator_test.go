package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerard76/sepa-king/internal/validation"
)

func TestValidateIBAN_Valid(t *testing.T) {
	for _, iban := range []string{
		"DE87200500001234567890",
		"DE21500500009876543210",
		"DE68210501700012345678",
		"NL08RABO0135742099",
		"FR1420041010050500013M02606",
	} {
		assert.NoError(t, validation.ValidateIBAN(iban), iban)
	}
}

func TestValidateIBAN_InvalidStructure(t *testing.T) {
	for _, iban := range []string{
		"",
		"DE87 2005 0000 1234 5678 90",
		"de87200500001234567890",
		"D187200500001234567890",
		"DE8720050000123456789012345678901234",
	} {
		err := validation.ValidateIBAN(iban)
		require.Error(t, err, iban)
		assert.Contains(t, err.Error(), "is not a valid IBAN")
	}
}

func TestValidateIBAN_BadChecksum(t *testing.T) {
	err := validation.ValidateIBAN("DE88200500001234567890")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestValidateBIC_Valid(t *testing.T) {
	for _, bic := range []string{
		"BANKDEFF",
		"BANKDEFFXXX",
		"SPUEDE2UXXX",
		"RABONL2U",
	} {
		assert.NoError(t, validation.ValidateBIC(bic), bic)
	}
}

func TestValidateBIC_Invalid(t *testing.T) {
	for _, bic := range []string{
		"",
		"BANKDEFFX",
		"bankdeff",
		"BANKDEFFXXXX",
		"1234DEFF",
	} {
		err := validation.ValidateBIC(bic)
		require.Error(t, err, bic)
		assert.Contains(t, err.Error(), "is not a valid BIC")
	}
}

func TestValidateCreditorIdentifier_Valid(t *testing.T) {
	for _, id := range []string{
		"DE98ZZZ09999999999",
		"NL53ZZZ091734220000",
		"FR12ZZZ123456",
	} {
		assert.NoError(t, validation.ValidateCreditorIdentifier(id), id)
	}
}

func TestValidateCreditorIdentifier_Invalid(t *testing.T) {
	for _, id := range []string{
		"",
		"DE98ZZZ!9999999999",
		"98DEZZZ09999999999",
	} {
		err := validation.ValidateCreditorIdentifier(id)
		require.Error(t, err, id)
		assert.Contains(t, err.Error(), "creditor identifier")
	}
}

func TestValidateCreditorIdentifier_TooLong(t *testing.T) {
	err := validation.ValidateCreditorIdentifier("DE98ZZZ0999999999912345678901234567890")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "35")
}

func TestValidateCountryCode(t *testing.T) {
	assert.NoError(t, validation.ValidateCountryCode("DE"))
	assert.Error(t, validation.ValidateCountryCode("de"))
	assert.Error(t, validation.ValidateCountryCode("DEU"))
	assert.Error(t, validation.ValidateCountryCode(""))
}

func TestValidateCurrencyCode(t *testing.T) {
	assert.NoError(t, validation.ValidateCurrencyCode("EUR"))
	assert.NoError(t, validation.ValidateCurrencyCode("SEK"))
	assert.Error(t, validation.ValidateCurrencyCode("eur"))
	assert.Error(t, validation.ValidateCurrencyCode("EU"))
	assert.Error(t, validation.ValidateCurrencyCode(""))
}
