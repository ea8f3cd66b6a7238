package csvparser_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerard76/sepa-king/internal/csvparser"
	"github.com/gerard76/sepa-king/internal/sepa"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse_BasicRows(t *testing.T) {
	path := writeCSV(t, `name,iban,bic,amount,reference,mandate_id,mandate_date_of_signature
Zahlemann & Söhne GbR,DE21500500009876543210,SPUEDE2UXXX,39.99,XYZ/2013-08-ABO/12345,K-02-2011-12345,2011-01-25
Meier & Schulze oHG,DE68210501700012345678,,750.00,XYZ/2013-08-ABO/6789,K-08-2010-42123,2010-07-25
`)

	options, err := csvparser.Parse(path)

	require.NoError(t, err)
	require.Len(t, options, 2)

	assert.Equal(t, "Zahlemann & Söhne GbR", options[0].Name)
	assert.Equal(t, "SPUEDE2UXXX", options[0].BIC)
	assert.True(t, options[0].Amount.Equal(decimal.RequireFromString("39.99")))
	assert.Equal(t, time.Date(2011, 1, 25, 0, 0, 0, 0, time.UTC), options[0].MandateDateOfSignature)

	assert.Equal(t, "Meier & Schulze oHG", options[1].Name)
	assert.Empty(t, options[1].BIC)
	assert.True(t, options[1].Amount.Equal(decimal.RequireFromString("750.00")))
}

func TestParse_OptionalColumns(t *testing.T) {
	path := writeCSV(t, `name,iban,amount,mandate_id,mandate_date_of_signature,sequence_type,local_instrument,batch_booking,requested_date,same_mandate_new_debtor_agent
Zahlemann & Söhne GbR,DE21500500009876543210,39.99,K-02-2011-12345,2011-01-25,RCUR,B2B,false,2026-09-15,true
`)

	options, err := csvparser.Parse(path)

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "RCUR", options[0].SequenceType)
	assert.Equal(t, "B2B", options[0].LocalInstrument)
	require.NotNil(t, options[0].BatchBooking)
	assert.False(t, *options[0].BatchBooking)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), options[0].RequestedDate)
	assert.True(t, options[0].SameMandateNewDebtorAgent)
}

func TestParse_CreditorOverrideColumns(t *testing.T) {
	path := writeCSV(t, `name,iban,amount,mandate_id,mandate_date_of_signature,creditor_name,creditor_iban,creditor_bic,creditor_identifier
Zahlemann & Söhne GbR,DE21500500009876543210,39.99,K-02-2011-12345,2011-01-25,Creditor Inc.,NL08RABO0135742099,RABONL2U,NL53ZZZ091734220000
`)

	options, err := csvparser.Parse(path)

	require.NoError(t, err)
	require.Len(t, options, 1)
	require.NotNil(t, options[0].CreditorAccount)
	assert.Equal(t, sepa.CreditorAccount{
		Name:               "Creditor Inc.",
		IBAN:               "NL08RABO0135742099",
		BIC:                "RABONL2U",
		CreditorIdentifier: "NL53ZZZ091734220000",
	}, *options[0].CreditorAccount)
}

func TestParse_DebtorAddressColumns(t *testing.T) {
	path := writeCSV(t, `name,iban,amount,mandate_id,mandate_date_of_signature,debtor_address_country,debtor_address_line_1
Zahlemann & Söhne GbR,DE21500500009876543210,39.99,K-02-2011-12345,2011-01-25,CH,Mustergasse 123a
`)

	options, err := csvparser.Parse(path)

	require.NoError(t, err)
	require.Len(t, options, 1)
	require.NotNil(t, options[0].DebtorAddress)
	assert.Equal(t, "CH", options[0].DebtorAddress.CountryCode)
	assert.Equal(t, "Mustergasse 123a", options[0].DebtorAddress.AddressLine1)
}

func TestParse_NoOverridesLeaveOptionsUnset(t *testing.T) {
	path := writeCSV(t, `name,iban,amount,mandate_id,mandate_date_of_signature
Zahlemann & Söhne GbR,DE21500500009876543210,39.99,K-02-2011-12345,2011-01-25
`)

	options, err := csvparser.Parse(path)

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Nil(t, options[0].CreditorAccount)
	assert.Nil(t, options[0].DebtorAddress)
	assert.Nil(t, options[0].BatchBooking)
	assert.True(t, options[0].RequestedDate.IsZero())
}

func TestParse_SkipsBlankRows(t *testing.T) {
	path := writeCSV(t, `name,iban,amount,mandate_id,mandate_date_of_signature
Zahlemann & Söhne GbR,DE21500500009876543210,39.99,K-02-2011-12345,2011-01-25
,,,,
`)

	options, err := csvparser.Parse(path)

	require.NoError(t, err)
	assert.Len(t, options, 1)
}

func TestParse_UnknownHeaderRejected(t *testing.T) {
	path := writeCSV(t, `name,iban,ammount
Zahlemann & Söhne GbR,DE21500500009876543210,39.99
`)

	_, err := csvparser.Parse(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown column "ammount"`)
}

func TestParse_BadAmountReportsRow(t *testing.T) {
	path := writeCSV(t, `name,iban,amount
Zahlemann & Söhne GbR,DE21500500009876543210,39.99
Meier & Schulze oHG,DE68210501700012345678,not-a-number
`)

	_, err := csvparser.Parse(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "not a valid decimal")
}

func TestParse_BadDate(t *testing.T) {
	path := writeCSV(t, `name,iban,amount,mandate_date_of_signature
Zahlemann & Söhne GbR,DE21500500009876543210,39.99,25.01.2011
`)

	_, err := csvparser.Parse(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid ISO date")
}

func TestParse_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := csvparser.Parse(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateHeaders_TrimsBOM(t *testing.T) {
	headers, err := csvparser.ValidateHeaders([]string{"\uFEFFname", "iban"})

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "iban"}, headers)
}
