package sepa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerard76/sepa-king/internal/sepa"
)

func TestProfileFor_AllSupportedVersions(t *testing.T) {
	for _, version := range sepa.SupportedSchemaVersions() {
		profile, err := sepa.ProfileFor(version)
		require.NoError(t, err, version)
		assert.Equal(t, version, profile.Version)
		assert.Equal(t, "urn:iso:std:iso:20022:tech:xsd:"+string(version), profile.Namespace)
		assert.Equal(t, 35, profile.MaxIdentifierLength)
	}
}

func TestProfileFor_Unsupported(t *testing.T) {
	_, err := sepa.ProfileFor("pain.001.001.03")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema version")
}

func TestDefaultSchemaVersion(t *testing.T) {
	assert.Equal(t, sepa.Pain008_001_02, sepa.DefaultSchemaVersion)
}

func TestSchemaProfile_CurrencyRules(t *testing.T) {
	base, err := sepa.ProfileFor(sepa.Pain008_001_02)
	require.NoError(t, err)
	assert.True(t, base.CurrencyAllowed("EUR"))
	assert.True(t, base.CurrencyAllowed("SEK"))

	german, err := sepa.ProfileFor(sepa.Pain008_003_02)
	require.NoError(t, err)
	assert.True(t, german.CurrencyAllowed("EUR"))
	assert.False(t, german.CurrencyAllowed("SEK"))
}

func TestSchemaProfile_BICRequirements(t *testing.T) {
	base, err := sepa.ProfileFor(sepa.Pain008_001_02)
	require.NoError(t, err)
	assert.False(t, base.CreditorBICRequired)
	assert.False(t, base.DebtorBICRequired)

	legacy, err := sepa.ProfileFor(sepa.Pain008_002_02)
	require.NoError(t, err)
	assert.True(t, legacy.CreditorBICRequired)
	assert.True(t, legacy.DebtorBICRequired)
}

func TestSchemaProfile_BICElement(t *testing.T) {
	base, err := sepa.ProfileFor(sepa.Pain008_001_02)
	require.NoError(t, err)
	assert.Equal(t, "BIC", base.BICElement)

	revised, err := sepa.ProfileFor(sepa.Pain008_001_08)
	require.NoError(t, err)
	assert.Equal(t, "BICFI", revised.BICElement)
}

func TestSchemaProfile_LocalInstruments(t *testing.T) {
	base, err := sepa.ProfileFor(sepa.Pain008_001_02)
	require.NoError(t, err)
	assert.True(t, base.LocalInstrumentAllowed(sepa.LocalInstrumentCOR1))

	revised, err := sepa.ProfileFor(sepa.Pain008_001_08)
	require.NoError(t, err)
	assert.False(t, revised.LocalInstrumentAllowed(sepa.LocalInstrumentCOR1))
	assert.True(t, revised.LocalInstrumentAllowed(sepa.LocalInstrumentB2B))
}
