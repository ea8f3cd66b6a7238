// =============================================================================
// SEPA Direct Debit Initiation - Schema Profile Table
// =============================================================================
//
// Each supported pain.008 schema version has one profile describing what
// the version can represent: its namespace, whether BICs are mandatory,
// which currencies and local instruments are allowed, and which element
// name carries the BIC. The table is the single source of truth; the
// validator and serializer consult it instead of special-casing versions.
//
// SUPPORTED VERSIONS:
//   pain.008.001.02  ISO base version, IBAN-only capable, any currency
//   pain.008.001.08  2019 revision (BICFI instead of BIC)
//   pain.008.002.02  legacy German subset: BICs mandatory, EUR only
//   pain.008.003.02  legacy German successor: IBAN-only capable, EUR only
//
// =============================================================================

package sepa

import "fmt"

// SchemaVersion names one supported pain.008 schema revision.
type SchemaVersion string

// Supported schema versions.
const (
	Pain008_001_02 SchemaVersion = "pain.008.001.02"
	Pain008_001_08 SchemaVersion = "pain.008.001.08"
	Pain008_002_02 SchemaVersion = "pain.008.002.02"
	Pain008_003_02 SchemaVersion = "pain.008.003.02"
)

// DefaultSchemaVersion is used by ToXML when no version is given.
const DefaultSchemaVersion = Pain008_001_02

// maxIdentifierLength is the Max35Text bound applied to rendered batch
// identifiers in every supported version.
const maxIdentifierLength = 35

// =============================================================================
// PROFILE
// =============================================================================

// SchemaProfile is the rule set of one schema version.
type SchemaProfile struct {
	// Version is the schema version string, e.g. "pain.008.001.02".
	Version SchemaVersion

	// Namespace is the target namespace of the document root.
	Namespace string

	// SchemaLocation is the xsi:schemaLocation attribute value.
	SchemaLocation string

	// CreditorBICRequired and DebtorBICRequired mark versions that cannot
	// express an account without a BIC. When false and the BIC is absent,
	// the serializer emits the NOTPROVIDED fallback identifier.
	CreditorBICRequired bool
	DebtorBICRequired   bool

	// Currencies is the allowed currency set. Empty means any ISO 4217
	// currency is representable.
	Currencies []string

	// LocalInstruments is the allowed local instrument set.
	LocalInstruments []string

	// BICElement is the element name carrying a BIC: "BIC" for the 02-era
	// versions, "BICFI" for the 2019 revision.
	BICElement string

	// MaxIdentifierLength bounds rendered batch identifiers.
	MaxIdentifierLength int
}

// CurrencyAllowed reports whether the profile can represent the currency.
func (p SchemaProfile) CurrencyAllowed(currency string) bool {
	if len(p.Currencies) == 0 {
		return true
	}
	return contains(p.Currencies, currency)
}

// LocalInstrumentAllowed reports whether the profile can represent the
// local instrument.
func (p SchemaProfile) LocalInstrumentAllowed(instrument string) bool {
	return contains(p.LocalInstruments, instrument)
}

// =============================================================================
// TABLE
// =============================================================================

var schemaProfiles = map[SchemaVersion]SchemaProfile{
	Pain008_001_02: newProfile(Pain008_001_02, func(p *SchemaProfile) {
		p.LocalInstruments = []string{LocalInstrumentCORE, LocalInstrumentCOR1, LocalInstrumentB2B}
	}),
	Pain008_001_08: newProfile(Pain008_001_08, func(p *SchemaProfile) {
		p.LocalInstruments = []string{LocalInstrumentCORE, LocalInstrumentB2B}
		p.BICElement = "BICFI"
	}),
	Pain008_002_02: newProfile(Pain008_002_02, func(p *SchemaProfile) {
		p.CreditorBICRequired = true
		p.DebtorBICRequired = true
		p.Currencies = []string{"EUR"}
		p.LocalInstruments = []string{LocalInstrumentCORE, LocalInstrumentB2B}
	}),
	Pain008_003_02: newProfile(Pain008_003_02, func(p *SchemaProfile) {
		p.Currencies = []string{"EUR"}
		p.LocalInstruments = []string{LocalInstrumentCORE, LocalInstrumentCOR1, LocalInstrumentB2B}
	}),
}

// newProfile builds a profile with the shared fields filled in and applies
// the version-specific overrides.
func newProfile(version SchemaVersion, customize func(*SchemaProfile)) SchemaProfile {
	ns := "urn:iso:std:iso:20022:tech:xsd:" + string(version)
	p := SchemaProfile{
		Version:             version,
		Namespace:           ns,
		SchemaLocation:      fmt.Sprintf("%s %s.xsd", ns, version),
		BICElement:          "BIC",
		MaxIdentifierLength: maxIdentifierLength,
	}
	customize(&p)
	return p
}

// SupportedSchemaVersions returns the supported versions in a fixed order.
func SupportedSchemaVersions() []SchemaVersion {
	return []SchemaVersion{Pain008_001_02, Pain008_001_08, Pain008_002_02, Pain008_003_02}
}

// ProfileFor returns the profile of a schema version, or an error for an
// unsupported version string.
func ProfileFor(version SchemaVersion) (SchemaProfile, error) {
	p, ok := schemaProfiles[version]
	if !ok {
		return SchemaProfile{}, fmt.Errorf("unsupported schema version %q", version)
	}
	return p, nil
}
