// =============================================================================
// SEPA Direct Debit Generator - Configuration Module
// =============================================================================
//
// This module loads and manages the initiation profile: the YAML file that
// describes the creditor on whose behalf collections are generated, the
// defaults applied to transactions that leave fields blank, and the output
// settings of the generator.
//
// CONFIGURATION FILE:
//   A single profile (profile.yaml) with three sections:
//     creditor: identity of the collecting party
//     defaults: values applied to transactions missing the field
//     output:   directories and file naming for generated documents
//
// Unknown YAML keys are rejected so that a typo in a field name surfaces as
// a load error instead of silently falling back to a default.
//
// =============================================================================

package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gerard76/sepa-king/internal/sepa"
	"github.com/gerard76/sepa-king/internal/validation"
)

// =============================================================================
// PROFILE STRUCTURE
// =============================================================================

// Profile is the initiation profile for generating direct debit documents.
type Profile struct {
	// Creditor identifies the collecting party. It is required; a document
	// cannot be generated without a creditor.
	Creditor CreditorConfig `yaml:"creditor"`

	// Defaults are applied to every transaction that leaves the
	// corresponding field blank.
	Defaults DefaultsConfig `yaml:"defaults"`

	// Output controls where and under which names documents are written.
	Output OutputConfig `yaml:"output"`

	// SchemaVersion selects the pain.008 variant to render.
	// Valid values: "pain.008.001.02", "pain.008.001.08",
	// "pain.008.002.02", "pain.008.003.02".
	// Default: "pain.008.001.02"
	SchemaVersion string `yaml:"schema_version"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// CreditorConfig identifies the party initiating the collections.
type CreditorConfig struct {
	// Name is the creditor's name, 1 to 70 characters.
	Name string `yaml:"name"`

	// IBAN is the creditor's collection account.
	IBAN string `yaml:"iban"`

	// BIC of the creditor's bank. Optional under most schema versions.
	BIC string `yaml:"bic"`

	// CreditorIdentifier is the EPC creditor identifier
	// (e.g. "DE98ZZZ09999999999").
	CreditorIdentifier string `yaml:"creditor_identifier"`
}

// DefaultsConfig holds per-transaction fallback values.
type DefaultsConfig struct {
	// Currency for instructed amounts.
	// Default: "EUR"
	Currency string `yaml:"currency"`

	// LocalInstrument applied to transactions without one.
	// Valid values: "CORE", "COR1", "B2B"
	// Default: "CORE"
	LocalInstrument string `yaml:"local_instrument"`

	// SequenceType applied to transactions without one.
	// Valid values: "FRST", "OOFF", "RCUR", "FNAL"
	// Default: "OOFF"
	SequenceType string `yaml:"sequence_type"`

	// BatchBooking applied to transactions without an explicit setting.
	// Default: true
	BatchBooking *bool `yaml:"batch_booking"`

	// RequestedDate is the fallback collection date in ISO form
	// (e.g. "2026-09-15"). When empty the library sentinel is used.
	RequestedDate string `yaml:"requested_date"`
}

// OutputConfig controls document output.
type OutputConfig struct {
	// Dir is the directory generated XML files are written to.
	// Default: "./output"
	Dir string `yaml:"dir"`

	// ArchiveDir is the directory processed input files are moved to
	// after successful generation. Archiving is skipped when empty.
	ArchiveDir string `yaml:"archive_dir"`

	// FileNameFormat defines the output file name.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	// Default: "{uuid}.xml"
	FileNameFormat string `yaml:"file_name_format"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads, parses, defaults and validates a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data)
}

// Parse parses a profile from raw YAML bytes.
func Parse(data []byte) (*Profile, error) {
	var profile Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	applyDefaults(&profile)

	if err := validate(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return &profile, nil
}

// applyDefaults sets default values for any unset profile options.
func applyDefaults(profile *Profile) {
	if profile.SchemaVersion == "" {
		profile.SchemaVersion = string(sepa.DefaultSchemaVersion)
	}
	if profile.LogLevel == "" {
		profile.LogLevel = "info"
	}
	if profile.Defaults.Currency == "" {
		profile.Defaults.Currency = sepa.DefaultCurrency
	}
	if profile.Defaults.LocalInstrument == "" {
		profile.Defaults.LocalInstrument = sepa.LocalInstrumentCORE
	}
	if profile.Defaults.SequenceType == "" {
		profile.Defaults.SequenceType = sepa.SequenceTypeOOFF
	}
	if profile.Defaults.BatchBooking == nil {
		profile.Defaults.BatchBooking = sepa.Bool(true)
	}
	if profile.Output.Dir == "" {
		profile.Output.Dir = "./output"
	}
	if profile.Output.FileNameFormat == "" {
		profile.Output.FileNameFormat = "{uuid}.xml"
	}
}

// validate checks the profile for values that would make every generated
// document invalid.
func validate(profile *Profile) error {
	if _, err := sepa.ProfileFor(sepa.SchemaVersion(profile.SchemaVersion)); err != nil {
		return err
	}
	if profile.Creditor.Name == "" {
		return fmt.Errorf("creditor.name is required")
	}
	if err := validation.ValidateIBAN(profile.Creditor.IBAN); err != nil {
		return fmt.Errorf("creditor.iban %w", err)
	}
	if profile.Creditor.BIC != "" {
		if err := validation.ValidateBIC(profile.Creditor.BIC); err != nil {
			return fmt.Errorf("creditor.bic %w", err)
		}
	}
	if err := validation.ValidateCreditorIdentifier(profile.Creditor.CreditorIdentifier); err != nil {
		return fmt.Errorf("creditor.creditor_identifier %w", err)
	}

	switch profile.Defaults.LocalInstrument {
	case sepa.LocalInstrumentCORE, sepa.LocalInstrumentCOR1, sepa.LocalInstrumentB2B:
	default:
		return fmt.Errorf("defaults.local_instrument %q is not one of CORE, COR1, B2B", profile.Defaults.LocalInstrument)
	}
	switch profile.Defaults.SequenceType {
	case sepa.SequenceTypeFRST, sepa.SequenceTypeOOFF, sepa.SequenceTypeRCUR, sepa.SequenceTypeFNAL:
	default:
		return fmt.Errorf("defaults.sequence_type %q is not one of FRST, OOFF, RCUR, FNAL", profile.Defaults.SequenceType)
	}
	if profile.Defaults.RequestedDate != "" {
		if _, err := profile.RequestedDate(); err != nil {
			return err
		}
	}

	switch profile.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", profile.LogLevel)
	}
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// CreditorAccount builds the library-level creditor account from the profile.
func (p *Profile) CreditorAccount() sepa.CreditorAccount {
	return sepa.CreditorAccount{
		Name:               p.Creditor.Name,
		IBAN:               p.Creditor.IBAN,
		BIC:                p.Creditor.BIC,
		CreditorIdentifier: p.Creditor.CreditorIdentifier,
	}
}

// RequestedDate parses the default collection date. The zero time is
// returned when no default is configured.
func (p *Profile) RequestedDate() (time.Time, error) {
	if p.Defaults.RequestedDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", p.Defaults.RequestedDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("defaults.requested_date %q is not a valid ISO date", p.Defaults.RequestedDate)
	}
	return t, nil
}
