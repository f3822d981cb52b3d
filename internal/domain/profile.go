package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PatientProfile is the structured clinical record evaluated by the engine.
// It is never mutated by an evaluation.
type PatientProfile struct {
	// Display only.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Age    Measurement `json:"age,omitempty" yaml:"age,omitempty" jsonschema:"age in years as a numeric string"`
	Weight Measurement `json:"weight,omitempty" yaml:"weight,omitempty" jsonschema:"weight in kg as a numeric string"`

	DiseaseType  DiseaseType `json:"disease_type,omitempty" yaml:"disease_type,omitempty" jsonschema:"one of RA, SSc, IIM, MCTD, SjD"`
	ILDDiagnosed bool        `json:"ild_diagnosed" yaml:"ild_diagnosed" jsonschema:"whether interstitial lung disease is diagnosed"`
	ILDStatus    ILDStatus   `json:"ild_status,omitempty" yaml:"ild_status,omitempty" jsonschema:"one of stable, progression, rapid-progressive"`

	AntiMDA5      SerologyStatus `json:"anti_mda5_status,omitempty" yaml:"anti_mda5_status,omitempty" jsonschema:"one of confirmed, suspected, negative, unknown"`
	AntiMDA5Titer string         `json:"anti_mda5_titer,omitempty" yaml:"anti_mda5_titer,omitempty"`
	Ferritin      Measurement    `json:"ferritin,omitempty" yaml:"ferritin,omitempty" jsonschema:"ferritin in ng/mL as a numeric string"`
	LDH           Measurement    `json:"ldh,omitempty" yaml:"ldh,omitempty" jsonschema:"LDH in IU/L as a numeric string"`
	CRP           Measurement    `json:"crp,omitempty" yaml:"crp,omitempty" jsonschema:"CRP in mg/L as a numeric string"`

	RiskFactors    []string `json:"risk_factors,omitempty" yaml:"risk_factors,omitempty"`
	Symptoms       []string `json:"symptoms,omitempty" yaml:"symptoms,omitempty"`
	Manifestations []string `json:"anti_mda5_manifestations,omitempty" yaml:"anti_mda5_manifestations,omitempty"`

	HepaticFunction    HepaticFunction `json:"hepatic_function,omitempty" yaml:"hepatic_function,omitempty" jsonschema:"one of normal, mild, moderate, severe"`
	Contraindications  []string        `json:"contraindications,omitempty" yaml:"contraindications,omitempty"`
	CurrentMedications []string        `json:"current_medications,omitempty" yaml:"current_medications,omitempty"`
}

// EffectiveILDStatus returns the ILD status, or the empty status when no ILD is diagnosed.
func (p *PatientProfile) EffectiveILDStatus() ILDStatus {
	if !p.ILDDiagnosed {
		return ""
	}
	return p.ILDStatus
}

// InAntiMDA5Subgroup reports whether the patient has myositis with positive or suspected anti-MDA5.
func (p *PatientProfile) InAntiMDA5Subgroup() bool {
	return p.DiseaseType == Myositis && p.AntiMDA5.IsPositive()
}

// Validate checks enumerated fields. Unset values are valid: they mean "not yet determined".
func (p *PatientProfile) Validate() error {
	if p.DiseaseType.IsSet() && !p.DiseaseType.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidDiseaseType, NewValidationError("disease_type", "unknown disease type", p.DiseaseType))
	}
	if p.ILDStatus != "" && !p.ILDStatus.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidILDStatus, NewValidationError("ild_status", "unknown ILD status", p.ILDStatus))
	}
	if p.AntiMDA5 != "" && !p.AntiMDA5.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidSerology, NewValidationError("anti_mda5_status", "unknown anti-MDA5 status", p.AntiMDA5))
	}
	if p.HepaticFunction != "" && !p.HepaticFunction.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidHepaticFunction, NewValidationError("hepatic_function", "unknown hepatic function grade", p.HepaticFunction))
	}
	return nil
}

// Measurement is a free-text numeric entry such as an age or a lab value.
// Blank or unparseable entries are "unknown".
type Measurement string

// leadingNumber matches the numeric prefix of an entry, so "1600 ng/mL" reads as 1600.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Value returns the numeric value and whether it is known.
func (m Measurement) Value() (float64, bool) {
	match := leadingNumber.FindString(strings.TrimSpace(string(m)))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Exceeds reports whether the value is known and strictly greater than limit.
func (m Measurement) Exceeds(limit float64) bool {
	v, ok := m.Value()
	return ok && v > limit
}

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Measurement(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return NewValidationError("measurement", "expected a number or a numeric string", string(data))
	}
	*m = Measurement(n.String())
	return nil
}
