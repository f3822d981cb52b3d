// Package knowledge holds the static reference tables queried by the recommendation engine:
// the disease-type registry, the treatment registry and the enumerated option lists.
//
// Tables are built once and never mutated, so a Base is safe for concurrent use.
package knowledge

import (
	"slices"
	"strings"

	"github.com/ctd-ild-mcp-server/internal/domain"
)

// DiseaseTypeInfo describes a supported connective tissue disease.
type DiseaseTypeInfo struct {
	Type     domain.DiseaseType `json:"type" yaml:"type"`
	Label    string             `json:"label" yaml:"label"`
	Baseline domain.RiskTier    `json:"baseline_risk" yaml:"baseline_risk"`
}

// Treatment is a treatment registry entry.
type Treatment struct {
	Key               string   `json:"key" yaml:"key"`
	Name              string   `json:"name" yaml:"name"`
	Dosage            string   `json:"dosage" yaml:"dosage"`
	Administration    string   `json:"administration" yaml:"administration"`
	Surveillance      string   `json:"surveillance" yaml:"surveillance"`
	Contraindications []string `json:"contraindications" yaml:"contraindications"`
	Interactions      []string `json:"interactions" yaml:"interactions"`
	SideEffects       string   `json:"side_effects" yaml:"side_effects"`
	Monitoring        string   `json:"monitoring" yaml:"monitoring"`
	Notes             string   `json:"notes" yaml:"notes"`
}

func (t Treatment) clone() Treatment {
	t.Contraindications = slices.Clone(t.Contraindications)
	t.Interactions = slices.Clone(t.Interactions)
	return t
}

// MedicationOption is an entry of the current-medication picklist.
// TreatmentKey is empty for medications that are not in the treatment registry.
type MedicationOption struct {
	Label        string `json:"label" yaml:"label"`
	TreatmentKey string `json:"treatment_key,omitempty" yaml:"treatment_key,omitempty"`
}

// Base is an immutable set of reference tables.
type Base struct {
	diseases       map[domain.DiseaseType]DiseaseTypeInfo
	diseaseOrder   []domain.DiseaseType
	treatments     map[string]Treatment
	treatmentOrder []string
	medications    []MedicationOption
	options        Options
}

var defaultBase = New(defaultDiseaseTypes, defaultTreatments, defaultMedications, defaultOptions)

// Default returns the built-in reference tables.
func Default() *Base {
	return defaultBase
}

// New builds a Base from the given tables. Later duplicates replace earlier entries.
func New(diseases []DiseaseTypeInfo, treatments []Treatment, medications []MedicationOption, options Options) *Base {
	b := &Base{
		diseases:    make(map[domain.DiseaseType]DiseaseTypeInfo, len(diseases)),
		treatments:  make(map[string]Treatment, len(treatments)),
		medications: slices.Clone(medications),
		options:     options.clone(),
	}
	for _, d := range diseases {
		if _, dup := b.diseases[d.Type]; !dup {
			b.diseaseOrder = append(b.diseaseOrder, d.Type)
		}
		b.diseases[d.Type] = d
	}
	for _, t := range treatments {
		if _, dup := b.treatments[t.Key]; !dup {
			b.treatmentOrder = append(b.treatmentOrder, t.Key)
		}
		b.treatments[t.Key] = t.clone()
	}
	return b
}

// DiseaseType looks up a disease type.
func (b *Base) DiseaseType(t domain.DiseaseType) (DiseaseTypeInfo, bool) {
	info, ok := b.diseases[t]
	return info, ok
}

// DiseaseTypes returns the registry in display order.
func (b *Base) DiseaseTypes() []DiseaseTypeInfo {
	out := make([]DiseaseTypeInfo, 0, len(b.diseaseOrder))
	for _, t := range b.diseaseOrder {
		out = append(out, b.diseases[t])
	}
	return out
}

// Treatment looks up a treatment by key. The returned record is a copy.
func (b *Base) Treatment(key string) (Treatment, bool) {
	t, ok := b.treatments[key]
	if !ok {
		return Treatment{}, false
	}
	return t.clone(), true
}

// HasTreatment reports whether key is in the treatment registry.
func (b *Base) HasTreatment(key string) bool {
	_, ok := b.treatments[key]
	return ok
}

// Treatments returns copies of every treatment record in registry order.
func (b *Base) Treatments() []Treatment {
	out := make([]Treatment, 0, len(b.treatmentOrder))
	for _, k := range b.treatmentOrder {
		out = append(out, b.treatments[k].clone())
	}
	return out
}

// TreatmentName returns the display name of key, or key itself when unknown.
func (b *Base) TreatmentName(key string) string {
	if t, ok := b.treatments[key]; ok {
		return t.Name
	}
	return key
}

// Medications returns the current-medication picklist.
func (b *Base) Medications() []MedicationOption {
	return slices.Clone(b.medications)
}

// ResolveMedication maps a free-text current-medication entry to a treatment key.
// It accepts a picklist label, a treatment display name or a treatment key, case-insensitively.
func (b *Base) ResolveMedication(entry string) (string, bool) {
	needle := strings.TrimSpace(entry)
	if needle == "" {
		return "", false
	}
	for _, m := range b.medications {
		if m.TreatmentKey != "" && strings.EqualFold(m.Label, needle) {
			return m.TreatmentKey, true
		}
	}
	for _, k := range b.treatmentOrder {
		if strings.EqualFold(k, needle) || strings.EqualFold(b.treatments[k].Name, needle) {
			return k, true
		}
	}
	return "", false
}

// Options returns a copy of the enumerated option lists.
func (b *Base) Options() Options {
	return b.options.clone()
}
