package knowledge

import (
	"slices"

	"github.com/ctd-ild-mcp-server/internal/domain"
)

// Options are the enumerated picklists offered to the input form.
type Options struct {
	RiskFactors       []string `json:"risk_factors" yaml:"risk_factors"`
	Symptoms          []string `json:"symptoms" yaml:"symptoms"`
	Manifestations    []string `json:"anti_mda5_manifestations" yaml:"anti_mda5_manifestations"`
	Contraindications []string `json:"contraindications" yaml:"contraindications"`
	Medications       []string `json:"current_medications" yaml:"current_medications"`
}

func (o Options) clone() Options {
	return Options{
		RiskFactors:       slices.Clone(o.RiskFactors),
		Symptoms:          slices.Clone(o.Symptoms),
		Manifestations:    slices.Clone(o.Manifestations),
		Contraindications: slices.Clone(o.Contraindications),
		Medications:       slices.Clone(o.Medications),
	}
}

// High-risk anti-MDA5 manifestations weighted by the prognostic score.
const (
	ManifestationRapidRespiratoryProgression = "Rapid respiratory progression (<3 months)"
	ManifestationSkinUlcerations             = "Skin ulcerations"
)

// HighRiskManifestations is the subset of manifestations that add to the prognostic score.
var HighRiskManifestations = []string{
	ManifestationRapidRespiratoryProgression,
	ManifestationSkinUlcerations,
}

var defaultDiseaseTypes = []DiseaseTypeInfo{
	{Type: domain.RheumatoidArthritis, Label: "Rheumatoid arthritis (RA)", Baseline: domain.RiskModerate},
	{Type: domain.SystemicSclerosis, Label: "Systemic sclerosis (SSc)", Baseline: domain.RiskHigh},
	{Type: domain.Myositis, Label: "Idiopathic inflammatory myositis (IIM)", Baseline: domain.RiskHigh},
	{Type: domain.MixedConnectiveTissue, Label: "Mixed connective tissue disease (MCTD)", Baseline: domain.RiskModerate},
	{Type: domain.Sjogren, Label: "Sjögren's disease (SjD)", Baseline: domain.RiskModerate},
}

var defaultMedications = []MedicationOption{
	{Label: "Abatacept", TreatmentKey: KeyAbatacept},
	{Label: "Anti-TNF"},
	{Label: "Azathioprine", TreatmentKey: KeyAzathioprine},
	{Label: "Calcineurin inhibitors", TreatmentKey: KeyCalcineurinInhibitors},
	{Label: "Cyclophosphamide", TreatmentKey: KeyCyclophosphamide},
	{Label: "Glucocorticoids", TreatmentKey: KeyGlucocorticoids},
	{Label: "Hydroxychloroquine"},
	{Label: "IVIg", TreatmentKey: KeyIVIg},
	{Label: "JAK inhibitors", TreatmentKey: KeyJAKInhibitors},
	{Label: "Leflunomide"},
	{Label: "Methotrexate"},
	{Label: "Mycophenolate mofetil", TreatmentKey: KeyMycophenolate},
	{Label: "Nintedanib", TreatmentKey: KeyNintedanib},
	{Label: "Other immunosuppressants"},
	{Label: "Pirfenidone", TreatmentKey: KeyPirfenidone},
	{Label: "Rituximab", TreatmentKey: KeyRituximab},
	{Label: "Sulfasalazine"},
	{Label: "Tocilizumab", TreatmentKey: KeyTocilizumab},
}

var defaultOptions = Options{
	RiskFactors: []string{
		"Anti-Jo1 positive",
		"Anti-synthetase antibodies",
		"Anti-Scl-70 positive",
		"Male sex",
		"Current or former smoking",
		"Occupational exposure",
		"Family history of pulmonary fibrosis",
	},
	Symptoms: []string{
		"Exertional dyspnoea",
		"Persistent dry cough",
		"Unusual fatigue",
		"Chest pain",
		"Crackles on auscultation",
		"Digital clubbing",
		"Exertional desaturation",
	},
	Manifestations: []string{
		"Typical skin rash (Gottron papules)",
		ManifestationSkinUlcerations,
		"Clinically amyopathic disease (no muscle weakness)",
		"Arthralgia/arthritis",
		"Raynaud phenomenon",
		"Cutaneous vasculopathy",
		"Alopecia",
		"Persistent fever",
		"Significant weight loss",
		ManifestationRapidRespiratoryProgression,
	},
	Contraindications: []string{
		"Active infection",
		"Severe immunodeficiency",
		"Severe renal impairment",
		"Severe hepatic impairment",
		"Pregnancy/breastfeeding",
		"Recent history of cancer",
		"Known hypersensitivity",
		"Severe heart failure",
		"Severe COPD",
		"Active peptic ulcer",
	},
	Medications: medicationLabels(defaultMedications),
}

func medicationLabels(meds []MedicationOption) []string {
	labels := make([]string, 0, len(meds))
	for _, m := range meds {
		labels = append(labels, m.Label)
	}
	return labels
}
