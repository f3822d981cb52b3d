// Package domain contains the core entities for interstitial lung disease (ILD) decision support
// in patients with a connective tissue disease (CTD).
//
// Reference: ACR 2023 Guidelines for the Screening, Monitoring and Treatment of Interstitial
// Lung Disease in People with Systemic Autoimmune Rheumatic Disease.
package domain

// DiseaseType identifies the underlying connective tissue disease.
// The empty value means the diagnosis has not been determined yet.
type DiseaseType string

const (
	RheumatoidArthritis   DiseaseType = "RA"
	SystemicSclerosis     DiseaseType = "SSc"
	Myositis              DiseaseType = "IIM"
	MixedConnectiveTissue DiseaseType = "MCTD"
	Sjogren               DiseaseType = "SjD"
)

// AllDiseaseTypes lists the supported disease types in display order.
var AllDiseaseTypes = []DiseaseType{
	RheumatoidArthritis,
	SystemicSclerosis,
	Myositis,
	MixedConnectiveTissue,
	Sjogren,
}

// IsValid reports whether d is one of the supported disease types.
func (d DiseaseType) IsValid() bool {
	switch d {
	case RheumatoidArthritis, SystemicSclerosis, Myositis, MixedConnectiveTissue, Sjogren:
		return true
	default:
		return false
	}
}

// IsSet reports whether a disease type has been chosen.
func (d DiseaseType) IsSet() bool {
	return d != ""
}

func (d DiseaseType) String() string {
	return string(d)
}

// ILDStatus is the clinical trajectory of a diagnosed interstitial lung disease.
type ILDStatus string

const (
	ILDStable             ILDStatus = "stable"
	ILDProgression        ILDStatus = "progression"
	ILDRapidlyProgressive ILDStatus = "rapid-progressive"
)

// IsValid reports whether s is a known ILD status.
func (s ILDStatus) IsValid() bool {
	switch s {
	case ILDStable, ILDProgression, ILDRapidlyProgressive:
		return true
	default:
		return false
	}
}

func (s ILDStatus) String() string {
	return string(s)
}

// Label returns the display label of the status.
func (s ILDStatus) Label() string {
	switch s {
	case ILDStable:
		return "Stable / new diagnosis"
	case ILDProgression:
		return "Progression despite treatment"
	case ILDRapidlyProgressive:
		return "Rapidly progressive"
	default:
		return ""
	}
}

// SerologyStatus is the anti-MDA5 autoantibody status.
type SerologyStatus string

const (
	SerologyConfirmed SerologyStatus = "confirmed"
	SerologySuspected SerologyStatus = "suspected"
	SerologyNegative  SerologyStatus = "negative"
	SerologyUnknown   SerologyStatus = "unknown"
)

// IsValid reports whether s is a known serology status.
func (s SerologyStatus) IsValid() bool {
	switch s {
	case SerologyConfirmed, SerologySuspected, SerologyNegative, SerologyUnknown:
		return true
	default:
		return false
	}
}

// IsPositive reports whether the serology is confirmed or suspected.
func (s SerologyStatus) IsPositive() bool {
	return s == SerologyConfirmed || s == SerologySuspected
}

func (s SerologyStatus) String() string {
	return string(s)
}

// Label returns the display label of the status.
func (s SerologyStatus) Label() string {
	switch s {
	case SerologyConfirmed:
		return "Confirmed positive"
	case SerologySuspected:
		return "Suspected"
	case SerologyNegative:
		return "Negative"
	case SerologyUnknown:
		return "Unknown"
	default:
		return ""
	}
}

// HepaticFunction grades liver function.
type HepaticFunction string

const (
	HepaticNormal   HepaticFunction = "normal"
	HepaticMild     HepaticFunction = "mild"
	HepaticModerate HepaticFunction = "moderate"
	HepaticSevere   HepaticFunction = "severe"
)

// IsValid reports whether h is a known hepatic function grade.
func (h HepaticFunction) IsValid() bool {
	switch h {
	case HepaticNormal, HepaticMild, HepaticModerate, HepaticSevere:
		return true
	default:
		return false
	}
}

// RiskTier is the qualitative ILD risk level.
type RiskTier string

const (
	RiskHigh     RiskTier = "high"
	RiskModerate RiskTier = "moderate"
	RiskLow      RiskTier = "low"
)

func (r RiskTier) String() string {
	return string(r)
}

// UrgencyLevel grades how quickly treatment must start.
type UrgencyLevel string

const (
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyExtreme  UrgencyLevel = "extreme"
)

// Rank orders urgency levels; unknown levels rank 0.
func (u UrgencyLevel) Rank() int {
	switch u {
	case UrgencyHigh:
		return 1
	case UrgencyCritical:
		return 2
	case UrgencyExtreme:
		return 3
	default:
		return 0
	}
}

// UrgencyAdvisory is the alert shown with an urgent plan.
type UrgencyAdvisory struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// Advisory returns the alert for the urgency level. Unknown levels get the high advisory.
func (u UrgencyLevel) Advisory() UrgencyAdvisory {
	switch u {
	case UrgencyExtreme:
		return UrgencyAdvisory{
			Title: "LIFE-THREATENING EMERGENCY",
			Text:  "Life-threatening prognosis. Intensive care admission and immediate specialist advice are required.",
		}
	case UrgencyCritical:
		return UrgencyAdvisory{
			Title: "CRITICAL EMERGENCY",
			Text:  "Start treatment immediately. Hospitalisation and urgent pulmonology referral are recommended.",
		}
	default:
		return UrgencyAdvisory{
			Title: "THERAPEUTIC EMERGENCY",
			Text:  "Start treatment promptly. An urgent pulmonology referral is recommended.",
		}
	}
}

// PrognosisTier is the anti-MDA5 prognosis level.
type PrognosisTier string

const (
	PrognosisVeryPoor PrognosisTier = "very-poor"
	PrognosisPoor     PrognosisTier = "poor"
	PrognosisReserved PrognosisTier = "reserved"
	PrognosisGood     PrognosisTier = "good"
)

// SteroidAvoidance is the strength of a recommendation against glucocorticoids.
type SteroidAvoidance string

const (
	SteroidAvoidanceConditional SteroidAvoidance = "conditional"
	SteroidAvoidanceStrong      SteroidAvoidance = "strong"
)

// RecommendationStrength is the guideline strength of a screening or monitoring test.
type RecommendationStrength string

const (
	ConditionalFor RecommendationStrength = "conditional-for"
	StrongFor      RecommendationStrength = "strong-for"
)

// CombinationTherapy describes the combined induction regimen of a rapidly progressive plan.
type CombinationTherapy string

const (
	CombinationTriple CombinationTherapy = "triple"
	CombinationDouble CombinationTherapy = "double"
)

// PlanStatus reports whether the treatment selector found a usable primary agent.
type PlanStatus string

const (
	PlanResolved          PlanStatus = "resolved"
	PlanNoOptionAvailable PlanStatus = "no-option-available"
)

// IndicationStatus is the outcome of an indication assessment.
type IndicationStatus string

const (
	Indicated     IndicationStatus = "indicated"
	NotIndicated  IndicationStatus = "not-indicated"
	Unestablished IndicationStatus = "unestablished"
)
