package domain

import (
	"context"
)

// Advisor is the recommendation surface offered to presentation collaborators.
// Every method is a pure function of its inputs.
type Advisor interface {
	ClassifyRisk(profile *PatientProfile) RiskResult
	AssessPrognosis(profile *PatientProfile) *PrognosticAssessment
	ScreeningRecommendations(profile *PatientProfile) []Recommendation
	MonitoringRecommendations(profile *PatientProfile) []Recommendation
	RecommendedTreatment(profile *PatientProfile) *TreatmentPlan
	CheckContraindications(profile *PatientProfile, treatmentKey string) []string
	AssessNintedanibIndication(profile *PatientProfile) *Indication
	Evaluate(profile *PatientProfile) *Report
}

// NarrativeGenerator turns a rendered prompt into free-text narrative.
type NarrativeGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetNarrativeConfig() *NarrativeConfig
	Reload() error
	Validate() error
	IsProduction() bool
	IsDevelopment() bool
}
