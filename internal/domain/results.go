package domain

// RiskResult is the qualitative ILD risk classification.
type RiskResult struct {
	Tier      RiskTier `json:"tier" yaml:"tier"`
	Rationale []string `json:"rationale" yaml:"rationale"`

	// RiskFactorCount includes age over 50 as an implicit factor.
	RiskFactorCount int `json:"risk_factor_count" yaml:"risk_factor_count"`
	SymptomCount    int `json:"symptom_count" yaml:"symptom_count"`
}

// PrognosticAssessment is the anti-MDA5 prognostic score and its interpretation.
type PrognosticAssessment struct {
	Score           int           `json:"score" yaml:"score"`
	RiskFactors     []string      `json:"risk_factors" yaml:"risk_factors"`
	Tier            PrognosisTier `json:"tier" yaml:"tier"`
	MortalityRisk   string        `json:"mortality_risk" yaml:"mortality_risk"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
}

// Recommendation is a screening or monitoring test recommendation.
type Recommendation struct {
	Test           string                 `json:"test" yaml:"test"`
	Recommendation string                 `json:"recommendation" yaml:"recommendation"`
	Strength       RecommendationStrength `json:"strength" yaml:"strength"`
	Description    string                 `json:"description" yaml:"description"`
	Frequency      string                 `json:"frequency,omitempty" yaml:"frequency,omitempty"`
}

// TreatmentPlan is the recommended treatment for a diagnosed ILD.
// Agent lists hold treatment keys from the knowledge base.
type TreatmentPlan struct {
	Status  PlanStatus `json:"status" yaml:"status"`
	Primary string     `json:"primary,omitempty" yaml:"primary,omitempty"`

	// Secondary is an unranked candidate pool; Alternatives is ordered, first most preferred.
	Secondary       []string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Alternatives    []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
	Additional      []string `json:"additional,omitempty" yaml:"additional,omitempty"`
	Contraindicated []string `json:"contraindicated,omitempty" yaml:"contraindicated,omitempty"`

	Urgent       bool         `json:"urgent" yaml:"urgent"`
	UrgencyLevel UrgencyLevel `json:"urgency_level,omitempty" yaml:"urgency_level,omitempty"`

	Combination          CombinationTherapy `json:"combination,omitempty" yaml:"combination,omitempty"`
	CombinationDirective string             `json:"combination_directive,omitempty" yaml:"combination_directive,omitempty"`
	Referral             string             `json:"referral,omitempty" yaml:"referral,omitempty"`

	SteroidAvoidance          SteroidAvoidance `json:"steroid_avoidance,omitempty" yaml:"steroid_avoidance,omitempty"`
	SteroidAvoidanceDirective string           `json:"steroid_avoidance_directive,omitempty" yaml:"steroid_avoidance_directive,omitempty"`

	AntiMDA5Specific   bool   `json:"anti_mda5_specific" yaml:"anti_mda5_specific"`
	EnhancedMonitoring bool   `json:"enhanced_monitoring" yaml:"enhanced_monitoring"`
	MonitoringMode     string `json:"monitoring_mode,omitempty" yaml:"monitoring_mode,omitempty"`

	// Skipped lists agents dropped because they were missing from the treatment registry.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Advisory returns the urgency alert of an urgent plan, or nil.
func (t *TreatmentPlan) Advisory() *UrgencyAdvisory {
	if t == nil || !t.Urgent {
		return nil
	}
	a := t.UrgencyLevel.Advisory()
	if t.AntiMDA5Specific {
		a.Text += " Anti-MDA5 context: upfront triple therapy is strongly recommended."
	}
	return &a
}

// Indication is the outcome of an agent-specific indication assessment.
type Indication struct {
	Agent       string           `json:"agent" yaml:"agent"`
	Status      IndicationStatus `json:"status" yaml:"status"`
	Title       string           `json:"title" yaml:"title"`
	Explanation string           `json:"explanation" yaml:"explanation"`
}

// Report gathers every output of one evaluation. Nil members are inapplicable.
type Report struct {
	Risk                     RiskResult            `json:"risk" yaml:"risk"`
	Prognosis                *PrognosticAssessment `json:"prognosis,omitempty" yaml:"prognosis,omitempty"`
	Screening                []Recommendation      `json:"screening" yaml:"screening"`
	Monitoring               []Recommendation      `json:"monitoring" yaml:"monitoring"`
	Treatment                *TreatmentPlan        `json:"treatment,omitempty" yaml:"treatment,omitempty"`
	Advisory                 *UrgencyAdvisory      `json:"advisory,omitempty" yaml:"advisory,omitempty"`
	PrimaryContraindications []string              `json:"primary_contraindications" yaml:"primary_contraindications"`
	Nintedanib               *Indication           `json:"nintedanib_indication,omitempty" yaml:"nintedanib_indication,omitempty"`
}
