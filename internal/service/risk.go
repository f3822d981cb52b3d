package service

import (
	"fmt"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

// Risk classification thresholds.
const (
	implicitRiskFactorAge = 50
	highRiskFactorCount   = 3
	highRiskSymptomCount  = 2
)

// classifyRisk derives the qualitative ILD risk tier. The high-tier disjunction is evaluated
// first and the first matching tier wins.
func classifyRisk(kb *knowledge.Base, p *domain.PatientProfile) domain.RiskResult {
	factors := len(p.RiskFactors)
	if p.Age.Exceeds(implicitRiskFactorAge) {
		factors++
	}
	symptoms := len(p.Symptoms)

	baseline := domain.RiskTier("")
	label := p.DiseaseType.String()
	if info, ok := kb.DiseaseType(p.DiseaseType); ok {
		baseline = info.Baseline
		label = info.Label
	}

	result := domain.RiskResult{
		RiskFactorCount: factors,
		SymptomCount:    symptoms,
	}

	var high []string
	if baseline == domain.RiskHigh {
		high = append(high, fmt.Sprintf("%s carries a high baseline ILD risk", label))
	}
	if factors >= highRiskFactorCount {
		high = append(high, fmt.Sprintf("%d risk factors (age over %d counts as one)", factors, implicitRiskFactorAge))
	}
	if symptoms >= highRiskSymptomCount {
		high = append(high, fmt.Sprintf("%d suggestive symptoms", symptoms))
	}
	if p.DiseaseType == domain.Myositis && p.AntiMDA5 == domain.SerologyConfirmed {
		high = append(high, "Myositis with confirmed anti-MDA5 antibodies")
	}
	if len(high) > 0 {
		result.Tier = domain.RiskHigh
		result.Rationale = high
		return result
	}

	var moderate []string
	if baseline == domain.RiskModerate {
		moderate = append(moderate, fmt.Sprintf("%s carries a moderate baseline ILD risk", label))
	}
	if factors >= 1 {
		moderate = append(moderate, fmt.Sprintf("%d risk factor(s) (age over %d counts as one)", factors, implicitRiskFactorAge))
	}
	if symptoms >= 1 {
		moderate = append(moderate, fmt.Sprintf("%d suggestive symptom(s)", symptoms))
	}
	if len(moderate) > 0 {
		result.Tier = domain.RiskModerate
		result.Rationale = moderate
		return result
	}

	result.Tier = domain.RiskLow
	result.Rationale = []string{"No risk trigger identified"}
	return result
}
