// Package service implements the CTD-ILD recommendation engine: risk classification, anti-MDA5
// prognostic scoring, screening and monitoring advice, treatment selection and contraindication checks.
package service

import (
	"github.com/sirupsen/logrus"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

// RecommendationEngine evaluates patient profiles against a knowledge base.
// It holds no per-evaluation state and is safe for concurrent use.
type RecommendationEngine struct {
	logger   *logrus.Logger
	kb       *knowledge.Base
	branches []treatmentBranch
}

var _ domain.Advisor = (*RecommendationEngine)(nil)

// NewRecommendationEngine creates a new recommendation engine
func NewRecommendationEngine(logger *logrus.Logger, kb *knowledge.Base) *RecommendationEngine {
	if kb == nil {
		kb = knowledge.Default()
	}
	return &RecommendationEngine{
		logger:   logger,
		kb:       kb,
		branches: treatmentBranches(),
	}
}

// KnowledgeBase returns the reference tables used by the engine.
func (e *RecommendationEngine) KnowledgeBase() *knowledge.Base {
	return e.kb
}

// ClassifyRisk returns the qualitative ILD risk tier.
func (e *RecommendationEngine) ClassifyRisk(profile *domain.PatientProfile) domain.RiskResult {
	p := orEmpty(profile)
	result := classifyRisk(e.kb, p)
	e.logger.WithFields(logrus.Fields{
		"disease_type": p.DiseaseType,
		"risk_tier":    result.Tier,
		"risk_factors": result.RiskFactorCount,
		"symptoms":     result.SymptomCount,
	}).Debug("Classified ILD risk")
	return result
}

// AssessPrognosis returns the anti-MDA5 prognostic assessment, or nil outside that subgroup.
func (e *RecommendationEngine) AssessPrognosis(profile *domain.PatientProfile) *domain.PrognosticAssessment {
	p := orEmpty(profile)
	a := assessPrognosis(p)
	if a != nil {
		e.logger.WithFields(logrus.Fields{
			"score": a.Score,
			"tier":  a.Tier,
		}).Debug("Assessed anti-MDA5 prognosis")
	}
	return a
}

// ScreeningRecommendations returns the ILD screening list.
func (e *RecommendationEngine) ScreeningRecommendations(profile *domain.PatientProfile) []domain.Recommendation {
	return screeningRecommendations(orEmpty(profile))
}

// MonitoringRecommendations returns the follow-up list for a diagnosed ILD.
func (e *RecommendationEngine) MonitoringRecommendations(profile *domain.PatientProfile) []domain.Recommendation {
	return monitoringRecommendations(orEmpty(profile))
}

// RecommendedTreatment runs the treatment selector. It returns nil when the disease type or the
// ILD status is undetermined.
func (e *RecommendationEngine) RecommendedTreatment(profile *domain.PatientProfile) *domain.TreatmentPlan {
	p := orEmpty(profile)
	plan, branch := selectTreatment(e.kb, e.branches, p)
	if plan == nil {
		return nil
	}

	fields := logrus.Fields{
		"disease_type": p.DiseaseType,
		"ild_status":   p.ILDStatus,
		"branch":       branch,
		"primary":      plan.Primary,
		"status":       plan.Status,
	}
	if plan.Urgent {
		fields["urgency"] = plan.UrgencyLevel
	}
	entry := e.logger.WithFields(fields)
	switch {
	case plan.Status == domain.PlanNoOptionAvailable:
		entry.WithField("skipped", plan.Skipped).Warn("No treatment option available in the registry")
	case len(plan.Skipped) > 0:
		entry.WithField("skipped", plan.Skipped).Warn("Primary treatment missing from registry, fell back to alternative")
	default:
		entry.Debug("Selected treatment")
	}
	return plan
}

// CheckContraindications returns the contraindications of treatmentKey declared by the patient.
func (e *RecommendationEngine) CheckContraindications(profile *domain.PatientProfile, treatmentKey string) []string {
	return checkContraindications(e.kb, orEmpty(profile), treatmentKey)
}

// AssessNintedanibIndication grades the nintedanib indication, or returns nil when undetermined.
func (e *RecommendationEngine) AssessNintedanibIndication(profile *domain.PatientProfile) *domain.Indication {
	return assessNintedanibIndication(e.kb, orEmpty(profile))
}

// Evaluate runs every component on the profile. The primary agent of the plan is checked
// for contraindications.
func (e *RecommendationEngine) Evaluate(profile *domain.PatientProfile) *domain.Report {
	p := orEmpty(profile)

	report := &domain.Report{
		Risk:                     e.ClassifyRisk(p),
		Prognosis:                e.AssessPrognosis(p),
		Screening:                e.ScreeningRecommendations(p),
		Monitoring:               e.MonitoringRecommendations(p),
		Treatment:                e.RecommendedTreatment(p),
		PrimaryContraindications: []string{},
		Nintedanib:               e.AssessNintedanibIndication(p),
	}
	if report.Treatment != nil {
		report.Advisory = report.Treatment.Advisory()
		if report.Treatment.Primary != "" {
			report.PrimaryContraindications = e.CheckContraindications(p, report.Treatment.Primary)
		}
	}

	fields := logrus.Fields{
		"disease_type":    p.DiseaseType,
		"ild_diagnosed":   p.ILDDiagnosed,
		"risk_tier":       report.Risk.Tier,
		"contraindicated": len(report.PrimaryContraindications),
	}
	if report.Prognosis != nil {
		fields["score"] = report.Prognosis.Score
	}
	if report.Treatment != nil {
		fields["primary"] = report.Treatment.Primary
	}
	e.logger.WithFields(fields).Info("Patient evaluation completed")

	return report
}

func orEmpty(p *domain.PatientProfile) *domain.PatientProfile {
	if p == nil {
		return &domain.PatientProfile{}
	}
	return p
}
