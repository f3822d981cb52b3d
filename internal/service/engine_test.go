package service

import (
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

func newTestEngine(kb *knowledge.Base) *RecommendationEngine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRecommendationEngine(logger, kb)
}

// scenarioB is the anti-MDA5 rapidly progressive reference profile.
func scenarioB() *domain.PatientProfile {
	return &domain.PatientProfile{
		Name:           "Patient B",
		Age:            "65",
		DiseaseType:    domain.Myositis,
		ILDDiagnosed:   true,
		ILDStatus:      domain.ILDRapidlyProgressive,
		AntiMDA5:       domain.SerologyConfirmed,
		Ferritin:       "1600",
		Manifestations: []string{knowledge.ManifestationRapidRespiratoryProgression},
	}
}

func TestRecommendationEngine_Evaluate_ScenarioB(t *testing.T) {
	engine := newTestEngine(nil)
	profile := scenarioB()
	profile.Contraindications = []string{"Active peptic ulcer"}

	report := engine.Evaluate(profile)

	require.NotNil(t, report.Prognosis)
	assert.Equal(t, 8, report.Prognosis.Score)
	assert.Equal(t, domain.PrognosisVeryPoor, report.Prognosis.Tier)
	assert.Equal(t, ">50%", report.Prognosis.MortalityRisk)

	require.NotNil(t, report.Treatment)
	assert.Equal(t, knowledge.KeyMethylprednisolone, report.Treatment.Primary)
	assert.Equal(t, domain.UrgencyExtreme, report.Treatment.UrgencyLevel)

	require.NotNil(t, report.Advisory)
	assert.Equal(t, "LIFE-THREATENING EMERGENCY", report.Advisory.Title)
	assert.Contains(t, report.Advisory.Text, "Anti-MDA5")

	assert.Equal(t, []string{"Active peptic ulcer"}, report.PrimaryContraindications)

	require.NotNil(t, report.Nintedanib)
	assert.Equal(t, domain.NotIndicated, report.Nintedanib.Status)
	assert.Len(t, report.Monitoring, 3)
	assert.Equal(t, domain.RiskHigh, report.Risk.Tier)
}

func TestRecommendationEngine_Evaluate_ScenarioD(t *testing.T) {
	engine := newTestEngine(nil)

	for name, profile := range map[string]*domain.PatientProfile{
		"empty profile": {},
		"nil profile":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			var report *domain.Report
			require.NotPanics(t, func() { report = engine.Evaluate(profile) })

			assert.Equal(t, domain.RiskLow, report.Risk.Tier)
			assert.Nil(t, report.Prognosis)
			assert.Nil(t, report.Treatment)
			assert.Nil(t, report.Advisory)
			assert.Nil(t, report.Nintedanib)
			assert.NotNil(t, report.PrimaryContraindications)
			assert.Empty(t, report.PrimaryContraindications)
			assert.Len(t, report.Screening, 3)
			assert.Empty(t, report.Monitoring)
		})
	}
}

func TestRecommendationEngine_Evaluate_Idempotent(t *testing.T) {
	engine := newTestEngine(nil)
	profile := scenarioB()
	profile.CurrentMedications = []string{"Rituximab"}
	snapshot := scenarioB()
	snapshot.CurrentMedications = []string{"Rituximab"}

	first := engine.Evaluate(profile)
	second := engine.Evaluate(profile)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, profile, "evaluation must not mutate the profile")
}

func TestRecommendationEngine_Evaluate_Concurrent(t *testing.T) {
	engine := newTestEngine(nil)
	want := engine.Evaluate(scenarioB())

	var wg sync.WaitGroup
	results := make([]*domain.Report, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Evaluate(scenarioB())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRecommendationEngine_Evaluate_NoAdvisoryWhenNotUrgent(t *testing.T) {
	engine := newTestEngine(nil)
	report := engine.Evaluate(&domain.PatientProfile{
		DiseaseType:       domain.RheumatoidArthritis,
		ILDDiagnosed:      true,
		ILDStatus:         domain.ILDStable,
		Contraindications: []string{"Pregnancy/breastfeeding"},
	})

	require.NotNil(t, report.Treatment)
	assert.Nil(t, report.Advisory)
	assert.Equal(t, []string{"Pregnancy", "Breastfeeding"}, report.PrimaryContraindications)
	require.NotNil(t, report.Nintedanib)
	assert.Equal(t, domain.Unestablished, report.Nintedanib.Status)
}

func TestNewRecommendationEngine_DefaultKnowledgeBase(t *testing.T) {
	engine := newTestEngine(nil)
	assert.Same(t, knowledge.Default(), engine.KnowledgeBase())
}
