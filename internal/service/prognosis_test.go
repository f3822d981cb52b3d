package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

func antiMDA5Profile() domain.PatientProfile {
	return domain.PatientProfile{
		DiseaseType: domain.Myositis,
		AntiMDA5:    domain.SerologySuspected,
	}
}

func TestAssessPrognosis_OutsideSubgroup(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.PatientProfile
	}{
		{"unset disease type", domain.PatientProfile{AntiMDA5: domain.SerologyConfirmed}},
		{"systemic sclerosis", domain.PatientProfile{DiseaseType: domain.SystemicSclerosis, AntiMDA5: domain.SerologyConfirmed}},
		{"myositis negative", domain.PatientProfile{DiseaseType: domain.Myositis, AntiMDA5: domain.SerologyNegative}},
		{"myositis unknown", domain.PatientProfile{DiseaseType: domain.Myositis, AntiMDA5: domain.SerologyUnknown}},
		{"myositis unset", domain.PatientProfile{DiseaseType: domain.Myositis}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, assessPrognosis(&tt.profile))
		})
	}
}

func TestAssessPrognosis_Score(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *domain.PatientProfile)
		wantScore int
		wantTier  domain.PrognosisTier
		wantBand  string
	}{
		{
			name:      "no contribution",
			mutate:    func(*domain.PatientProfile) {},
			wantScore: 0,
			wantTier:  domain.PrognosisGood,
			wantBand:  "<10%",
		},
		{
			name:      "ferritin exactly 500 does not count",
			mutate:    func(p *domain.PatientProfile) { p.Ferritin = "500" },
			wantScore: 0,
			wantTier:  domain.PrognosisGood,
			wantBand:  "<10%",
		},
		{
			name:      "ferritin 501",
			mutate:    func(p *domain.PatientProfile) { p.Ferritin = "501" },
			wantScore: 1,
			wantTier:  domain.PrognosisGood,
			wantBand:  "<10%",
		},
		{
			name:      "ferritin exactly 1500 stays in the lower band",
			mutate:    func(p *domain.PatientProfile) { p.Ferritin = "1500" },
			wantScore: 1,
			wantTier:  domain.PrognosisGood,
			wantBand:  "<10%",
		},
		{
			name:      "ferritin 1501",
			mutate:    func(p *domain.PatientProfile) { p.Ferritin = "1501" },
			wantScore: 2,
			wantTier:  domain.PrognosisReserved,
			wantBand:  "10-30%",
		},
		{
			name:      "ferritin with unit suffix",
			mutate:    func(p *domain.PatientProfile) { p.Ferritin = "1600 ng/mL" },
			wantScore: 2,
			wantTier:  domain.PrognosisReserved,
			wantBand:  "10-30%",
		},
		{
			name:      "unparseable ferritin is ignored",
			mutate:    func(p *domain.PatientProfile) { p.Ferritin = "n/a" },
			wantScore: 0,
			wantTier:  domain.PrognosisGood,
			wantBand:  "<10%",
		},
		{
			name:      "age exactly 60 does not count",
			mutate:    func(p *domain.PatientProfile) { p.Age = "60" },
			wantScore: 0,
			wantTier:  domain.PrognosisGood,
			wantBand:  "<10%",
		},
		{
			name: "duplicate manifestation counts once",
			mutate: func(p *domain.PatientProfile) {
				p.Manifestations = []string{knowledge.ManifestationSkinUlcerations, knowledge.ManifestationSkinUlcerations, "Alopecia"}
			},
			wantScore: 2,
			wantTier:  domain.PrognosisReserved,
			wantBand:  "10-30%",
		},
		{
			name: "score 5 is poor",
			mutate: func(p *domain.PatientProfile) {
				p.Manifestations = []string{knowledge.ManifestationSkinUlcerations, knowledge.ManifestationRapidRespiratoryProgression}
				p.Ferritin = "600"
			},
			wantScore: 5,
			wantTier:  domain.PrognosisPoor,
			wantBand:  "30-50%",
		},
		{
			name: "score 6 is very poor",
			mutate: func(p *domain.PatientProfile) {
				p.Manifestations = []string{knowledge.ManifestationSkinUlcerations, knowledge.ManifestationRapidRespiratoryProgression}
				p.Ferritin = "1600"
			},
			wantScore: 6,
			wantTier:  domain.PrognosisVeryPoor,
			wantBand:  ">50%",
		},
		{
			name: "rapidly progressive status",
			mutate: func(p *domain.PatientProfile) {
				p.ILDDiagnosed = true
				p.ILDStatus = domain.ILDRapidlyProgressive
			},
			wantScore: 3,
			wantTier:  domain.PrognosisReserved,
			wantBand:  "10-30%",
		},
		{
			name: "status ignored without a diagnosed ILD",
			mutate: func(p *domain.PatientProfile) {
				p.ILDStatus = domain.ILDRapidlyProgressive
			},
			wantScore: 0,
			wantTier:  domain.PrognosisGood,
			wantBand:  "<10%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := antiMDA5Profile()
			tt.mutate(&p)

			got := assessPrognosis(&p)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantBand, got.MortalityRisk)
			assert.Len(t, got.Recommendations, 3)
		})
	}
}

func TestAssessPrognosis_ScenarioB(t *testing.T) {
	got := assessPrognosis(scenarioB())
	require.NotNil(t, got)

	assert.Equal(t, 8, got.Score)
	assert.Equal(t, domain.PrognosisVeryPoor, got.Tier)
	assert.Equal(t, ">50%", got.MortalityRisk)
	assert.Equal(t, []string{
		knowledge.ManifestationRapidRespiratoryProgression,
		"Ferritin > 1500 ng/mL",
		"Age > 60 years",
		"Rapidly progressive ILD",
	}, got.RiskFactors)
}

func TestAssessPrognosis_RecommendationsAreFresh(t *testing.T) {
	p := antiMDA5Profile()
	first := assessPrognosis(&p)
	first.Recommendations[0] = "changed"

	second := assessPrognosis(&p)
	assert.NotEqual(t, "changed", second.Recommendations[0])
}
