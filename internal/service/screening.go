package service

import (
	"github.com/ctd-ild-mcp-server/internal/domain"
)

const (
	testPFT  = "Pulmonary function tests (PFT)"
	testHRCT = "High-resolution chest CT (HRCT)"
	test6MWT = "Six-minute walk test (6MWT)"
)

// screeningRecommendations returns the ILD screening list. It applies to undiagnosed patients
// and to any patient with a known disease type.
func screeningRecommendations(p *domain.PatientProfile) []domain.Recommendation {
	if p.ILDDiagnosed && !p.DiseaseType.IsSet() {
		return []domain.Recommendation{}
	}
	return []domain.Recommendation{
		{
			Test:           testPFT,
			Recommendation: "Spirometry, lung volumes and DLCO",
			Strength:       domain.ConditionalFor,
			Description:    "Conditionally recommended for ILD screening in patients at increased risk",
		},
		{
			Test:           testHRCT,
			Recommendation: "Chest HRCT",
			Strength:       domain.ConditionalFor,
			Description:    "Conditionally recommended for ILD screening in patients at increased risk",
		},
		{
			Test:           "HRCT + PFT",
			Recommendation: "Combined screening",
			Strength:       domain.StrongFor,
			Description:    "Combining HRCT with PFT is preferred over either test alone",
		},
	}
}

// monitoringRecommendations returns the follow-up list for a diagnosed ILD.
func monitoringRecommendations(p *domain.PatientProfile) []domain.Recommendation {
	if !p.ILDDiagnosed {
		return []domain.Recommendation{}
	}

	pftFrequency := "Every 6-12 months for the first year, then spaced out if stable"
	if p.DiseaseType == domain.Myositis || p.DiseaseType == domain.SystemicSclerosis {
		pftFrequency = "Every 3-6 months for the first year, then spaced out if stable"
	}

	return []domain.Recommendation{
		{
			Test:           testPFT,
			Recommendation: "Spirometry, lung volumes and DLCO",
			Strength:       domain.ConditionalFor,
			Description:    "Serial PFT to detect functional decline",
			Frequency:      pftFrequency,
		},
		{
			Test:           testHRCT,
			Recommendation: "Follow-up chest HRCT",
			Strength:       domain.ConditionalFor,
			Description:    "Repeat imaging to assess fibrosis extent",
			Frequency:      "At 1-2 years if stable, or on clinical or functional decline",
		},
		{
			Test:           test6MWT,
			Recommendation: "Walk distance with oxygen saturation",
			Strength:       domain.ConditionalFor,
			Description:    "Detects exertional desaturation",
			Frequency:      "Every 6-12 months",
		},
	}
}
