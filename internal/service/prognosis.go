package service

import (
	"slices"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

// Prognostic score weights and thresholds for the anti-MDA5 subgroup.
const (
	manifestationWeight = 2

	ferritinVeryHigh       = 1500
	ferritinVeryHighWeight = 2
	ferritinHigh           = 500
	ferritinHighWeight     = 1

	prognosisAge       = 60
	prognosisAgeWeight = 1

	rapidlyProgressiveWeight = 3

	veryPoorScore = 6
	poorScore     = 4
	reservedScore = 2
)

type prognosisBand struct {
	tier            domain.PrognosisTier
	mortality       string
	recommendations []string
}

// prognosisBands is ordered from the highest minimum score down.
var prognosisBands = []struct {
	minScore int
	band     prognosisBand
}{
	{veryPoorScore, prognosisBand{
		tier:      domain.PrognosisVeryPoor,
		mortality: ">50%",
		recommendations: []string{
			"Start triple therapy urgently (glucocorticoids + calcineurin inhibitor + rituximab or cyclophosphamide)",
			"Admit to intensive care or continuous monitoring unit",
			"Discuss lung transplantation urgently",
		},
	}},
	{poorScore, prognosisBand{
		tier:      domain.PrognosisPoor,
		mortality: "30-50%",
		recommendations: []string{
			"Triple therapy strongly recommended",
			"Hospitalise for close monitoring",
			"Refer to pulmonology immediately",
		},
	}},
	{reservedScore, prognosisBand{
		tier:      domain.PrognosisReserved,
		mortality: "10-30%",
		recommendations: []string{
			"Discuss double or triple therapy",
			"Weekly surveillance",
			"Rapid pulmonology referral",
		},
	}},
	{0, prognosisBand{
		tier:      domain.PrognosisGood,
		mortality: "<10%",
		recommendations: []string{
			"Maintenance therapy (e.g. mycophenolate mofetil)",
			"Monthly surveillance",
			"Educate the patient on warning signs",
		},
	}},
}

// assessPrognosis scores the anti-MDA5 subgroup. It returns nil for every other profile.
func assessPrognosis(p *domain.PatientProfile) *domain.PrognosticAssessment {
	if !p.InAntiMDA5Subgroup() {
		return nil
	}

	score := 0
	factors := []string{}

	for _, m := range knowledge.HighRiskManifestations {
		if slices.Contains(p.Manifestations, m) {
			score += manifestationWeight
			factors = append(factors, m)
		}
	}

	switch {
	case p.Ferritin.Exceeds(ferritinVeryHigh):
		score += ferritinVeryHighWeight
		factors = append(factors, "Ferritin > 1500 ng/mL")
	case p.Ferritin.Exceeds(ferritinHigh):
		score += ferritinHighWeight
		factors = append(factors, "Ferritin > 500 ng/mL")
	}

	if p.Age.Exceeds(prognosisAge) {
		score += prognosisAgeWeight
		factors = append(factors, "Age > 60 years")
	}

	if p.EffectiveILDStatus() == domain.ILDRapidlyProgressive {
		score += rapidlyProgressiveWeight
		factors = append(factors, "Rapidly progressive ILD")
	}

	band := bandFor(score)
	return &domain.PrognosticAssessment{
		Score:           score,
		RiskFactors:     factors,
		Tier:            band.tier,
		MortalityRisk:   band.mortality,
		Recommendations: slices.Clone(band.recommendations),
	}
}

func bandFor(score int) prognosisBand {
	for _, b := range prognosisBands {
		if score >= b.minScore {
			return b.band
		}
	}
	return prognosisBands[len(prognosisBands)-1].band
}
