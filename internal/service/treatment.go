package service

import (
	"slices"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

// treatmentBranch is one case of the treatment selector. Branches are evaluated in order and
// the first whose guard matches fully determines the plan.
type treatmentBranch struct {
	Name  string
	Guard func(p *domain.PatientProfile) bool
	Build func(kb *knowledge.Base, p *domain.PatientProfile) *domain.TreatmentPlan
}

// treatmentBranches returns the selector cases in priority order.
func treatmentBranches() []treatmentBranch {
	return []treatmentBranch{
		{
			Name: "rapidly-progressive",
			Guard: func(p *domain.PatientProfile) bool {
				return p.EffectiveILDStatus() == domain.ILDRapidlyProgressive
			},
			Build: rapidlyProgressivePlan,
		},
		{
			Name: "progression",
			Guard: func(p *domain.PatientProfile) bool {
				return p.EffectiveILDStatus() == domain.ILDProgression
			},
			Build: progressionPlan,
		},
		{
			Name:  "stable-anti-mda5",
			Guard: func(p *domain.PatientProfile) bool { return p.InAntiMDA5Subgroup() },
			Build: stableAntiMDA5Plan,
		},
		{
			Name:  "first-line",
			Guard: func(*domain.PatientProfile) bool { return true },
			Build: firstLinePlan,
		},
	}
}

// selectTreatment runs the selector. It returns nil when the disease type or the effective ILD
// status is unset, together with the name of the branch taken.
func selectTreatment(kb *knowledge.Base, branches []treatmentBranch, p *domain.PatientProfile) (*domain.TreatmentPlan, string) {
	if !p.DiseaseType.IsSet() || p.EffectiveILDStatus() == "" {
		return nil, ""
	}
	for _, b := range branches {
		if !b.Guard(p) {
			continue
		}
		plan := b.Build(kb, p)
		if plan == nil {
			return nil, b.Name
		}
		resolvePrimary(kb, plan)
		return plan, b.Name
	}
	return nil, ""
}

// resolvePrimary promotes alternatives while the primary agent is missing from the registry.
func resolvePrimary(kb *knowledge.Base, plan *domain.TreatmentPlan) {
	plan.Status = domain.PlanResolved
	for !kb.HasTreatment(plan.Primary) {
		plan.Skipped = append(plan.Skipped, plan.Primary)
		if len(plan.Alternatives) == 0 {
			plan.Primary = ""
			plan.Alternatives = nil
			plan.Status = domain.PlanNoOptionAvailable
			return
		}
		plan.Primary = plan.Alternatives[0]
		plan.Alternatives = plan.Alternatives[1:]
	}
}

var rapidlyProgressivePool = []string{
	knowledge.KeyRituximab,
	knowledge.KeyCyclophosphamide,
	knowledge.KeyCalcineurinInhibitors,
	knowledge.KeyJAKInhibitors,
	knowledge.KeyIVIg,
}

func rapidlyProgressivePlan(_ *knowledge.Base, p *domain.PatientProfile) *domain.TreatmentPlan {
	positive := p.AntiMDA5.IsPositive()

	plan := &domain.TreatmentPlan{
		Primary:          knowledge.KeyMethylprednisolone,
		Secondary:        slices.Clone(rapidlyProgressivePool),
		Urgent:           true,
		UrgencyLevel:     domain.UrgencyHigh,
		Referral:         "Refer early for lung transplant evaluation.",
		AntiMDA5Specific: positive,
	}

	if positive {
		plan.UrgencyLevel = domain.UrgencyCritical
		plan.Combination = domain.CombinationTriple
		plan.CombinationDirective = "Start triple therapy immediately: IV methylprednisolone pulses with two agents from the secondary pool, typically a calcineurin inhibitor plus rituximab or cyclophosphamide."
	} else {
		plan.Combination = domain.CombinationDouble
		plan.CombinationDirective = "Prefer combination therapy over monotherapy: IV methylprednisolone pulses with at least one agent from the secondary pool."
	}

	if a := assessPrognosis(p); a != nil && a.Score >= veryPoorScore {
		plan.UrgencyLevel = domain.UrgencyExtreme
	}
	return plan
}

// progressionCandidates are ordered per disease type; the first surviving entry becomes primary.
var progressionCandidates = map[domain.DiseaseType][]string{
	domain.SystemicSclerosis: {
		knowledge.KeyMycophenolate,
		knowledge.KeyRituximab,
		knowledge.KeyNintedanib,
		knowledge.KeyTocilizumab,
		knowledge.KeyCyclophosphamide,
	},
	domain.Myositis: {
		knowledge.KeyMycophenolate,
		knowledge.KeyRituximab,
		knowledge.KeyCalcineurinInhibitors,
		knowledge.KeyNintedanib,
		knowledge.KeyCyclophosphamide,
		knowledge.KeyIVIg,
		knowledge.KeyJAKInhibitors,
	},
	domain.MixedConnectiveTissue: {
		knowledge.KeyMycophenolate,
		knowledge.KeyRituximab,
		knowledge.KeyNintedanib,
		knowledge.KeyTocilizumab,
		knowledge.KeyCyclophosphamide,
		knowledge.KeyIVIg,
	},
	domain.RheumatoidArthritis: {
		knowledge.KeyMycophenolate,
		knowledge.KeyRituximab,
		knowledge.KeyNintedanib,
		knowledge.KeyTocilizumab,
		knowledge.KeyCyclophosphamide,
		knowledge.KeyPirfenidone,
	},
	domain.Sjogren: {
		knowledge.KeyMycophenolate,
		knowledge.KeyRituximab,
		knowledge.KeyNintedanib,
		knowledge.KeyCyclophosphamide,
	},
}

func progressionPlan(kb *knowledge.Base, p *domain.PatientProfile) *domain.TreatmentPlan {
	candidates, ok := progressionCandidates[p.DiseaseType]
	if !ok {
		return nil
	}

	inUse := make(map[string]bool, len(p.CurrentMedications))
	for _, med := range p.CurrentMedications {
		if key, ok := kb.ResolveMedication(med); ok {
			inUse[key] = true
		}
	}
	remaining := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !inUse[c] {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		remaining = slices.Clone(candidates)
	}

	plan := &domain.TreatmentPlan{
		Primary:                   remaining[0],
		Alternatives:              remaining[1:],
		SteroidAvoidance:          domain.SteroidAvoidanceConditional,
		SteroidAvoidanceDirective: "Glucocorticoids are conditionally discouraged. Use the lowest dose for the shortest duration.",
		Referral:                  "Refer for lung transplant evaluation or advanced therapy.",
		AntiMDA5Specific:          p.InAntiMDA5Subgroup(),
	}
	if p.DiseaseType == domain.SystemicSclerosis {
		plan.SteroidAvoidance = domain.SteroidAvoidanceStrong
		plan.SteroidAvoidanceDirective = "Avoid glucocorticoids: they increase the risk of scleroderma renal crisis."
		plan.Referral = "Refer for lung transplant evaluation or autologous haematopoietic stem-cell transplantation."
	}
	return plan
}

func stableAntiMDA5Plan(_ *knowledge.Base, _ *domain.PatientProfile) *domain.TreatmentPlan {
	return &domain.TreatmentPlan{
		Primary: knowledge.KeyMycophenolate,
		Alternatives: []string{
			knowledge.KeyCalcineurinInhibitors,
			knowledge.KeyRituximab,
			knowledge.KeyJAKInhibitors,
		},
		Additional:         []string{knowledge.KeyGlucocorticoids},
		EnhancedMonitoring: true,
		AntiMDA5Specific:   true,
		MonitoringMode:     "intensive",
	}
}

type firstLineEntry struct {
	primary         string
	alternatives    []string
	additional      []string
	contraindicated []string
}

var firstLineTable = map[domain.DiseaseType]firstLineEntry{
	domain.SystemicSclerosis: {
		primary:         knowledge.KeyMycophenolate,
		alternatives:    []string{knowledge.KeyNintedanib, knowledge.KeyCyclophosphamide, knowledge.KeyTocilizumab, knowledge.KeyRituximab},
		contraindicated: []string{knowledge.KeyGlucocorticoids},
	},
	domain.Myositis: {
		primary:      knowledge.KeyMycophenolate,
		alternatives: []string{knowledge.KeyAzathioprine, knowledge.KeyRituximab, knowledge.KeyCalcineurinInhibitors, knowledge.KeyJAKInhibitors},
		additional:   []string{knowledge.KeyGlucocorticoids},
	},
	domain.RheumatoidArthritis: {
		primary:      knowledge.KeyMycophenolate,
		alternatives: []string{knowledge.KeyAzathioprine, knowledge.KeyRituximab, knowledge.KeyAbatacept, knowledge.KeyCyclophosphamide},
		additional:   []string{knowledge.KeyGlucocorticoids},
	},
	domain.MixedConnectiveTissue: {
		primary:      knowledge.KeyMycophenolate,
		alternatives: []string{knowledge.KeyAzathioprine, knowledge.KeyRituximab, knowledge.KeyCyclophosphamide, knowledge.KeyTocilizumab},
		additional:   []string{knowledge.KeyGlucocorticoids},
	},
	domain.Sjogren: {
		primary:      knowledge.KeyMycophenolate,
		alternatives: []string{knowledge.KeyAzathioprine, knowledge.KeyRituximab, knowledge.KeyCyclophosphamide},
		additional:   []string{knowledge.KeyGlucocorticoids},
	},
}

func firstLinePlan(_ *knowledge.Base, p *domain.PatientProfile) *domain.TreatmentPlan {
	entry, ok := firstLineTable[p.DiseaseType]
	if !ok {
		return nil
	}
	return &domain.TreatmentPlan{
		Primary:         entry.primary,
		Alternatives:    slices.Clone(entry.alternatives),
		Additional:      slices.Clone(entry.additional),
		Contraindicated: slices.Clone(entry.contraindicated),
	}
}
