package service

import (
	"fmt"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

// assessNintedanibIndication grades the antifibrotic indication for a diagnosed ILD.
func assessNintedanibIndication(kb *knowledge.Base, p *domain.PatientProfile) *domain.Indication {
	status := p.EffectiveILDStatus()
	if !p.DiseaseType.IsSet() || status == "" {
		return nil
	}

	label := p.DiseaseType.String()
	if info, ok := kb.DiseaseType(p.DiseaseType); ok {
		label = info.Label
	}
	ind := &domain.Indication{Agent: knowledge.KeyNintedanib}

	switch status {
	case domain.ILDRapidlyProgressive:
		ind.Status = domain.NotIndicated
		ind.Title = "Nintedanib not indicated in rapidly progressive ILD"
		ind.Explanation = "Rapidly progressive ILD calls for urgent immunosuppression. An antifibrotic is not the priority."
	case domain.ILDProgression:
		ind.Status = domain.Indicated
		ind.Title = "Nintedanib indicated for progressive fibrosing ILD"
		ind.Explanation = "Nintedanib is recommended for progressive pulmonary fibrosis despite immunosuppression."
		if p.DiseaseType == domain.Sjogren {
			ind.Explanation += " In SjD-ILD the decision depends on the extent of fibrosis on HRCT."
		}
	default:
		switch p.DiseaseType {
		case domain.SystemicSclerosis:
			ind.Status = domain.Indicated
			ind.Title = "Nintedanib indicated"
			ind.Explanation = "Nintedanib is a first-line option for SSc-ILD, alone or with mycophenolate."
		case domain.RheumatoidArthritis:
			ind.Status = domain.Unestablished
			ind.Title = "Nintedanib indication not established"
			ind.Explanation = "Evidence for first-line nintedanib in RA-ILD is limited. Reserve it for progressive fibrosing disease."
		default:
			ind.Status = domain.NotIndicated
			ind.Title = "Nintedanib not indicated first-line"
			ind.Explanation = fmt.Sprintf("First-line nintedanib is not recommended for %s. Reconsider if fibrosis progresses.", label)
		}
	}
	return ind
}
