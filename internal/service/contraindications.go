package service

import (
	"strings"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

// checkContraindications keeps each contraindication of the treatment that appears, case-insensitively,
// inside at least one of the patient's declared contraindications. Unknown keys yield an empty list.
func checkContraindications(kb *knowledge.Base, p *domain.PatientProfile, treatmentKey string) []string {
	matched := []string{}
	t, ok := kb.Treatment(treatmentKey)
	if !ok {
		return matched
	}
	for _, c := range t.Contraindications {
		needle := strings.ToLower(c)
		for _, pc := range p.Contraindications {
			if strings.Contains(strings.ToLower(pc), needle) {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched
}
