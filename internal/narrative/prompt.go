// Package narrative prepares the JSON snapshot of an evaluation and hands it to an optional
// external text generator. Generated text never flows back into the engine.
package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ctd-ild-mcp-server/internal/domain"
)

// Snapshot is the engine output handed to the narrative generator.
type Snapshot struct {
	Patient            *domain.PatientProfile       `json:"patient"`
	Risk               domain.RiskResult            `json:"risk"`
	AntiMDA5Assessment *domain.PrognosticAssessment `json:"anti_mda5_assessment"`
	Treatment          *domain.TreatmentPlan        `json:"treatment"`
}

// BuildSnapshot evaluates profile with advisor and gathers the outputs used by the prompt.
func BuildSnapshot(profile *domain.PatientProfile, advisor domain.Advisor) Snapshot {
	if profile == nil {
		profile = &domain.PatientProfile{}
	}
	return Snapshot{
		Patient:            profile,
		Risk:               advisor.ClassifyRisk(profile),
		AntiMDA5Assessment: advisor.AssessPrognosis(profile),
		Treatment:          advisor.RecommendedTreatment(profile),
	}
}

const promptHeader = `As a medical expert in rheumatology and pulmonology, write a concise, structured summary for a colleague based on the patient data and recommendations below.

The output must be Markdown and contain:
1. **Patient profile:** a summary of the patient (name, age, connective tissue disease type).
2. **Main issue:** the ILD status and the key diagnostic findings.
3. **Prognostic assessment:** the risk factors and major prognostic elements (anti-MDA5 in particular, when applicable).
4. **Therapeutic strategy:** a summary of the recommended treatment plan.
5. **Conclusion:** one sentence on the importance of follow-up.

Do not include an introduction or a disclaimer. Start directly with the patient profile.

**Patient data and recommendations:**
`

// BuildPrompt renders the instruction prompt embedding the indented JSON snapshot.
func BuildPrompt(s Snapshot) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("```json\n")
	b.Write(data)
	b.WriteString("\n```\n")
	return b.String(), nil
}
