package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
	"github.com/ctd-ild-mcp-server/internal/narrative"
)

// ContraindicationsParams defines parameters for the check_contraindications tool
type ContraindicationsParams struct {
	Profile      domain.PatientProfile `json:"profile" jsonschema:"the patient profile"`
	TreatmentKey string                `json:"treatment_key" jsonschema:"treatment key such as rituximab or nintedanib"`
}

// TreatmentInfoParams defines parameters for the get_treatment_info tool
type TreatmentInfoParams struct {
	TreatmentKey string `json:"treatment_key,omitempty" jsonschema:"treatment key; omit to list every treatment"`
}

// ListOptionsParams defines parameters for the list_options tool
type ListOptionsParams struct{}

// PrognosisResult wraps the optional prognostic assessment.
type PrognosisResult struct {
	Applicable bool                         `json:"applicable"`
	Assessment *domain.PrognosticAssessment `json:"assessment"`
}

// RecommendationsResult wraps screening or monitoring recommendations.
type RecommendationsResult struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// TreatmentResult wraps the optional treatment plan and its urgency advisory.
type TreatmentResult struct {
	Plan     *domain.TreatmentPlan   `json:"plan"`
	Advisory *domain.UrgencyAdvisory `json:"advisory,omitempty"`
}

// ContraindicationsResult lists matched contraindications for one treatment.
type ContraindicationsResult struct {
	TreatmentKey      string   `json:"treatment_key"`
	TreatmentName     string   `json:"treatment_name"`
	Contraindications []string `json:"contraindications"`
}

// IndicationResult wraps the optional nintedanib indication.
type IndicationResult struct {
	Indication *domain.Indication `json:"indication"`
}

// TreatmentInfoResult holds one or all treatment records.
type TreatmentInfoResult struct {
	Treatments []knowledge.Treatment `json:"treatments"`
}

// OptionsResult gathers the reference lists offered to form clients.
type OptionsResult struct {
	DiseaseTypes []knowledge.DiseaseTypeInfo `json:"disease_types"`
	Options      knowledge.Options           `json:"options"`
}

// SummaryResult holds a rendered prompt or a generated narrative.
type SummaryResult struct {
	Prompt    string `json:"prompt,omitempty"`
	Narrative string `json:"narrative,omitempty"`
}

func (s *Server) handleClassifyRisk(ctx context.Context, req *mcp.CallToolRequest, profile domain.PatientProfile) (*mcp.CallToolResult, any, error) {
	if res := s.validate("classify_risk", &profile); res != nil {
		return res, nil, nil
	}
	return s.jsonResult(s.advisor.ClassifyRisk(&profile))
}

func (s *Server) handleAssessPrognosis(ctx context.Context, req *mcp.CallToolRequest, profile domain.PatientProfile) (*mcp.CallToolResult, any, error) {
	if res := s.validate("assess_prognosis", &profile); res != nil {
		return res, nil, nil
	}
	assessment := s.advisor.AssessPrognosis(&profile)
	return s.jsonResult(PrognosisResult{Applicable: assessment != nil, Assessment: assessment})
}

func (s *Server) handleScreening(ctx context.Context, req *mcp.CallToolRequest, profile domain.PatientProfile) (*mcp.CallToolResult, any, error) {
	if res := s.validate("get_screening_recommendations", &profile); res != nil {
		return res, nil, nil
	}
	return s.jsonResult(RecommendationsResult{Recommendations: s.advisor.ScreeningRecommendations(&profile)})
}

func (s *Server) handleMonitoring(ctx context.Context, req *mcp.CallToolRequest, profile domain.PatientProfile) (*mcp.CallToolResult, any, error) {
	if res := s.validate("get_monitoring_recommendations", &profile); res != nil {
		return res, nil, nil
	}
	return s.jsonResult(RecommendationsResult{Recommendations: s.advisor.MonitoringRecommendations(&profile)})
}

func (s *Server) handleTreatment(ctx context.Context, req *mcp.CallToolRequest, profile domain.PatientProfile) (*mcp.CallToolResult, any, error) {
	if res := s.validate("get_recommended_treatment", &profile); res != nil {
		return res, nil, nil
	}
	plan := s.advisor.RecommendedTreatment(&profile)
	return s.jsonResult(TreatmentResult{Plan: plan, Advisory: plan.Advisory()})
}

func (s *Server) handleContraindications(ctx context.Context, req *mcp.CallToolRequest, params ContraindicationsParams) (*mcp.CallToolResult, any, error) {
	if res := s.validate("check_contraindications", &params.Profile); res != nil {
		return res, nil, nil
	}
	if params.TreatmentKey == "" {
		return s.createErrorResult("Missing required parameter", fmt.Errorf("treatment_key is required")), nil, nil
	}
	return s.jsonResult(ContraindicationsResult{
		TreatmentKey:      params.TreatmentKey,
		TreatmentName:     s.kb.TreatmentName(params.TreatmentKey),
		Contraindications: s.advisor.CheckContraindications(&params.Profile, params.TreatmentKey),
	})
}

func (s *Server) handleNintedanib(ctx context.Context, req *mcp.CallToolRequest, profile domain.PatientProfile) (*mcp.CallToolResult, any, error) {
	if res := s.validate("assess_nintedanib_indication", &profile); res != nil {
		return res, nil, nil
	}
	return s.jsonResult(IndicationResult{Indication: s.advisor.AssessNintedanibIndication(&profile)})
}

func (s *Server) handleEvaluate(ctx context.Context, req *mcp.CallToolRequest, profile domain.PatientProfile) (*mcp.CallToolResult, any, error) {
	if res := s.validate("evaluate_patient", &profile); res != nil {
		return res, nil, nil
	}
	return s.jsonResult(s.advisor.Evaluate(&profile))
}

func (s *Server) handleTreatmentInfo(ctx context.Context, req *mcp.CallToolRequest, params TreatmentInfoParams) (*mcp.CallToolResult, any, error) {
	if params.TreatmentKey == "" {
		return s.jsonResult(TreatmentInfoResult{Treatments: s.kb.Treatments()})
	}
	treatment, ok := s.kb.Treatment(params.TreatmentKey)
	if !ok {
		return s.createErrorResult("Unknown treatment", fmt.Errorf("%w: %s", domain.ErrNotFound, params.TreatmentKey)), nil, nil
	}
	return s.jsonResult(TreatmentInfoResult{Treatments: []knowledge.Treatment{treatment}})
}

func (s *Server) handleListOptions(ctx context.Context, req *mcp.CallToolRequest, _ ListOptionsParams) (*mcp.CallToolResult, any, error) {
	return s.jsonResult(OptionsResult{
		DiseaseTypes: s.kb.DiseaseTypes(),
		Options:      s.kb.Options(),
	})
}

func (s *Server) handleBuildPrompt(ctx context.Context, req *mcp.CallToolRequest, profile domain.PatientProfile) (*mcp.CallToolResult, any, error) {
	if res := s.validate("build_summary_prompt", &profile); res != nil {
		return res, nil, nil
	}
	prompt, err := narrative.BuildPrompt(narrative.BuildSnapshot(&profile, s.advisor))
	if err != nil {
		return s.createErrorResult("Failed to build prompt", err), nil, nil
	}
	return s.textResult(prompt, SummaryResult{Prompt: prompt})
}

func (s *Server) handleGenerateSummary(ctx context.Context, req *mcp.CallToolRequest, profile domain.PatientProfile) (*mcp.CallToolResult, any, error) {
	if res := s.validate("generate_summary", &profile); res != nil {
		return res, nil, nil
	}
	prompt, err := narrative.BuildPrompt(narrative.BuildSnapshot(&profile, s.advisor))
	if err != nil {
		return s.createErrorResult("Failed to build prompt", err), nil, nil
	}

	text, err := s.generator.Generate(ctx, prompt)
	if errors.Is(err, domain.ErrNarrativeDisabled) {
		return s.createErrorResult("Narrative generation is disabled", nil), nil, nil
	}
	if err != nil {
		return s.createErrorResult("Narrative generation failed", err), nil, nil
	}
	return s.textResult(text, SummaryResult{Narrative: text})
}

// validate returns an error result when the profile carries unknown enumerated values.
func (s *Server) validate(tool string, profile *domain.PatientProfile) *mcp.CallToolResult {
	s.logger.WithField("tool", tool).Debug("Tool invoked")
	if err := profile.Validate(); err != nil {
		s.logger.WithFields(logrus.Fields{
			"tool":  tool,
			"error": err.Error(),
		}).Warn("Rejected invalid patient profile")
		return s.createErrorResult("Invalid patient profile", err)
	}
	return nil
}

// jsonResult renders v as indented JSON text and returns it as structured output too.
func (s *Server) jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s.createErrorResult("Failed to encode result", err), nil, nil
	}
	return s.textResult(string(data), v)
}

func (s *Server) textResult(text string, output any) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, output, nil
}

// createErrorResult creates a standardized error result for tool calls
func (s *Server) createErrorResult(message string, err error) *mcp.CallToolResult {
	errorText := fmt.Sprintf("Error: %s", message)
	if err != nil {
		errorText += fmt.Sprintf(" - %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: errorText},
		},
		IsError: true,
	}
}
