package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/narrative"
)

type contraindicationsRequest struct {
	Profile      domain.PatientProfile `json:"profile"`
	TreatmentKey string                `json:"treatment_key"`
}

// bindProfile decodes and validates the patient profile in the request body.
func (s *Server) bindProfile(c *gin.Context, profile *domain.PatientProfile) bool {
	if err := c.ShouldBindJSON(profile); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Invalid request body", err.Error())
		return false
	}
	return s.validProfile(c, profile)
}

func (s *Server) validProfile(c *gin.Context, profile *domain.PatientProfile) bool {
	if err := profile.Validate(); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrCodeValidation, "Invalid patient profile", err.Error())
		return false
	}
	return true
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var profile domain.PatientProfile
	if !s.bindProfile(c, &profile) {
		return
	}
	c.JSON(http.StatusOK, s.advisor.Evaluate(&profile))
}

func (s *Server) handleRisk(c *gin.Context) {
	var profile domain.PatientProfile
	if !s.bindProfile(c, &profile) {
		return
	}
	c.JSON(http.StatusOK, s.advisor.ClassifyRisk(&profile))
}

func (s *Server) handlePrognosis(c *gin.Context) {
	var profile domain.PatientProfile
	if !s.bindProfile(c, &profile) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": s.advisor.AssessPrognosis(&profile)})
}

func (s *Server) handleScreening(c *gin.Context) {
	var profile domain.PatientProfile
	if !s.bindProfile(c, &profile) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": s.advisor.ScreeningRecommendations(&profile)})
}

func (s *Server) handleMonitoring(c *gin.Context) {
	var profile domain.PatientProfile
	if !s.bindProfile(c, &profile) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": s.advisor.MonitoringRecommendations(&profile)})
}

func (s *Server) handleTreatment(c *gin.Context) {
	var profile domain.PatientProfile
	if !s.bindProfile(c, &profile) {
		return
	}
	plan := s.advisor.RecommendedTreatment(&profile)
	c.JSON(http.StatusOK, gin.H{
		"plan":     plan,
		"advisory": plan.Advisory(),
	})
}

func (s *Server) handleContraindications(c *gin.Context) {
	var req contraindicationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Invalid request body", err.Error())
		return
	}
	if !s.validProfile(c, &req.Profile) {
		return
	}
	if req.TreatmentKey == "" {
		s.respondError(c, http.StatusBadRequest, domain.ErrCodeValidation, "treatment_key is required", "")
		return
	}

	// Unknown keys are not an error: they simply match nothing.
	c.JSON(http.StatusOK, gin.H{
		"treatment_key":     req.TreatmentKey,
		"contraindications": s.advisor.CheckContraindications(&req.Profile, req.TreatmentKey),
	})
}

func (s *Server) handleNintedanib(c *gin.Context) {
	var profile domain.PatientProfile
	if !s.bindProfile(c, &profile) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"indication": s.advisor.AssessNintedanibIndication(&profile)})
}

func (s *Server) handleNarrativePrompt(c *gin.Context) {
	var profile domain.PatientProfile
	if !s.bindProfile(c, &profile) {
		return
	}
	prompt, err := narrative.BuildPrompt(narrative.BuildSnapshot(&profile, s.advisor))
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, domain.ErrCodeInternal, "Failed to build prompt", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}

// handleNarrative dispatches generation and waits for it while the request is alive.
// A generation outliving the request still completes and is logged.
func (s *Server) handleNarrative(c *gin.Context) {
	if s.dispatcher == nil {
		s.respondError(c, http.StatusServiceUnavailable, domain.ErrCodeUnavailable, "Narrative generation is disabled", "")
		return
	}

	var profile domain.PatientProfile
	if !s.bindProfile(c, &profile) {
		return
	}
	prompt, err := narrative.BuildPrompt(narrative.BuildSnapshot(&profile, s.advisor))
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, domain.ErrCodeInternal, "Failed to build prompt", err.Error())
		return
	}

	select {
	case result := <-s.dispatcher.Dispatch(prompt):
		switch {
		case errors.Is(result.Err, domain.ErrNarrativeDisabled):
			s.respondError(c, http.StatusServiceUnavailable, domain.ErrCodeUnavailable, "Narrative generation is disabled", "")
		case result.Err != nil:
			s.respondError(c, http.StatusBadGateway, domain.ErrCodeExternalAPI, "Narrative generation failed", result.Err.Error())
		default:
			c.JSON(http.StatusOK, gin.H{
				"request_id": result.RequestID,
				"narrative":  result.Text,
			})
		}
	case <-c.Request.Context().Done():
		s.respondError(c, http.StatusGatewayTimeout, domain.ErrCodeExternalAPI, "Narrative generation timed out", "")
	}
}

func (s *Server) handleListTreatments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"treatments": s.kb.Treatments()})
}

func (s *Server) handleGetTreatment(c *gin.Context) {
	key := c.Param("key")
	treatment, ok := s.kb.Treatment(key)
	if !ok {
		s.respondError(c, http.StatusNotFound, domain.ErrCodeNotFound, "Unknown treatment", key)
		return
	}
	c.JSON(http.StatusOK, treatment)
}

func (s *Server) handleDiseaseTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"disease_types": s.kb.DiseaseTypes()})
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.kb.Options())
}
