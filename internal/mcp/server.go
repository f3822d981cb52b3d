// Package mcp exposes the recommendation engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/ctd-ild-mcp-server/internal/config"
	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
)

const (
	serverName    = "ctd-ild-mcp-server"
	serverVersion = "v0.1.0"
)

// Server is the MCP server wrapping the recommendation engine.
type Server struct {
	config    *config.LiteConfig
	mcpServer *mcp.Server
	advisor   domain.Advisor
	kb        *knowledge.Base
	generator domain.NarrativeGenerator
	logger    *logrus.Logger
	tools     []string
}

// NewServer creates the MCP server and registers its tools. generator may be nil,
// in which case the generate_summary tool is not offered.
func NewServer(
	cfg *config.LiteConfig,
	advisor domain.Advisor,
	kb *knowledge.Base,
	generator domain.NarrativeGenerator,
	logger *logrus.Logger,
) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultLiteConfig()
	}
	if kb == nil {
		kb = knowledge.Default()
	}

	server := &Server{
		config:    cfg,
		advisor:   advisor,
		kb:        kb,
		generator: generator,
		logger:    logger,
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		}, nil),
	}

	server.registerTools()

	logger.WithField("tool_count", len(server.tools)).Info("MCP tools registered")
	return server, nil
}

// Tools returns the registered tool names in registration order.
func (s *Server) Tools() []string {
	return append([]string(nil), s.tools...)
}

// Start runs the server on the configured transport until ctx is cancelled
// or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	var transport mcp.Transport
	switch s.config.Transport {
	case "", "stdio":
		transport = &mcp.StdioTransport{}
	default:
		return fmt.Errorf("unsupported transport %q", s.config.Transport)
	}

	s.logger.WithField("transport_type", s.config.Transport).Info("Starting CTD-ILD MCP server")
	if err := s.mcpServer.Run(ctx, transport); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	add[domain.PatientProfile](s, "classify_risk",
		"Classify the qualitative ILD risk (low, moderate, high) of a patient with a connective tissue disease.",
		s.handleClassifyRisk)
	add[domain.PatientProfile](s, "assess_prognosis",
		"Compute the anti-MDA5 prognostic score for myositis with positive or suspected anti-MDA5 antibodies.",
		s.handleAssessPrognosis)
	add[domain.PatientProfile](s, "get_screening_recommendations",
		"List the ILD screening tests recommended for the patient.",
		s.handleScreening)
	add[domain.PatientProfile](s, "get_monitoring_recommendations",
		"List the follow-up tests and frequencies for a patient with diagnosed ILD.",
		s.handleMonitoring)
	add[domain.PatientProfile](s, "get_recommended_treatment",
		"Select the treatment plan for a diagnosed ILD, including urgency and fallback when agents are unavailable.",
		s.handleTreatment)
	add[ContraindicationsParams](s, "check_contraindications",
		"List the patient's recorded conditions that contraindicate a given treatment.",
		s.handleContraindications)
	add[domain.PatientProfile](s, "assess_nintedanib_indication",
		"Assess whether the antifibrotic nintedanib is indicated.",
		s.handleNintedanib)
	add[domain.PatientProfile](s, "evaluate_patient",
		"Run every assessment and return the full report.",
		s.handleEvaluate)
	add[TreatmentInfoParams](s, "get_treatment_info",
		"Return the reference record of a treatment, or the full treatment list when no key is given.",
		s.handleTreatmentInfo)
	add[ListOptionsParams](s, "list_options",
		"Return the disease types and the picklists accepted in a patient profile.",
		s.handleListOptions)
	add[domain.PatientProfile](s, "build_summary_prompt",
		"Render the prompt used to request a narrative summary of the patient's evaluation.",
		s.handleBuildPrompt)
	if s.generator != nil {
		add[domain.PatientProfile](s, "generate_summary",
			"Generate a narrative summary of the patient's evaluation with the configured text endpoint.",
			s.handleGenerateSummary)
	}
}

func add[In any](s *Server, name, description string, handler mcp.ToolHandlerFor[In, any]) {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        name,
		Description: description,
	}, handler)
	s.tools = append(s.tools, name)
	s.logger.WithField("tool_name", name).Debug("Registered MCP tool")
}
