package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctd-ild-mcp-server/internal/config"
	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
	"github.com/ctd-ild-mcp-server/internal/service"
)

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

func newTestServer(t *testing.T, gen domain.NarrativeGenerator) (*Server, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	engine := service.NewRecommendationEngine(logger, nil)
	server, err := NewServer(config.DefaultLiteConfig(), engine, engine.KnowledgeBase(), gen, logger)
	require.NoError(t, err)
	return server, hook
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func rapidProfile() domain.PatientProfile {
	return domain.PatientProfile{
		Age:            "65",
		DiseaseType:    domain.Myositis,
		ILDDiagnosed:   true,
		ILDStatus:      domain.ILDRapidlyProgressive,
		AntiMDA5:       domain.SerologyConfirmed,
		Ferritin:       "1600",
		Manifestations: []string{knowledge.ManifestationRapidRespiratoryProgression},
	}
}

func TestNewServer_RegistersTools(t *testing.T) {
	t.Run("without generator", func(t *testing.T) {
		server, _ := newTestServer(t, nil)

		assert.NotNil(t, server.mcpServer)
		assert.Equal(t, []string{
			"classify_risk",
			"assess_prognosis",
			"get_screening_recommendations",
			"get_monitoring_recommendations",
			"get_recommended_treatment",
			"check_contraindications",
			"assess_nintedanib_indication",
			"evaluate_patient",
			"get_treatment_info",
			"list_options",
			"build_summary_prompt",
		}, server.Tools())
	})

	t.Run("with generator", func(t *testing.T) {
		server, _ := newTestServer(t, stubGenerator{text: "summary"})
		assert.Contains(t, server.Tools(), "generate_summary")
	})
}

func TestServer_Start_UnsupportedTransport(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := config.DefaultLiteConfig()
	cfg.Transport = "carrier-pigeon"

	server, err := NewServer(cfg, service.NewRecommendationEngine(logger, nil), nil, nil, logger)
	require.NoError(t, err)

	err = server.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")
}

func TestHandleEvaluate(t *testing.T) {
	server, _ := newTestServer(t, nil)

	res, out, err := server.handleEvaluate(context.Background(), nil, rapidProfile())
	require.NoError(t, err)
	assert.False(t, res.IsError)

	report, ok := out.(*domain.Report)
	require.True(t, ok)
	require.NotNil(t, report.Treatment)
	assert.Equal(t, knowledge.KeyMethylprednisolone, report.Treatment.Primary)
	assert.Equal(t, domain.UrgencyExtreme, report.Treatment.UrgencyLevel)

	var decoded domain.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Equal(t, report.Risk.Tier, decoded.Risk.Tier)
}

func TestHandleProfileTools(t *testing.T) {
	server, _ := newTestServer(t, nil)
	ctx := context.Background()
	profile := rapidProfile()

	t.Run("classify_risk", func(t *testing.T) {
		_, out, err := server.handleClassifyRisk(ctx, nil, profile)
		require.NoError(t, err)
		assert.Equal(t, domain.RiskHigh, out.(domain.RiskResult).Tier)
	})

	t.Run("assess_prognosis", func(t *testing.T) {
		_, out, err := server.handleAssessPrognosis(ctx, nil, profile)
		require.NoError(t, err)
		result := out.(PrognosisResult)
		assert.True(t, result.Applicable)
		assert.Equal(t, 8, result.Assessment.Score)
	})

	t.Run("assess_prognosis outside subgroup", func(t *testing.T) {
		_, out, err := server.handleAssessPrognosis(ctx, nil, domain.PatientProfile{DiseaseType: domain.RheumatoidArthritis})
		require.NoError(t, err)
		assert.False(t, out.(PrognosisResult).Applicable)
	})

	t.Run("screening", func(t *testing.T) {
		_, out, err := server.handleScreening(ctx, nil, profile)
		require.NoError(t, err)
		assert.Len(t, out.(RecommendationsResult).Recommendations, 3)
	})

	t.Run("monitoring", func(t *testing.T) {
		_, out, err := server.handleMonitoring(ctx, nil, profile)
		require.NoError(t, err)
		assert.Len(t, out.(RecommendationsResult).Recommendations, 3)
	})

	t.Run("treatment", func(t *testing.T) {
		_, out, err := server.handleTreatment(ctx, nil, profile)
		require.NoError(t, err)
		result := out.(TreatmentResult)
		require.NotNil(t, result.Advisory)
		assert.Equal(t, "LIFE-THREATENING EMERGENCY", result.Advisory.Title)
	})

	t.Run("nintedanib", func(t *testing.T) {
		_, out, err := server.handleNintedanib(ctx, nil, profile)
		require.NoError(t, err)
		assert.Equal(t, domain.NotIndicated, out.(IndicationResult).Indication.Status)
	})

	t.Run("build_summary_prompt", func(t *testing.T) {
		res, out, err := server.handleBuildPrompt(ctx, nil, profile)
		require.NoError(t, err)
		assert.Contains(t, resultText(t, res), "```json")
		assert.Equal(t, resultText(t, res), out.(SummaryResult).Prompt)
	})
}

func TestHandleInvalidProfile(t *testing.T) {
	server, hook := newTestServer(t, nil)

	res, out, err := server.handleEvaluate(context.Background(), nil, domain.PatientProfile{DiseaseType: "lupus"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Nil(t, out)
	assert.Contains(t, resultText(t, res), "invalid disease type")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "evaluate_patient", entry.Data["tool"])
}

func TestHandleContraindications(t *testing.T) {
	server, _ := newTestServer(t, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		params    ContraindicationsParams
		wantError bool
		want      []string
	}{
		{
			name: "matched",
			params: ContraindicationsParams{
				Profile:      domain.PatientProfile{Contraindications: []string{"Active infection", "Pregnancy/breastfeeding"}},
				TreatmentKey: knowledge.KeyRituximab,
			},
			want: []string{"Active infection"},
		},
		{
			name:   "none",
			params: ContraindicationsParams{TreatmentKey: knowledge.KeyAzathioprine},
			want:   []string{},
		},
		{name: "missing key", params: ContraindicationsParams{}, wantError: true},
		{
			name: "unknown key matches nothing",
			params: ContraindicationsParams{
				Profile:      domain.PatientProfile{Contraindications: []string{"Active infection"}},
				TreatmentKey: "aspirin",
			},
			want: []string{},
		},
		{
			name:      "invalid profile",
			params:    ContraindicationsParams{Profile: domain.PatientProfile{DiseaseType: "lupus"}, TreatmentKey: knowledge.KeyRituximab},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, out, err := server.handleContraindications(ctx, nil, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantError, res.IsError)
			if tt.wantError {
				return
			}
			assert.Equal(t, tt.want, out.(ContraindicationsResult).Contraindications)
		})
	}
}

func TestHandleTreatmentInfo(t *testing.T) {
	server, _ := newTestServer(t, nil)
	ctx := context.Background()

	_, out, err := server.handleTreatmentInfo(ctx, nil, TreatmentInfoParams{})
	require.NoError(t, err)
	assert.Len(t, out.(TreatmentInfoResult).Treatments, 13)

	_, out, err = server.handleTreatmentInfo(ctx, nil, TreatmentInfoParams{TreatmentKey: knowledge.KeyNintedanib})
	require.NoError(t, err)
	treatments := out.(TreatmentInfoResult).Treatments
	require.Len(t, treatments, 1)
	assert.Equal(t, "Nintedanib", treatments[0].Name)

	res, _, err := server.handleTreatmentInfo(ctx, nil, TreatmentInfoParams{TreatmentKey: "aspirin"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleListOptions(t *testing.T) {
	server, _ := newTestServer(t, nil)

	_, out, err := server.handleListOptions(context.Background(), nil, ListOptionsParams{})
	require.NoError(t, err)
	result := out.(OptionsResult)
	assert.Len(t, result.DiseaseTypes, 5)
	assert.Contains(t, result.Options.Manifestations, knowledge.ManifestationSkinUlcerations)
}

func TestHandleGenerateSummary(t *testing.T) {
	tests := []struct {
		name      string
		generator stubGenerator
		wantError bool
		wantText  string
	}{
		{"success", stubGenerator{text: "## Patient profile"}, false, "## Patient profile"},
		{"disabled", stubGenerator{err: domain.ErrNarrativeDisabled}, true, "disabled"},
		{"failure", stubGenerator{err: errors.New("status 502")}, true, "status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, tt.generator)

			res, _, err := server.handleGenerateSummary(context.Background(), nil, rapidProfile())
			require.NoError(t, err)
			assert.Equal(t, tt.wantError, res.IsError)
			assert.Contains(t, resultText(t, res), tt.wantText)
		})
	}
}
