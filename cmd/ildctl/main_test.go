package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/setup"
)

const rapidProfileYAML = `name: Patient B
age: 65
disease_type: IIM
ild_diagnosed: true
ild_status: rapid-progressive
anti_mda5_status: confirmed
ferritin: 1600
anti_mda5_manifestations:
  - Rapid respiratory progression (<3 months)
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), err
}

func TestLoadProfile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"yaml by extension", "p.yaml", rapidProfileYAML, ""},
		{"json by extension", "p.json", `{"age": 65, "disease_type": "IIM", "ferritin": "1600 ng/mL"}`, ""},
		{"invalid enum", "p.json", `{"disease_type": "lupus"}`, "invalid disease type"},
		{"malformed", "p.json", `{"age":`, "failed to parse profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := loadProfile(writeFile(t, tt.file, tt.content), nil)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.Myositis, profile.DiseaseType)
			assert.True(t, profile.Ferritin.Exceeds(1500))
			age, ok := profile.Age.Value()
			assert.True(t, ok)
			assert.Equal(t, 65.0, age)
		})
	}

	t.Run("stdin detects format", func(t *testing.T) {
		profile, err := loadProfile("-", strings.NewReader(rapidProfileYAML))
		require.NoError(t, err)
		assert.Equal(t, domain.ILDRapidlyProgressive, profile.ILDStatus)

		profile, err = loadProfile("-", strings.NewReader(`{"disease_type": "SSc"}`))
		require.NoError(t, err)
		assert.Equal(t, domain.SystemicSclerosis, profile.DiseaseType)
	})
}

func TestEvaluateCommand(t *testing.T) {
	path := writeFile(t, "patient.yaml", rapidProfileYAML)

	t.Run("json report", func(t *testing.T) {
		out, err := run(t, "", "evaluate", "--file", path)
		require.NoError(t, err)

		var report domain.Report
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, domain.RiskHigh, report.Risk.Tier)
		require.NotNil(t, report.Treatment)
		assert.Equal(t, domain.UrgencyExtreme, report.Treatment.UrgencyLevel)
	})

	t.Run("yaml section", func(t *testing.T) {
		out, err := run(t, "", "evaluate", "--file", path, "--section", "risk", "-o", "yaml")
		require.NoError(t, err)

		var risk domain.RiskResult
		require.NoError(t, yaml.Unmarshal([]byte(out), &risk))
		assert.Equal(t, domain.RiskHigh, risk.Tier)
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, `{"disease_type": "SSc"}`, "evaluate", "--file", "-", "--section", "screening")
		require.NoError(t, err)
		assert.Contains(t, out, "HRCT + PFT")
	})

	t.Run("unknown section", func(t *testing.T) {
		_, err := run(t, "", "evaluate", "--file", path, "--section", "everything")
		require.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "", "evaluate", "--file", path, "-o", "xml")
		require.Error(t, err)
	})

	t.Run("missing file flag", func(t *testing.T) {
		_, err := run(t, "", "evaluate")
		require.Error(t, err)
	})
}

func TestContraindicationsCommand(t *testing.T) {
	path := writeFile(t, "patient.json", `{"contraindications": ["Active infection"]}`)

	out, err := run(t, "", "contraindications", "--file", path, "--treatment", "rituximab")
	require.NoError(t, err)
	assert.Contains(t, out, `"Active infection"`)
	assert.Contains(t, out, `"treatment_name": "Rituximab"`)

	out, err = run(t, "", "contraindications", "--file", path, "--treatment", "aspirin")
	require.NoError(t, err)
	assert.Contains(t, out, `"contraindications": []`)
}

func TestTreatmentsCommand(t *testing.T) {
	out, err := run(t, "", "treatments", "nintedanib", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Nintedanib")

	_, err = run(t, "", "treatments", "aspirin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOptionsCommand(t *testing.T) {
	out, err := run(t, "", "options")
	require.NoError(t, err)
	assert.Contains(t, out, "Skin ulcerations")
	assert.Contains(t, out, `"baseline_risk": "high"`)
}

func TestPromptCommand(t *testing.T) {
	path := writeFile(t, "patient.yaml", rapidProfileYAML)

	out, err := run(t, "", "prompt", "--file", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "As a medical expert"))
	assert.Contains(t, out, `"name": "Patient B"`)
}

func TestNarrativeCommand_Disabled(t *testing.T) {
	t.Setenv("CTD_ILD_NARRATIVE_URL", "")
	path := writeFile(t, "patient.yaml", rapidProfileYAML)

	_, err := run(t, "", "narrative", "--file", path)
	assert.ErrorIs(t, err, domain.ErrNarrativeDisabled)
}

func TestSetupCommands(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	binary := writeFile(t, setup.BinaryName, "#!/bin/sh\n")

	out, err := run(t, "n\n", "setup", "desktop", "--config", configPath, "--binary", binary)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration cancelled.")

	out, err = run(t, "", "setup", "desktop", "--config", configPath, "--binary", binary, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered")

	out, err = run(t, "", "setup", "status", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: configured")

	out, err = run(t, "", "setup", "remove", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")
}
