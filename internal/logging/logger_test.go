package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"json debug", "debug", "json", logrus.DebugLevel, true},
		{"text warn", "warn", "text", logrus.WarnLevel, false},
		{"uppercase text", "error", "TEXT", logrus.ErrorLevel, false},
		{"unknown level falls back to info", "verbose", "", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level, tt.format)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestNewWithOutput_StructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "info", "json")

	logger.WithField("risk_tier", "high").Info("Classified ILD risk")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "high", entry["risk_tier"])
	assert.Equal(t, "Classified ILD risk", entry["msg"])
}
