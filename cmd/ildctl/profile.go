package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ctd-ild-mcp-server/internal/domain"
)

// loadProfile reads a patient profile from path, or from stdin when path is "-".
// YAML is chosen by file extension, or by content when reading stdin.
func loadProfile(path string, stdin io.Reader) (*domain.PatientProfile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := &domain.PatientProfile{}
	if isYAML(path, data) {
		err = yaml.Unmarshal(data, profile)
	} else {
		err = json.Unmarshal(data, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

func isYAML(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	case ".json":
		return false
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] != '{'
}
