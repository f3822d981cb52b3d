// Package setup registers the MCP server with desktop MCP clients.
package setup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
)

// ServerEntryName is the key of the server entry in the client configuration.
const ServerEntryName = "ctd-ild"

// BinaryName is the installed name of the MCP stdio server.
const BinaryName = "ctd-ild-mcp-server"

// ServerEntry is a single MCP server launch entry.
type ServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Options controls the entry written by Configure.
type Options struct {
	BinaryPath     string
	LogLevel       string
	NarrativeURL   string
	NarrativeModel string
}

// Status describes the registration found in a client configuration.
type Status struct {
	ConfigPath string
	Configured bool
	Entry      *ServerEntry
	Issues     []string
}

// desktopConfig keeps every top-level key so unrelated client settings survive a rewrite.
type desktopConfig struct {
	raw     map[string]json.RawMessage
	servers map[string]ServerEntry
}

// DesktopConfigPath returns the Claude Desktop configuration file for the current OS.
func DesktopConfigPath() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json"), nil
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "Claude", "claude_desktop_config.json"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json"), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, "Claude", "claude_desktop_config.json"), nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func loadDesktopConfig(path string) (*desktopConfig, error) {
	cfg := &desktopConfig{
		raw:     map[string]json.RawMessage{},
		servers: map[string]ServerEntry{},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg.raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if servers, ok := cfg.raw["mcpServers"]; ok {
		if err := json.Unmarshal(servers, &cfg.servers); err != nil {
			return nil, fmt.Errorf("failed to parse mcpServers: %w", err)
		}
	}
	return cfg, nil
}

func (c *desktopConfig) save(path string) error {
	servers, err := json.Marshal(c.servers)
	if err != nil {
		return fmt.Errorf("failed to marshal servers: %w", err)
	}
	c.raw["mcpServers"] = servers

	data, err := json.MarshalIndent(c.raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Configure adds or replaces the server entry in the configuration at path.
func Configure(path string, opts Options) (*ServerEntry, error) {
	cfg, err := loadDesktopConfig(path)
	if err != nil {
		return nil, err
	}

	binaryPath := opts.BinaryPath
	if binaryPath == "" {
		binaryPath, err = FindBinary()
		if err != nil {
			return nil, fmt.Errorf("could not find server binary: %w", err)
		}
	}

	entry := ServerEntry{
		Command: binaryPath,
		Env:     map[string]string{},
	}
	if opts.LogLevel != "" {
		entry.Env["CTD_ILD_LOG_LEVEL"] = opts.LogLevel
	}
	if opts.NarrativeURL != "" {
		entry.Env["CTD_ILD_NARRATIVE_URL"] = opts.NarrativeURL
	}
	if opts.NarrativeModel != "" {
		entry.Env["CTD_ILD_NARRATIVE_MODEL"] = opts.NarrativeModel
	}

	cfg.servers[ServerEntryName] = entry
	if err := cfg.save(path); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove deletes the server entry. It reports whether an entry existed.
func Remove(path string) (bool, error) {
	cfg, err := loadDesktopConfig(path)
	if err != nil {
		return false, err
	}
	if _, ok := cfg.servers[ServerEntryName]; !ok {
		return false, nil
	}
	delete(cfg.servers, ServerEntryName)
	return true, cfg.save(path)
}

// GetStatus inspects the configuration at path.
func GetStatus(path string) (*Status, error) {
	cfg, err := loadDesktopConfig(path)
	if err != nil {
		return nil, err
	}

	status := &Status{ConfigPath: path, Issues: []string{}}
	entry, ok := cfg.servers[ServerEntryName]
	if !ok {
		status.Issues = append(status.Issues, "server is not registered")
		return status, nil
	}

	status.Configured = true
	status.Entry = &entry

	info, err := os.Stat(entry.Command)
	switch {
	case err != nil:
		status.Issues = append(status.Issues, fmt.Sprintf("server binary not found: %s", entry.Command))
	case info.Mode()&0111 == 0 && runtime.GOOS != "windows":
		status.Issues = append(status.Issues, fmt.Sprintf("server binary is not executable: %s", entry.Command))
	}
	return status, nil
}

// ServerNames lists every registered server in the configuration at path.
func ServerNames(path string) ([]string, error) {
	cfg, err := loadDesktopConfig(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cfg.servers))
	for name := range cfg.servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// FindBinary looks for the MCP server binary on PATH and in common build locations.
func FindBinary() (string, error) {
	if path, err := exec.LookPath(BinaryName); err == nil {
		return path, nil
	}

	home, _ := os.UserHomeDir()
	locations := []string{
		"./" + BinaryName,
		"./build/" + BinaryName,
		filepath.Join(home, ".local", "bin", BinaryName),
		"/usr/local/bin/" + BinaryName,
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			if abs, err := filepath.Abs(loc); err == nil {
				return abs, nil
			}
			return loc, nil
		}
	}

	return "", fmt.Errorf("binary %q not found in common locations", BinaryName)
}
