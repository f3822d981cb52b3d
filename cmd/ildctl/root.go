package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ctd-ild-mcp-server/internal/logging"
	"github.com/ctd-ild-mcp-server/internal/service"
)

// app holds the dependencies shared by every subcommand.
type app struct {
	logLevel  string
	logFormat string
	format    string

	logger *logrus.Logger
	engine *service.RecommendationEngine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "ildctl",
		Short:         "Decision support for interstitial lung disease in connective tissue diseases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch strings.ToLower(a.format) {
			case "json", "yaml", "yml":
			default:
				return fmt.Errorf("unsupported output format %q", a.format)
			}
			a.logger = logging.NewWithOutput(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
			a.engine = service.NewRecommendationEngine(a.logger, nil)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format (json, text)")
	flags.StringVarP(&a.format, "output", "o", "json", "output format (json, yaml)")

	root.AddCommand(
		a.newEvaluateCmd(),
		a.newContraindicationsCmd(),
		a.newTreatmentsCmd(),
		a.newOptionsCmd(),
		a.newPromptCmd(),
		a.newNarrativeCmd(),
		newSetupCmd(),
	)
	return root
}

// write encodes v in the selected output format.
func (a *app) write(w io.Writer, v any) error {
	switch strings.ToLower(a.format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}
