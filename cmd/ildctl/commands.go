package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctd-ild-mcp-server/internal/config"
	"github.com/ctd-ild-mcp-server/internal/domain"
	"github.com/ctd-ild-mcp-server/internal/knowledge"
	"github.com/ctd-ild-mcp-server/internal/narrative"
)

const sectionAll = "all"

func (a *app) newEvaluateCmd() *cobra.Command {
	var file, section string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a patient profile",
		Example: `  ildctl evaluate --file patient.yaml
  ildctl evaluate --file patient.json --section treatment -o yaml
  cat patient.json | ildctl evaluate --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			out, err := a.section(profile, section)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "profile file (.json, .yaml) or - for stdin")
	cmd.Flags().StringVar(&section, "section", sectionAll,
		"report section: all, risk, prognosis, screening, monitoring, treatment, nintedanib")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// section returns the requested part of the evaluation.
func (a *app) section(profile *domain.PatientProfile, name string) (any, error) {
	switch name {
	case sectionAll, "":
		return a.engine.Evaluate(profile), nil
	case "risk":
		return a.engine.ClassifyRisk(profile), nil
	case "prognosis":
		return map[string]any{"assessment": a.engine.AssessPrognosis(profile)}, nil
	case "screening":
		return map[string]any{"recommendations": a.engine.ScreeningRecommendations(profile)}, nil
	case "monitoring":
		return map[string]any{"recommendations": a.engine.MonitoringRecommendations(profile)}, nil
	case "treatment":
		plan := a.engine.RecommendedTreatment(profile)
		return map[string]any{"plan": plan, "advisory": plan.Advisory()}, nil
	case "nintedanib":
		return map[string]any{"indication": a.engine.AssessNintedanibIndication(profile)}, nil
	default:
		return nil, fmt.Errorf("unknown section %q", name)
	}
}

func (a *app) newContraindicationsCmd() *cobra.Command {
	var file, treatment string

	cmd := &cobra.Command{
		Use:   "contraindications",
		Short: "List the patient's contraindications for a treatment",
		RunE: func(cmd *cobra.Command, args []string) error {
			kb := a.engine.KnowledgeBase()
			profile, err := loadProfile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), map[string]any{
				"treatment_key":     treatment,
				"treatment_name":    kb.TreatmentName(treatment),
				"contraindications": a.engine.CheckContraindications(profile, treatment),
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "profile file (.json, .yaml) or - for stdin")
	cmd.Flags().StringVarP(&treatment, "treatment", "t", "", "treatment key, e.g. rituximab")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("treatment")
	return cmd
}

func (a *app) newTreatmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "treatments [key]",
		Short: "Show treatment reference records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb := a.engine.KnowledgeBase()
			if len(args) == 0 {
				return a.write(cmd.OutOrStdout(), kb.Treatments())
			}
			treatment, ok := kb.Treatment(args[0])
			if !ok {
				return fmt.Errorf("%w: treatment %q", domain.ErrNotFound, args[0])
			}
			return a.write(cmd.OutOrStdout(), treatment)
		},
	}
}

func (a *app) newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show disease types and accepted picklist values",
		RunE: func(cmd *cobra.Command, args []string) error {
			kb := a.engine.KnowledgeBase()
			return a.write(cmd.OutOrStdout(), struct {
				DiseaseTypes []knowledge.DiseaseTypeInfo `json:"disease_types" yaml:"disease_types"`
				Options      knowledge.Options           `json:"options" yaml:"options"`
			}{kb.DiseaseTypes(), kb.Options()})
		},
	}
}

func (a *app) newPromptCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the narrative summary prompt for a patient profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			prompt, err := narrative.BuildPrompt(narrative.BuildSnapshot(profile, a.engine))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), prompt)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "profile file (.json, .yaml) or - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) newNarrativeCmd() *cobra.Command {
	var (
		file    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "narrative",
		Short: "Generate a narrative summary with the endpoint set in CTD_ILD_NARRATIVE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			narrativeCfg := config.LoadLiteConfig().Narrative()
			if !narrativeCfg.Enabled {
				return fmt.Errorf("%w: set CTD_ILD_NARRATIVE_URL", domain.ErrNarrativeDisabled)
			}

			profile, err := loadProfile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			prompt, err := narrative.BuildPrompt(narrative.BuildSnapshot(profile, a.engine))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			text, err := narrative.NewClient(narrativeCfg, a.logger).Generate(ctx, prompt)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "profile file (.json, .yaml) or - for stdin")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall generation timeout")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
