package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctd-ild-mcp-server/internal/setup"
)

func newSetupCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Register the MCP server with Claude Desktop",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "client configuration file (default: Claude Desktop location)")

	resolve := func() (string, error) {
		if configPath != "" {
			return configPath, nil
		}
		return setup.DesktopConfigPath()
	}

	cmd.AddCommand(newSetupDesktopCmd(resolve), newSetupStatusCmd(resolve), newSetupRemoveCmd(resolve))
	return cmd
}

func newSetupDesktopCmd(resolve func() (string, error)) *cobra.Command {
	var (
		opts setup.Options
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "desktop",
		Short: "Add or update the server entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolve()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n", path)
			if opts.BinaryPath != "" {
				fmt.Fprintf(out, "Server binary: %s\n", opts.BinaryPath)
			}

			if !yes {
				fmt.Fprint(out, "Proceed with configuration? [Y/n]: ")
				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.TrimSpace(strings.ToLower(response))
				if response != "" && response != "y" && response != "yes" {
					fmt.Fprintln(out, "Configuration cancelled.")
					return nil
				}
			}

			entry, err := setup.Configure(path, opts)
			if err != nil {
				return fmt.Errorf("failed to configure client: %w", err)
			}
			fmt.Fprintf(out, "Registered %q using %s\n", setup.ServerEntryName, entry.Command)
			fmt.Fprintln(out, "Restart the client to load the new configuration.")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.BinaryPath, "binary", "b", "", "path to the MCP server binary (default: search PATH)")
	flags.StringVar(&opts.LogLevel, "server-log-level", "", "CTD_ILD_LOG_LEVEL for the server")
	flags.StringVar(&opts.NarrativeURL, "narrative-url", "", "CTD_ILD_NARRATIVE_URL for the server")
	flags.StringVar(&opts.NarrativeModel, "narrative-model", "", "CTD_ILD_NARRATIVE_MODEL for the server")
	flags.BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newSetupStatusCmd(resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the registration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolve()
			if err != nil {
				return err
			}
			status, err := setup.GetStatus(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", status.ConfigPath)
			if status.Configured {
				fmt.Fprintf(out, "Status: configured\nBinary: %s\n", status.Entry.Command)
			} else {
				fmt.Fprintln(out, "Status: not configured")
			}
			for _, issue := range status.Issues {
				fmt.Fprintf(out, "Issue: %s\n", issue)
			}
			return nil
		},
	}
}

func newSetupRemoveCmd(resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the server entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolve()
			if err != nil {
				return err
			}
			removed, err := setup.Remove(path)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %s\n", setup.ServerEntryName, path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%q was not registered in %s\n", setup.ServerEntryName, path)
			}
			return nil
		},
	}
}
