package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lexdesk/legal-assistant/internal/config"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/output"
)

func configCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the effective configuration to a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "lexdesk.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return domain.Invalid("config.init", "%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return domain.Persistence("config.init", path, err)
			}
			if err := output.SaveConfiguration(a.cfg, path); err != nil {
				return domain.Persistence("config.init", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (the API key is never shown)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			redacted := *a.cfg
			if redacted.Assistant.APIKey != "" {
				redacted.Assistant.APIKey = "********"
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(&redacted); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	var taxInput bool
	validateCmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a configuration file, or a tax input file with --tax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := config.NewInputParser()
			kind := "configuration"
			var err error
			if taxInput {
				kind = "tax input"
				_, err = ip.LoadTaxInput(args[0])
			} else {
				_, err = ip.LoadFromFile(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s\n", args[0], kind)
			return nil
		},
	}
	validateCmd.Flags().BoolVar(&taxInput, "tax", false, "validate a tax input file")

	c.AddCommand(initCmd, showCmd, validateCmd)
	return c
}
