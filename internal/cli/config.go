package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/taskpro/internal/domain"
	"github.com/runoshun/taskpro/internal/usecase"
)

// maskedToken replaces the bearer token in displayed configuration.
const maskedToken = "********"

// newConfigCommand creates the config command with subcommands.
func newConfigCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage taskpro configuration.

Configuration is merged from these sources (later wins):
1. Built-in defaults
2. Global config: ~/.config/taskpro/config.toml
3. File given with --config
4. .env file in the current directory
5. TASKPRO_* environment variables
6. Command line flags (--base-url, --locale)

Subcommands:
  show      Display the effective configuration
  template  Print a configuration template
  init      Write a configuration file`,
	}

	cmd.AddCommand(
		newConfigShowCommand(s),
		newConfigTemplateCommand(s),
		newConfigInitCommand(s),
	)

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the configuration files that were read and the merged configuration
in TOML format. The bearer token is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.container()
			if err != nil {
				return err
			}

			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigInfo(w, out.GlobalConfig)
			printConfigInfo(w, out.FileConfig)
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Host]")
			_, _ = fmt.Fprintf(w, "- name: %s\n", c.Host)
			if c.BaseURL != nil {
				_, _ = fmt.Fprintf(w, "- base URL: %s\n", c.BaseURL)
			}
			_, _ = fmt.Fprintln(w)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective, c.AppConfig)
		},
	}

	return cmd
}

// printConfigInfo prints one config file line, skipping files that were not configured.
func printConfigInfo(w io.Writer, info domain.ConfigInfo) {
	if info.Path == "" {
		return
	}
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
	} else {
		_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
	}
}

// formatEffectiveConfig writes cfg as TOML with command line overrides from applied.
// The token is masked.
func formatEffectiveConfig(w io.Writer, cfg, applied *domain.Config) error {
	shown := *cfg
	if applied != nil {
		// Flags only reach the container's config.
		shown.API.BaseURL = applied.API.BaseURL
		shown.API.DevBaseURL = applied.API.DevBaseURL
		shown.UI.Locale = applied.UI.Locale
	}
	if shown.API.Token != "" {
		shown.API.Token = maskedToken
	}

	if err := toml.NewEncoder(w).Encode(shown); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template with the default values to stdout.

It does not read existing configuration files and works even if they are broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.container()
			if err != nil {
				return err
			}

			out, err := c.ShowConfigTemplateUseCase().Execute(cmd.Context(), usecase.ShowConfigTemplateInput{})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Template)
			return nil
		},
	}

	return cmd
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(s *session) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file",
		Long: `Generate a configuration file from the default template.

With --config, writes that file. Otherwise, or with --global, writes the
global configuration file at ~/.config/taskpro/config.toml.

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.container()
			if err != nil {
				return err
			}

			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
				Global: global || s.opts.ConfigPath == "",
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")

	return cmd
}
