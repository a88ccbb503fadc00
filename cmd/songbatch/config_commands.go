package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"songbatch/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set api_key before running songbatch.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Show the resolved configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if ctx.configFlag != nil {
				flagPath = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, path, exists, err := config.LoadUnvalidated(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(out, "Warning: %v\n", err)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "api.base_url:        %s\n", cfg.API.BaseURL)
			fmt.Fprintf(out, "api.auth_url:        %s\n", cfg.API.AuthURL)
			fmt.Fprintf(out, "api.api_key:         %s\n", maskKey(cfg.API.APIKey))
			fmt.Fprintf(out, "api.request_timeout: %d\n", cfg.API.RequestTimeout)
			fmt.Fprintf(out, "api.page_limit:      %d\n", cfg.API.PageLimit)
			fmt.Fprintf(out, "paths.song_list:     %s\n", cfg.Paths.SongList)
			fmt.Fprintf(out, "paths.ledger:        %s\n", cfg.Paths.Ledger)
			fmt.Fprintf(out, "paths.candidates:    %s\n", cfg.Paths.Candidates)
			fmt.Fprintf(out, "paths.log_dir:       %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "importer.command:    %s\n", cfg.Importer.Command)
			fmt.Fprintf(out, "importer.timeout:    %d\n", cfg.Importer.Timeout)
			fmt.Fprintf(out, "run.top_candidates:  %d\n", cfg.Run.TopCandidates)
			fmt.Fprintf(out, "logging.format:      %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "logging.level:       %s\n", cfg.Logging.Level)
			return nil
		},
	}
	return cmd
}

func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 6 {
		return "******"
	}
	return key[:3] + "..." + key[len(key)-3:]
}
