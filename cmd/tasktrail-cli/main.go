// Command tasktrail-cli is a terminal client for the tasktrail API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tasktrail/tasktrail/client"
)

// Build-time variables set via ldflags.
var (
	version   = "1.0.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient *client.Client
	flagURL   string
	flagToken string
	flagFmt   string
)

const defaultURL = "http://localhost:3030"

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("tasktrail version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("tasktrail version %s-dev", version)
}

type configFile struct {
	URL      string `yaml:"url"`
	APIToken string `yaml:"api_token"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "tasktrail",
		Short:   "tasktrail CLI — tasks with an immutable audit trail",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			var opts []client.Option
			if flagToken != "" {
				opts = append(opts, client.WithAPIToken(flagToken))
			}
			apiClient = client.New(flagURL, opts...)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "tasktrail server URL (env: TASKTRAIL_URL)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "API token (env: TASKTRAIL_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")

	rootCmd.AddCommand(newTaskCmd())
	rootCmd.AddCommand(newAuditCmd())
	rootCmd.AddCommand(newStatusCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	if flagURL == defaultURL {
		if v := os.Getenv("TASKTRAIL_URL"); v != "" {
			flagURL = v
		}
	}
	if flagToken == "" {
		flagToken = os.Getenv("TASKTRAIL_TOKEN")
	}

	// Try config file for any remaining defaults.
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	cfgPath := filepath.Join(home, ".tasktrail", "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	if flagURL == defaultURL && cfg.URL != "" {
		flagURL = cfg.URL
	}
	if flagToken == "" && cfg.APIToken != "" {
		flagToken = cfg.APIToken
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
