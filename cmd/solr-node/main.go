package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	solr "github.com/aerian-studios/solr-node"
)

// Build-time variables set via ldflags.
var (
	version   = "1.0.0"
	commit    = ""
	buildDate = ""
)

var (
	client *solr.Client

	flagHost     string
	flagPort     string
	flagCore     string
	flagProtocol string
	flagRootPath string
	flagHandler  string
	flagUser     string
	flagPassword string
	flagTimeout  int
	flagFmt      string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("solr-node version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("solr-node version %s-dev", version)
}

type configFile struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Core     string `yaml:"core"`
	Protocol string `yaml:"protocol"`
	RootPath string `yaml:"root_path"`
	Handler  string `yaml:"handler"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "solr-node",
		Short:   "Query and index an Apache Solr core from the command line",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			client = solr.New(solr.Config{
				Host:           flagHost,
				Port:           flagPort,
				Core:           flagCore,
				Protocol:       flagProtocol,
				RootPath:       flagRootPath,
				RequestHandler: flagHandler,
				User:           flagUser,
				Password:       flagPassword,
				RequestTimeout: time.Duration(flagTimeout) * time.Millisecond,
			})
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "Solr host (env: SOLR_HOST)")
	rootCmd.PersistentFlags().StringVar(&flagPort, "port", "", "Solr port, 0 for none (env: SOLR_PORT)")
	rootCmd.PersistentFlags().StringVar(&flagCore, "core", "", "core or collection name (env: SOLR_CORE)")
	rootCmd.PersistentFlags().StringVar(&flagProtocol, "protocol", "", "http or https")
	rootCmd.PersistentFlags().StringVar(&flagRootPath, "root-path", "", "Solr webapp context path")
	rootCmd.PersistentFlags().StringVar(&flagHandler, "handler", "", "search request handler")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "basic auth user (env: SOLR_USER)")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "basic auth password (env: SOLR_PASSWORD)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "request timeout in milliseconds")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newTermsCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newPingCmd())
	rootCmd.AddCommand(newSchemaCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() {
	// Flag takes precedence, then env, then config file.
	fromEnv := func(flag *string, key string) {
		if *flag == "" {
			*flag = os.Getenv(key)
		}
	}

	fromEnv(&flagHost, "SOLR_HOST")
	fromEnv(&flagPort, "SOLR_PORT")
	fromEnv(&flagCore, "SOLR_CORE")
	fromEnv(&flagUser, "SOLR_USER")
	fromEnv(&flagPassword, "SOLR_PASSWORD")

	// Try config file for any remaining defaults.
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	data, err := os.ReadFile(filepath.Join(home, ".solr-node", "config.yaml"))
	if err != nil {
		return
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}

	applyConfigFile(&cfg)
}

func applyConfigFile(cfg *configFile) {
	fromFile := func(flag *string, value string) {
		if *flag == "" && value != "" {
			*flag = value
		}
	}

	fromFile(&flagHost, cfg.Host)
	fromFile(&flagPort, cfg.Port)
	fromFile(&flagCore, cfg.Core)
	fromFile(&flagProtocol, cfg.Protocol)
	fromFile(&flagRootPath, cfg.RootPath)
	fromFile(&flagHandler, cfg.Handler)
	fromFile(&flagUser, cfg.User)
	fromFile(&flagPassword, cfg.Password)
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}

// checkResponse exits when the response body carries a Solr error block,
// which the client hands back without raising an error.
func checkResponse(op string, resp *solr.Response) {
	if serverErr := resp.ServerError(); serverErr != nil {
		fatal(op, serverErr)
	}
}
