package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/specparse/internal/config"
	"github.com/dshills/specparse/internal/logging"
	"github.com/dshills/specparse/pkg/specerr"
)

const version = "0.3.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitRuntimeError = 4
)

// Persistent flags
var (
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "specparse",
	Short: "Resolve layered YAML experiment configurations",
	Long: "specparse resolves a YAML configuration through its parent chain, applies " +
		"path=value overrides and prints the resulting namespace.",
	SilenceErrors: true,
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command with the process arguments and returns an
// exit code.
func Run() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	exitCode = ExitSuccess
	resetFlags()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitUsageError
	}
	return exitCode
}

// fail reports err on the command's error stream and records the exit code
// matching its kind.
func fail(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	exitCode = exitFor(err)
}

func exitFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case specerr.IsUsageError(err):
		return ExitUsageError
	case specerr.IsConfigError(err):
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}

// loadConfig merges the tool configuration with the flags set on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.Load(buildOverrides(cmd))
}

func buildOverrides(cmd *cobra.Command) map[string]string {
	m := make(map[string]string)
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	if flagLogFormat != "" {
		m["logFormat"] = flagLogFormat
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if f := cmd.Flags().Lookup("max-depth"); f != nil && f.Changed {
		m["maxDepth"] = strconv.Itoa(flagMaxDepth)
	}
	if f := cmd.Flags().Lookup("redact"); f != nil && f.Changed {
		m["redact.enabled"] = strconv.FormatBool(flagRedact)
	}
	return m
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print specparse version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "specparse version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
