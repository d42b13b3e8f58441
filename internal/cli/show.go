package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dshills/specparse/internal/config"
	"github.com/dshills/specparse/internal/output"
	"github.com/dshills/specparse/internal/redact"
	"github.com/dshills/specparse/pkg/specparse"
)

// Resolution flags shared by show and get
var (
	flagFormat   string
	flagOut      string
	flagRedact   bool
	flagMaxDepth int
)

func addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (yaml, json, text)")
	cmd.Flags().BoolVar(&flagRedact, "redact", false, "Mask secrets and keys matching redact.keys")
	cmd.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "Maximum parent chain length (0 = unbounded)")
}

var showCmd = &cobra.Command{
	Use:   "show <config> [path=value ...]",
	Short: "Resolve a configuration and print the namespace",
	Long: "Resolve a configuration through its parent chain, apply the overrides in " +
		"order and print the resulting namespace, including cmd_args.",
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, ns, ok := resolveArgs(cmd, args)
		if !ok {
			return
		}
		doc := map[string]any(ns)
		if cfg.Redact.Enabled {
			doc = redactNamespace(ns, cfg.Redact.Keys)
		}
		if err := output.WriteDocument(doc, cfg.Format, flagOut, cmd.OutOrStdout()); err != nil {
			fail(cmd, fmt.Errorf("writing output: %w", err))
		}
	},
}

var getCmd = &cobra.Command{
	Use:   "get <config> <dotted.path> [path=value ...]",
	Short: "Print a single value of a resolved configuration",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[1]
		rest := append([]string{args[0]}, args[2:]...)
		cfg, ns, ok := resolveArgs(cmd, rest)
		if !ok {
			return
		}
		doc := map[string]any(ns)
		if cfg.Redact.Enabled {
			doc = redactNamespace(ns, cfg.Redact.Keys)
		}
		v, found := specparse.Namespace(doc).Lookup(key)
		if !found {
			fail(cmd, fmt.Errorf("key %q not found in %s", key, args[0]))
			return
		}
		if err := writeValue(cmd.OutOrStdout(), v, cfg.Format); err != nil {
			fail(cmd, fmt.Errorf("writing output: %w", err))
		}
	},
}

// resolveArgs loads the tool config and resolves args through a parser. On
// failure it reports the error and returns false.
func resolveArgs(cmd *cobra.Command, args []string) (config.Config, specparse.Namespace, bool) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail(cmd, err)
		exitCode = ExitUsageError
		return config.Config{}, nil, false
	}
	if cfg.Redact.Enabled {
		if bad, ok := redact.ValidatePatterns(cfg.Redact.Keys); !ok {
			fail(cmd, fmt.Errorf("invalid redact.keys pattern %q", bad))
			exitCode = ExitUsageError
			return config.Config{}, nil, false
		}
	}

	logger := newLogger(cmd, cfg)
	p := specparse.New(
		specparse.WithName("specparse "+cmd.Name()),
		specparse.WithMaxDepth(cfg.MaxDepth),
		specparse.WithLogger(logger),
	)
	ns, err := p.ParseArgs(args)
	if err != nil {
		fail(cmd, err)
		return config.Config{}, nil, false
	}
	logger.Debug("resolved configuration", "config", ns.ConfigPath(), "overrides", len(ns.Overrides()))
	return cfg, ns, true
}

func redactNamespace(ns specparse.Namespace, keys []string) map[string]any {
	doc := redact.Tree(ns.Config(), keys)
	cmdArgs := make(map[string]any)
	for k, v := range ns.CmdArgs() {
		cmdArgs[k] = v
	}
	overrides := make([]any, 0, len(ns.Overrides()))
	for _, o := range ns.Overrides() {
		overrides = append(overrides, redact.Override(o, keys))
	}
	cmdArgs[specparse.OverridesKey] = overrides
	doc[specparse.CmdArgsKey] = cmdArgs
	return doc
}

// writeValue prints scalars on one line and mappings in the chosen format.
func writeValue(w io.Writer, v any, format string) error {
	if m, ok := v.(map[string]any); ok && len(m) > 0 {
		writer, err := output.GetWriter(format)
		if err != nil {
			return err
		}
		return writer.Write(w, m)
	}
	_, err := fmt.Fprintln(w, output.FormatValue(v))
	return err
}

// resetFlags restores every flag of the command tree to its default.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	var walk func(*cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

func init() {
	addResolveFlags(showCmd)
	showCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	addResolveFlags(getCmd)
}
