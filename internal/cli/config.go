package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/specparse/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage specparse configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.ConfigPath()
		if err != nil {
			fail(cmd, err)
			return
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file already exists at %s\n", path)
			return
		} else if !errors.Is(err, fs.ErrNotExist) {
			fail(cmd, fmt.Errorf("checking config file: %w", err))
			return
		}

		if err := config.Save(config.Default()); err != nil {
			fail(cmd, fmt.Errorf("writing config: %w", err))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", path)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value. Keys: " + strings.Join(config.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadFile()
		if err != nil {
			fail(cmd, err)
			return
		}

		if err := config.SetField(&cfg, args[0], args[1]); err != nil {
			fail(cmd, err)
			exitCode = ExitUsageError
			return
		}
		if err := config.Validate(cfg); err != nil {
			fail(cmd, err)
			exitCode = ExitUsageError
			return
		}

		if err := config.Save(cfg); err != nil {
			fail(cmd, fmt.Errorf("saving config: %w", err))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail(cmd, err)
			return
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			fail(cmd, err)
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
