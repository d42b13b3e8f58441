package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/specparse/pkg/chain"
	"github.com/dshills/specparse/pkg/tree"
)

var flagChainKeys bool

var chainCmd = &cobra.Command{
	Use:   "chain <config>",
	Short: "Print the parent chain of a configuration, root first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fail(cmd, err)
			exitCode = ExitUsageError
			return
		}

		r := chain.New(chain.WithMaxDepth(cfg.MaxDepth), chain.WithLogger(newLogger(cmd, cfg)))
		links, err := r.Chain(args[0])
		if err != nil {
			fail(cmd, err)
			return
		}

		w := cmd.OutOrStdout()
		for i, link := range links {
			fmt.Fprintf(w, "%d. %s\n", i+1, link.Path)
			if !flagChainKeys {
				continue
			}
			for _, leaf := range tree.Flatten(link.Values) {
				fmt.Fprintf(w, "     %s\n", leaf.Path)
			}
		}
	},
}

func init() {
	chainCmd.Flags().BoolVar(&flagChainKeys, "keys", false, "List the keys each document sets")
	chainCmd.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "Maximum parent chain length (0 = unbounded)")
}
