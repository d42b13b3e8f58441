// Package specparse turns a command line of the form
//
//	prog [global-flags] <config_path> [path=value ...] [mode [mode-flags ...]]
//
// into a single configuration namespace, and optionally hands it to the
// callback of the selected mode.
//
// The config file is resolved through its parent chain (package chain), the
// path=value overrides are applied in order (package override), and declared
// flags are merged on top: flags set on the command line replace tree
// values, flag defaults only fill keys the configuration leaves out. The
// namespace also carries a reserved cmd_args mapping describing the
// invocation itself:
//
//	cmd_args:
//	  config_path: experiment.yaml
//	  mode: train        # null without a mode
//	  overrides: [model.lr=1e-5]
//
// A minimal program:
//
//	p := specparse.New()
//	train, _ := p.AddMode("train", mode.Direct(sig, runTraining))
//	train.Flags().String("checkpoint-dir", "ckpt", "checkpoint directory")
//	ns, err := p.ParseAndRun(ctx, os.Args[1:])
package specparse
