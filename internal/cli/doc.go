// Package cli wires together the Cobra command tree for the specparse binary.
//
// It defines the root command and its subcommands (show, get, chain, config,
// version), binds flags, reads the tool configuration, resolves experiment
// configurations through package specparse, and returns deterministic exit
// codes.
package cli
