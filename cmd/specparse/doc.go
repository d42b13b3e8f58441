// Specparse resolves layered YAML experiment configurations from the command
// line.
//
// A configuration may name a parent file; the chain is merged from the root
// down, then path=value overrides are applied in order, exactly as a program
// built on package specparse would see it.
//
// Usage:
//
//	specparse show exp.yaml                    # print the resolved namespace
//	specparse show exp.yaml model.lr=1e-5      # with overrides applied
//	specparse show exp.yaml --format json --redact
//	specparse get exp.yaml model.arch          # print a single value
//	specparse chain exp.yaml                   # list the parent chain, root first
//	specparse config init                      # write a default settings file
package main
