// Package chain resolves a YAML configuration file together with the chain of
// parents it inherits from.
//
// A document may name another document in its top-level "parent" key. The
// parent path is expanded for environment variables and interpreted relative
// to the directory of the document that references it. Resolution walks from
// the requested file up to the root, then merges root first so the most
// specific file wins:
//
//	# base.yaml
//	encoder:
//	  shape: 40
//	  type: raw_features
//
//	# child.yaml
//	parent: base.yaml
//	encoder:
//	  shape: 50
//
// Resolving child.yaml yields {encoder: {shape: 50, type: raw_features}}.
// The "parent" key never appears in the result. A chain that revisits a file
// fails with [specerr.ErrCyclicInheritance].
package chain
