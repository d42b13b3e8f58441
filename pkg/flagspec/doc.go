// Package flagspec declares command-line options as data and parses tokens
// against them with github.com/spf13/pflag.
//
// A [Spec] is written once, when a program sets up its parser, and is never
// bound to caller variables. Every [Spec.Parse] builds a fresh pflag.FlagSet,
// so one Spec can serve any number of parses without leaking values between
// them. Parsed values come back as a flat map keyed by [Key], the flag name
// with dashes replaced by underscores (--checkpoint-dir becomes
// checkpoint_dir).
package flagspec
