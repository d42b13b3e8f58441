package specparse

import (
	"fmt"
	"strings"
)

// Usage renders help text for the parser: the synopsis, the global flags,
// and every mode with its flags.
func (p *Parser) Usage() string {
	var sb strings.Builder

	synopsis := fmt.Sprintf("Usage: %s [flags] <config_path> [path=value ...]", p.name)
	if p.modes.Len() > 0 {
		synopsis += " [mode [mode-flags ...]]"
	}
	sb.WriteString(synopsis)
	sb.WriteString("\n")

	if p.globals.Len() > 0 {
		sb.WriteString("\nFlags:\n")
		sb.WriteString(p.globals.Usage())
	}

	modes := p.modes.Modes()
	if len(modes) == 0 {
		return sb.String()
	}

	width := 0
	for _, m := range modes {
		width = max(width, len(m.Name()))
	}
	sb.WriteString("\nModes:\n")
	for _, m := range modes {
		fmt.Fprintf(&sb, "  %-*s  %s\n", width, m.Name(), m.Summary())
	}
	for _, m := range modes {
		if m.Flags().Len() == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\nFlags for %s:\n", m.Name())
		sb.WriteString(m.Flags().Usage())
	}
	return sb.String()
}
