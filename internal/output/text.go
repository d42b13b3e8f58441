package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dshills/specparse/pkg/tree"
)

const cmdArgsKey = "cmd_args"

// TextWriter outputs one line per leaf value, with the invocation record of
// a namespace as a header.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, doc map[string]any) error {
	ew := &errWriter{w: w}

	body := doc
	if cmdArgs, ok := doc[cmdArgsKey].(map[string]any); ok {
		ew.printf("Config: %s\n", FormatValue(cmdArgs["config_path"]))
		if m, ok := cmdArgs["mode"].(string); ok {
			ew.printf("Mode: %s\n", m)
		}
		if overrides, ok := cmdArgs["overrides"].([]any); ok && len(overrides) > 0 {
			ew.println("Overrides:")
			for _, o := range overrides {
				ew.printf("  %s\n", FormatValue(o))
			}
		}
		ew.println(strings.Repeat("─", 60))

		body = make(map[string]any, len(doc))
		for k, v := range doc {
			if k != cmdArgsKey {
				body[k] = v
			}
		}
	}

	leaves := tree.Flatten(body)
	if len(leaves) == 0 {
		ew.println("(empty)")
		return ew.err
	}
	for _, leaf := range leaves {
		ew.printf("%s = %s\n", leaf.Path, FormatValue(leaf.Value))
	}
	return ew.err
}

// FormatValue renders a single value on one line: strings bare, nil as
// null, sequences and mappings as compact JSON.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case []any, map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
