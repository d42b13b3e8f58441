package output

import (
	"fmt"
	"io"
	"os"
)

// Writer writes a configuration tree in a specific format.
type Writer interface {
	Write(w io.Writer, doc map[string]any) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "yaml", "yml":
		return &YAMLWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "text":
		return &TextWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteDocument writes doc to outPath, or to stdout when outPath is empty.
func WriteDocument(doc map[string]any, format, outPath string, stdout io.Writer) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	if outPath == "" {
		return writer.Write(stdout, doc)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := writer.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
