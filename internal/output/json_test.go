package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"model": map[string]any{"arch": "LSTM", "lr": 1e-5, "layers": []any{64, 32}},
		"seed":  7,
		"cmd_args": map[string]any{
			"config_path": "exp.yaml",
			"mode":        "train",
			"overrides":   []any{"model.arch=LSTM"},
		},
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, sampleDoc()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	// Verify it's valid JSON
	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	model, ok := parsed["model"].(map[string]any)
	if !ok {
		t.Fatalf("model = %T, want object", parsed["model"])
	}
	if model["arch"] != "LSTM" {
		t.Errorf("model.arch = %v, want LSTM", model["arch"])
	}
	if parsed["seed"] != float64(7) {
		t.Errorf("seed = %v, want 7", parsed["seed"])
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"yaml", "yml", "json", "text"} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q) error: %v", format, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
