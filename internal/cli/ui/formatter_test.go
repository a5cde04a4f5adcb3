package ui

import (
	"bytes"
	"encoding/json"
	"testing"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Stdout
	Stdout = &buf
	t.Cleanup(func() { Stdout = old })
	return &buf
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      OutputFormat
		wantError bool
	}{
		{
			name:  "empty string defaults to pretty",
			input: "",
			want:  FormatPretty,
		},
		{
			name:  "pretty format",
			input: "pretty",
			want:  FormatPretty,
		},
		{
			name:  "json format",
			input: "json",
			want:  FormatJSON,
		},
		{
			name:      "invalid format",
			input:     "xml",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantError {
				t.Errorf("ParseFormat() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJSONFormatter_Output(t *testing.T) {
	buf := captureStdout(t)

	data := map[string]interface{}{
		"name": "a.txt",
		"size": 12,
	}
	if err := NewJSONFormatter().Output(data); err != nil {
		t.Fatalf("Output() error = %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if result["name"] != "a.txt" || result["size"] != float64(12) {
		t.Errorf("Unexpected JSON output: %v", result)
	}
}

func TestPrettyFormatter_Output(t *testing.T) {
	tests := []struct {
		name string
		data interface{}
		want string
	}{
		{name: "string passes through", data: "a  b\n", want: "a  b\n"},
		{name: "lines get terminators", data: []string{"x", "y"}, want: "x\ny\n"},
		{name: "other values print on a line", data: 42, want: "42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			if err := NewPrettyFormatter().Output(tt.data); err != nil {
				t.Fatalf("Output() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Output() wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestFormatter_IsJSON(t *testing.T) {
	if !NewJSONFormatter().IsJSON() {
		t.Error("JSONFormatter.IsJSON() should return true")
	}
	if NewPrettyFormatter().IsJSON() {
		t.Error("PrettyFormatter.IsJSON() should return false")
	}
}

func TestSetGlobalFormatter(t *testing.T) {
	original := GlobalFormatter
	defer func() { GlobalFormatter = original }()

	if err := SetGlobalFormatter(FormatJSON); err != nil {
		t.Fatalf("SetGlobalFormatter(FormatJSON) error = %v", err)
	}
	if !GlobalFormatter.IsJSON() {
		t.Error("GlobalFormatter should be JSON formatter")
	}

	if err := SetGlobalFormatter(FormatPretty); err != nil {
		t.Fatalf("SetGlobalFormatter(FormatPretty) error = %v", err)
	}
	if GlobalFormatter.IsJSON() {
		t.Error("GlobalFormatter should be pretty formatter")
	}

	if err := SetGlobalFormatter("yaml"); err == nil {
		t.Error("SetGlobalFormatter(yaml) should fail")
	}
}
