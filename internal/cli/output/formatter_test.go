package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sampleRow struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
	Extra string `json:"extra" table:"wide"`
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatTable, "*output.TableFormatter"},
		{FormatJSON, "*output.JSONFormatter"},
		{FormatYAML, "*output.YAMLFormatter"},
		{Format("bogus"), "*output.TableFormatter"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format, false)
			if got := typeName(f); got != tt.want {
				t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TableFormatter:
		return "*output.TableFormatter"
	case *JSONFormatter:
		return "*output.JSONFormatter"
	case *YAMLFormatter:
		return "*output.YAMLFormatter"
	default:
		return "unknown"
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.Format(&buf, []sampleRow{{Name: "a", Count: 2}}); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded []sampleRow
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "a" || decoded[0].Count != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}
	if err := f.Format(&buf, map[string]int{"total": 7}); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded map[string]int
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["total"] != 7 {
		t.Errorf("total = %d, want 7", decoded["total"])
	}
}

func TestTableFormatter_Slice(t *testing.T) {
	rows := []sampleRow{
		{Name: "biometric_events_total", Count: 42, Extra: "raw"},
		{Name: "esp32_uptime", Count: 1, Extra: ""},
	}

	t.Run("default hides wide columns", func(t *testing.T) {
		var buf bytes.Buffer
		f := &TableFormatter{}
		if err := f.Format(&buf, rows); err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "NAME") || !strings.Contains(out, "COUNT") {
			t.Errorf("headers missing:\n%s", out)
		}
		if strings.Contains(out, "EXTRA") {
			t.Errorf("wide column shown without wide mode:\n%s", out)
		}
		if !strings.Contains(out, "biometric_events_total") {
			t.Errorf("row missing:\n%s", out)
		}
	})

	t.Run("wide mode shows all columns", func(t *testing.T) {
		var buf bytes.Buffer
		f := &TableFormatter{Wide: true}
		if err := f.Format(&buf, rows); err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if !strings.Contains(buf.String(), "EXTRA") {
			t.Errorf("wide column missing:\n%s", buf.String())
		}
	})

	t.Run("no headers", func(t *testing.T) {
		var buf bytes.Buffer
		f := &TableFormatter{NoHeaders: true}
		if err := f.Format(&buf, rows); err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if strings.Contains(buf.String(), "NAME") {
			t.Errorf("headers present with NoHeaders:\n%s", buf.String())
		}
	})

	t.Run("empty string renders placeholder", func(t *testing.T) {
		var buf bytes.Buffer
		f := &TableFormatter{Wide: true}
		if err := f.Format(&buf, rows); err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		last := lines[len(lines)-1]
		if !strings.HasSuffix(strings.TrimRight(last, " "), "-") {
			t.Errorf("empty cell not rendered as placeholder: %q", last)
		}
	})
}

func TestTableFormatter_Struct(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	data := struct {
		TotalRecords int64 `json:"total_records"`
		TodayRecords int64 `json:"today_records"`
	}{128, 5}

	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"FIELD", "VALUE", "TOTAL_RECORDS", "128", "TODAY_RECORDS", "5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatter_PrebuiltTable(t *testing.T) {
	table := &Table{Headers: []string{"GROUP", "SAMPLES"}}
	table.AddRow("biometric", "3")
	table.AddRow("esp32", "2")

	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, table); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "GROUP") || !strings.Contains(out, "biometric") {
		t.Errorf("prebuilt table not rendered:\n%s", out)
	}
}

func TestTableFormatter_FallbackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format(&buf, 42); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "42" {
		t.Errorf("fallback output = %q", buf.String())
	}
}
