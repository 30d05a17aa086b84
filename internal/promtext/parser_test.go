package promtext

import (
	"errors"
	"reflect"
	"testing"

	"github.com/avelarde/attendctl-go/internal/core/domain"
)

const biometricPayload = `# HELP biometric_events_total Total biometric events
# TYPE biometric_events_total counter
biometric_events_total{device="esp32-1"} 42
`

func TestParseString_Basic(t *testing.T) {
	samples := ParseString(biometricPayload)
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}

	want := domain.Sample{
		Name:   "biometric_events_total",
		Value:  "42",
		Type:   "counter",
		Help:   "Total biometric events",
		Labels: map[string]string{"device": "esp32-1"},
	}
	if !reflect.DeepEqual(samples[0], want) {
		t.Errorf("sample = %+v, want %+v", samples[0], want)
	}
}

func TestParseString_CarryForward(t *testing.T) {
	input := `# HELP esp32_uptime_seconds Device uptime
# TYPE esp32_uptime_seconds gauge
esp32_uptime_seconds{device="esp32-1"} 120.5
esp32_uptime_seconds{device="esp32-2"} 98
# TYPE employee_checkins_total counter
employee_checkins_total 7
`
	samples := ParseString(input)
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}

	// Help and type stick until replaced.
	for i := 0; i < 2; i++ {
		if samples[i].Type != "gauge" || samples[i].Help != "Device uptime" {
			t.Errorf("sample %d = type %q help %q, want gauge/Device uptime", i, samples[i].Type, samples[i].Help)
		}
	}

	// A new TYPE replaces the type; the old HELP still carries forward.
	if samples[2].Type != "counter" {
		t.Errorf("sample 2 type = %q, want counter", samples[2].Type)
	}
	if samples[2].Help != "Device uptime" {
		t.Errorf("sample 2 help = %q, want carried-forward help", samples[2].Help)
	}
	if len(samples[2].Labels) != 0 {
		t.Errorf("sample 2 labels = %v, want empty", samples[2].Labels)
	}
}

func TestParseString_NoTypeDeclared(t *testing.T) {
	samples := ParseString("uptime 3600\n")
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if samples[0].Type != domain.MetricTypeUnknown {
		t.Errorf("type = %q, want unknown", samples[0].Type)
	}
	if samples[0].Help != "" {
		t.Errorf("help = %q, want empty", samples[0].Help)
	}
}

func TestParseString_MalformedLinesSkipped(t *testing.T) {
	// One malformed sample among N well-formed ones yields exactly N
	// records in original relative order.
	input := `a_total 1
this-line-has-no-value-token
b_total 2
# some stray comment
c_total 3
`
	samples := ParseString(input)
	if len(samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(samples))
	}
	for i, name := range []string{"a_total", "b_total", "c_total"} {
		if samples[i].Name != name {
			t.Errorf("samples[%d].Name = %q, want %q", i, samples[i].Name, name)
		}
	}
}

func TestParseString_MalformedLabelPairs(t *testing.T) {
	// A pair without "=" is dropped on its own; its neighbors survive.
	samples := ParseString(`req_total{method="GET",oops,code="200"} 5` + "\n")
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	want := map[string]string{"method": "GET", "code": "200"}
	if !reflect.DeepEqual(samples[0].Labels, want) {
		t.Errorf("labels = %v, want %v", samples[0].Labels, want)
	}
}

func TestParseString_UnterminatedLabelBlock(t *testing.T) {
	samples := ParseString(`req_total{method="GET" 5` + "\n")
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if samples[0].Name != "req_total" {
		t.Errorf("name = %q, want req_total", samples[0].Name)
	}
	if samples[0].Labels["method"] != "GET" {
		t.Errorf("labels = %v, want method=GET", samples[0].Labels)
	}
	if samples[0].Value != "5" {
		t.Errorf("value = %q, want 5", samples[0].Value)
	}
}

func TestParseString_Deterministic(t *testing.T) {
	input := biometricPayload + "uptime 3600\nesp32_heap_free_bytes 20480\n"
	first := ParseString(input)
	second := ParseString(input)
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same payload twice must yield identical output")
	}
}

func TestParseString_Empty(t *testing.T) {
	if samples := ParseString(""); len(samples) != 0 {
		t.Errorf("got %d samples for empty input, want 0", len(samples))
	}
	if samples := ParseString("\n\n  \n"); len(samples) != 0 {
		t.Errorf("got %d samples for blank input, want 0", len(samples))
	}
}

func TestParse_RejectsNonText(t *testing.T) {
	_, err := Parse([]byte{0xff, 0xfe, 0x00, 0x80})
	if !errors.Is(err, domain.ErrInputType) {
		t.Errorf("Parse(binary) error = %v, want ErrInputType", err)
	}

	samples, err := Parse([]byte("uptime 1\n"))
	if err != nil {
		t.Fatalf("Parse(text) error = %v", err)
	}
	if len(samples) != 1 {
		t.Errorf("got %d samples, want 1", len(samples))
	}
}
