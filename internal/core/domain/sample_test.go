package domain

import "testing"

func TestSample_GroupKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"biometric_events_total", "biometric"},
		{"biometric_errors_total", "biometric"},
		{"uptime", "uptime"},
		{"esp32_heap_free_bytes", "esp32"},
		{"_leading_underscore", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		s := &Sample{Name: tt.name}
		if got := s.GroupKey(); got != tt.key {
			t.Errorf("GroupKey(%q) = %q, want %q", tt.name, got, tt.key)
		}
	}
}

func TestSample_Float(t *testing.T) {
	tests := []struct {
		value string
		want  float64
		ok    bool
	}{
		{"42", 42, true},
		{"0.5", 0.5, true},
		{"1e6", 1e6, true},
		{"NaN", 0, true}, // NaN parses; the zero return is unused
		{"forty-two", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		s := &Sample{Value: tt.value}
		got, ok := s.Float()
		if ok != tt.ok {
			t.Errorf("Float(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			continue
		}
		if ok && tt.value != "NaN" && got != tt.want {
			t.Errorf("Float(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
