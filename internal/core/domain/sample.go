package domain

import (
	"strconv"
	"strings"
)

// Metric type strings carried forward from # TYPE declarations.
const (
	MetricTypeCounter   = "counter"
	MetricTypeGauge     = "gauge"
	MetricTypeHistogram = "histogram"
	MetricTypeUnknown   = "unknown"
)

// GroupOther is the catch-all group key for samples whose name yields
// no usable prefix.
const GroupOther = "other"

// Sample is one structured metric extracted from a Prometheus
// text-exposition payload.
//
// Samples are immutable value objects: a parse builds the full
// sequence fresh and never mutates emitted records.
type Sample struct {
	// Name is the metric identifier.
	Name string `json:"name"`

	// Value is the raw value token, preserved verbatim.
	Value string `json:"value"`

	// Type is the most recent preceding # TYPE declaration, or
	// "unknown" when none was seen.
	Type string `json:"type"`

	// Help is the most recent preceding # HELP text, possibly empty.
	Help string `json:"help,omitempty"`

	// Labels maps label keys to unquoted values. Never nil.
	Labels map[string]string `json:"labels"`
}

// Float parses the raw value. The second return is false when the
// value is not numeric.
func (s *Sample) Float() (float64, bool) {
	v, err := strconv.ParseFloat(s.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// GroupKey derives the grouping key for the sample: the substring of
// the name before the first underscore, or the whole name when it has
// none. An empty result falls into the catch-all group.
func (s *Sample) GroupKey() string {
	key, _, _ := strings.Cut(s.Name, "_")
	if key == "" {
		return GroupOther
	}
	return key
}
