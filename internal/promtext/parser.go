package promtext

import (
	"strings"
	"unicode/utf8"

	"github.com/avelarde/attendctl-go/internal/core/domain"
)

const (
	helpMarker = "# HELP "
	typeMarker = "# TYPE "
)

// Parse converts a text-exposition payload into an ordered sample
// sequence. Output order is input line order. A payload that is not
// valid text is rejected with domain.ErrInputType; malformed lines
// inside a valid payload are skipped, never fatal.
func Parse(payload []byte) ([]domain.Sample, error) {
	if !utf8.Valid(payload) {
		return nil, domain.ErrInputType.WithDetails("payload is not valid UTF-8")
	}
	return ParseString(string(payload)), nil
}

// ParseString parses an already-textual payload.
func ParseString(text string) []domain.Sample {
	var samples []domain.Sample

	// Help and type declarations carry forward to every following
	// sample until the next declaration replaces them.
	currentHelp := ""
	currentType := domain.MetricTypeUnknown

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			switch {
			case strings.HasPrefix(trimmed, helpMarker):
				currentHelp = helpText(trimmed)
			case strings.HasPrefix(trimmed, typeMarker):
				currentType = typeToken(trimmed)
			}
			// Any other comment line is ignored.
			continue
		}

		sample, ok := parseSample(trimmed, currentType, currentHelp)
		if !ok {
			continue
		}
		samples = append(samples, sample)
	}

	return samples
}

// helpText extracts the free-text description from a # HELP line,
// dropping the marker and the metric name token that follows it.
func helpText(line string) string {
	rest := strings.TrimPrefix(line, helpMarker)
	_, text, found := strings.Cut(rest, " ")
	if !found {
		return ""
	}
	return text
}

// typeToken extracts the declared type from a # TYPE line: the fourth
// whitespace-separated token ("# TYPE <name> <type>").
func typeToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return domain.MetricTypeUnknown
	}
	return fields[3]
}

// parseSample parses one sample line. The value is the final
// whitespace-separated token, so the line splits at its last space;
// a line with no space at all is malformed and dropped.
func parseSample(line, metricType, help string) (domain.Sample, bool) {
	spaceIdx := strings.LastIndex(line, " ")
	if spaceIdx == -1 {
		return domain.Sample{}, false
	}

	metricPart := line[:spaceIdx]
	value := line[spaceIdx+1:]

	name := metricPart
	labels := map[string]string{}

	if braceIdx := strings.Index(metricPart, "{"); braceIdx != -1 {
		name = metricPart[:braceIdx]
		labels = parseLabels(labelBlock(metricPart, braceIdx))
	}

	return domain.Sample{
		Name:   name,
		Value:  value,
		Type:   metricType,
		Help:   help,
		Labels: labels,
	}, true
}

// labelBlock returns the text between the first "{" and the last "}".
// When the closing brace is missing, the block runs to the end of the
// metric part.
func labelBlock(metricPart string, braceIdx int) string {
	closeIdx := strings.LastIndex(metricPart, "}")
	if closeIdx <= braceIdx {
		return metricPart[braceIdx+1:]
	}
	return metricPart[braceIdx+1 : closeIdx]
}

// parseLabels parses a comma-separated key=value list. Quotes are
// stripped from values. A pair missing "=", or with an empty key or
// value, is skipped on its own without discarding its neighbors.
func parseLabels(block string) map[string]string {
	labels := map[string]string{}
	for _, pair := range strings.Split(block, ",") {
		key, val, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.ReplaceAll(strings.TrimSpace(val), `"`, "")
		if key == "" || val == "" {
			continue
		}
		labels[key] = val
	}
	return labels
}
