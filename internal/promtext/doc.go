// Package promtext parses Prometheus text-exposition payloads into
// structured metric samples.
//
// The parser is deliberately tolerant: a malformed sample line or
// label pair is skipped without aborting the rest of the payload,
// and parsing the same text twice yields identical ordered output.
// It fails only when the payload is not text at all.
package promtext
