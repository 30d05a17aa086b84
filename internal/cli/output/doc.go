// Package output renders command results for the attendctl CLI.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: tabwriter-based tables with wide-column support
//   - json.go: JSON output
//   - yaml.go: YAML output
//
// Table is the default human format; json and yaml exist for
// scripting.
package output
