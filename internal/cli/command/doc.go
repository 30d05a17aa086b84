// Package command defines the attendctl CLI.
//
// It uses urfave/cli/v2 for parsing. All shared state (configuration,
// session service, API client, storage) lives in an Env constructed
// once per invocation and injected into every action; nothing here is
// a package-level singleton.
package command
