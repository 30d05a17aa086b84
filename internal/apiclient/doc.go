// Package apiclient provides HTTP communication with the attendance
// backend: login, attendance records, aggregate stats and the raw
// Prometheus metrics payload.
//
// Every authenticated request carries the session's bearer token and
// a generated request ID. Transport failures surface as
// domain.ErrNetwork so the UI layer can offer a retry.
package apiclient
