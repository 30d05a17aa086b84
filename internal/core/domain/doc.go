// Package domain defines the core domain models for attendctl.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling: the console session and
// the identity decoded from its token, the role hierarchy used for
// access decisions, and the metric samples extracted from a
// Prometheus text-exposition payload.
package domain
