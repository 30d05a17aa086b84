// Package service provides the session and authorization services
// for attendctl.
//
// SessionService owns the authoritative record of who is logged in,
// backed by a durable persistence collaborator. The authorization
// evaluator and the view guard read from it on every protected
// navigation.
package service
