package client

import "errors"

// Errors surfaced by downstream service calls. A downstream auth rejection is
// surfaced as our own rejection, never retried with different credentials;
// an unreachable downstream is an infrastructure fault, distinct from a
// trust failure.
var (
	ErrDownstreamUnavailable = errors.New("downstream service unavailable")
	ErrDownstreamRejected    = errors.New("downstream service rejected the request")
	ErrUserMissing           = errors.New("user does not exist")
)
