package odm

import "errors"

// ErrInvalidConfiguration reports a value outside what the ODM schema
// or RWS accepts. It is raised at assignment time, never deferred to
// render, and a failed assignment leaves the prior value in place.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrTypeMismatch reports a child of the wrong kind passed to an
// attachment operation, or an enum value outside its closed set.
var ErrTypeMismatch = errors.New("type mismatch")
