package dispatch

import "errors"

// Sentinels shared across dispatch packages.
// Packages wrap these with detail; match them with errors.Is.
var (
	// ErrBadConfig marks a component that cannot be built from the configuration it was given.
	ErrBadConfig = errors.New("bad config")

	ErrMissingData = errors.New("missing data")
	ErrNotExist    = errors.New("not exist")

	// ErrNotValid marks a value outside its allowed set, such as an unknown Environment.
	ErrNotValid = errors.New("invalid")
)
