package spooky

import "github.com/pkg/errors"

// ErrNilInput is returned when Update is called with a nil byte slice.
// A rejected Update leaves the Hasher's state untouched.
var ErrNilInput = errors.New("spooky: Update called with a nil byte slice")

// ErrRangeOutOfBounds is returned by the range-checked convenience
// wrappers when the requested (start, length) window does not fit
// inside the supplied input, or a decoded State has the wrong length.
var ErrRangeOutOfBounds = errors.New("spooky: start/length window out of bounds")
