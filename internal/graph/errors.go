package graph

import "errors"

// ErrIgnored is the Go rendition of the original resolver's two-variant
// error type (ResolveErr::{Fail, Ignore}): a path that resolves into
// something this analysis deliberately does not follow -- a standard
// library crate, a package whose doc JSON was never loaded, or a
// `__private`-convention module -- rather than something that failed to
// resolve. Callers check for it with errors.Is and treat it as "no
// reachability edge here", not as a hard failure.
var ErrIgnored = errors.New("ignored: item is outside the analyzed package set")
