package parser

import "errors"

// ErrUnreachable mirrors spec.md §7's Unreachable error kind: every regime
// ended the scan at +Inf, which should be impossible for nonempty input
// and signals an internal invariant violation. internal/codec matches it
// with errors.Is and translates it into codec.Error{Kind: Unreachable}.
var ErrUnreachable = errors.New("parser: no regime reached the end of input")
