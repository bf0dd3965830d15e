package spf

import "errors"

// ErrUnknownSource indicates SPF was called with a source node absent from
// the graph (spec §4.2.2 "Failure: UnknownSource").
var ErrUnknownSource = errors.New("spf: unknown source node")

// ErrInfeasible names the case where the ALL_MIN_COST_WITH_CAP_REMAINING
// selector finds no candidate edge with residual capacity above epsilon.
// The selector reports that case through its ok result; no function in
// this package returns ErrInfeasible.
var ErrInfeasible = errors.New("spf: no edge with residual capacity remaining")
