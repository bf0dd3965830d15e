package netnodel

import "errors"

// Sentinel errors for the netnodel data model.
var (
	// ErrEmptyName indicates an operation was given an empty node, link, or
	// risk-group name.
	ErrEmptyName = errors.New("netnodel: name is empty")

	// ErrDuplicateNode indicates AddNode was called with a name already
	// present in the Network.
	ErrDuplicateNode = errors.New("netnodel: duplicate node")

	// ErrUnknownNode indicates a link or lookup referenced a node name that
	// does not exist in the Network.
	ErrUnknownNode = errors.New("netnodel: unknown node")

	// ErrDuplicateLink indicates AddLink was called with a link ID already
	// present in the Network.
	ErrDuplicateLink = errors.New("netnodel: duplicate link")

	// ErrUnknownLink indicates a lookup referenced a link ID that does not
	// exist in the Network.
	ErrUnknownLink = errors.New("netnodel: unknown link")

	// ErrUnknownRiskGroup indicates a reference to a risk-group name that
	// does not exist in the Network.
	ErrUnknownRiskGroup = errors.New("netnodel: unknown risk group")

	// ErrDuplicateRiskGroup indicates AddRiskGroup was called with a name
	// already present in the Network.
	ErrDuplicateRiskGroup = errors.New("netnodel: duplicate risk group")

	// ErrRiskGroupCycle indicates the risk-group parent/child forest
	// contains a cycle; reported during validation, never at evaluation
	// time (evaluation keeps a visited set only as defense-in-depth).
	ErrRiskGroupCycle = errors.New("netnodel: risk group cycle detected")

	// ErrNonPositiveCapacity indicates a Link was constructed with
	// capacity <= 0.
	ErrNonPositiveCapacity = errors.New("netnodel: link capacity must be positive")

	// ErrNegativeCost indicates a Link was constructed with cost < 0.
	ErrNegativeCost = errors.New("netnodel: link cost must be non-negative")
)
