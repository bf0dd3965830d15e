package netnodel

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// Link is a directed edge from Source to Target with a stable, globally
// unique ID assigned at creation and preserved across all transformations.
//
// ID format: "{source}|{target}|<22-char url-safe base64 of a v4 UUID,
// no padding>" — see NewLinkID.
type Link struct {
	ID         string
	Source     string
	Target     string
	Capacity   float64
	Cost       float64
	Enabled    bool
	RiskGroups map[string]struct{}
	Attrs      AttrMap
}

// NewLinkID mints a stable link identifier of the form
// "{source}|{target}|<22-char-b64>": 16 random bytes from a version-4 UUID,
// URL-safe base64 encoded without padding (always 22 ASCII characters).
//
// Grounded on github.com/google/uuid (wired from Hola-to-network_logistics_problem
// and leofalp-aigo); encoding/base64.RawURLEncoding supplies the unpadded
// url-safe alphabet directly, no third-party codec needed.
func NewLinkID(source, target string) string {
	u := uuid.New()
	suffix := base64.RawURLEncoding.EncodeToString(u[:])

	return source + "|" + target + "|" + suffix
}

// LinkOption configures a Link at construction time.
type LinkOption func(*Link)

// WithLinkID overrides the auto-minted link ID (used when reconstructing a
// Network from a serialized form where IDs must be preserved exactly).
func WithLinkID(id string) LinkOption {
	return func(l *Link) { l.ID = id }
}

// WithLinkDisabled marks the link disabled at construction.
func WithLinkDisabled() LinkOption {
	return func(l *Link) { l.Enabled = false }
}

// WithLinkAttrs seeds the link's attribute map.
func WithLinkAttrs(attrs AttrMap) LinkOption {
	return func(l *Link) { l.Attrs = attrs }
}

// WithLinkRiskGroups adds the link to the named risk groups.
func WithLinkRiskGroups(groups ...string) LinkOption {
	return func(l *Link) {
		for _, g := range groups {
			l.RiskGroups[g] = struct{}{}
		}
	}
}

// NewLink constructs a Link with a freshly minted ID (unless overridden via
// WithLinkID). Returns ErrNonPositiveCapacity / ErrNegativeCost on invalid
// inputs.
func NewLink(source, target string, capacity, cost float64, opts ...LinkOption) (*Link, error) {
	if capacity <= 0 {
		return nil, ErrNonPositiveCapacity
	}
	if cost < 0 {
		return nil, ErrNegativeCost
	}
	l := &Link{
		ID:         NewLinkID(source, target),
		Source:     source,
		Target:     target,
		Capacity:   capacity,
		Cost:       cost,
		Enabled:    true,
		RiskGroups: make(map[string]struct{}),
		Attrs:      make(AttrMap),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// FlattenedAttrs returns the condition-evaluation view of this link.
func (l *Link) FlattenedAttrs() AttrMap {
	top := map[string]interface{}{
		"disabled": !l.Enabled,
		"capacity": l.Capacity,
		"cost":     l.Cost,
		"source":   l.Source,
		"target":   l.Target,
	}

	return Flatten(top, l.Attrs)
}

// Clone returns a copy of l safe for independent mutation of RiskGroups.
func (l *Link) Clone() *Link {
	clone := &Link{
		ID:         l.ID,
		Source:     l.Source,
		Target:     l.Target,
		Capacity:   l.Capacity,
		Cost:       l.Cost,
		Enabled:    l.Enabled,
		RiskGroups: make(map[string]struct{}, len(l.RiskGroups)),
		Attrs:      l.Attrs.Clone(),
	}
	for g := range l.RiskGroups {
		clone.RiskGroups[g] = struct{}{}
	}

	return clone
}
