package flowpolicy

import "errors"

// ErrUnknownPreset is returned when a Policy is constructed with a Preset
// value outside the five defined presets.
var ErrUnknownPreset = errors.New("flowpolicy: unknown preset")
