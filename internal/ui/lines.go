package ui

import (
	"fmt"
	"strconv"

	"tilewave/internal/core"
)

// panelLines flattens a parameter snapshot into the rows shown by the HUD.
func panelLines(snap core.ParameterSnapshot) []string {
	var lines []string
	for i, g := range snap.Groups {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	return lines
}

// stepAdjust returns the steps-per-tick value after a halve (-1) or double
// (+1) request, or ok=false when the snapshot carries no usable value.
func stepAdjust(snap core.ParameterSnapshot, direction int) (int, bool) {
	p, ok := snap.Lookup("spt")
	if !ok {
		return 0, false
	}
	cur, err := strconv.Atoi(p.Value)
	if err != nil || cur < 1 {
		return 0, false
	}
	if direction < 0 {
		return max(cur/2, 1), true
	}
	return cur * 2, true
}
