package view

import (
	"fmt"

	"github.com/Markof87/AI-SimpleSoccer/internal/game"
)

// OverlayKind indexes one debug overlay.
type OverlayKind int

const (
	OverlayStates OverlayKind = iota
	OverlayIDs
	OverlaySupportSpots
	OverlayRegions
	OverlayControllingTeam
	OverlayViewTargets
	OverlayThreatened
	overlayCount
)

var overlayNames = [overlayCount]string{
	OverlayStates:          "states",
	OverlayIDs:             "ids",
	OverlaySupportSpots:    "support spots",
	OverlayRegions:         "regions",
	OverlayControllingTeam: "controlling team",
	OverlayViewTargets:     "view targets",
	OverlayThreatened:      "threatened",
}

func (k OverlayKind) String() string {
	if k < 0 || k >= overlayCount {
		return "unknown"
	}
	return overlayNames[k]
}

// Overlays is the on/off state of every debug overlay.
type Overlays [overlayCount]bool

// OverlaysFromParams takes the initial overlay state from the tuning set.
func OverlaysFromParams(prm game.Params) Overlays {
	var o Overlays
	o[OverlayStates] = prm.ShowStates
	o[OverlayIDs] = prm.ShowIDs
	o[OverlaySupportSpots] = prm.ShowSupportSpots
	o[OverlayRegions] = prm.ShowRegions
	o[OverlayControllingTeam] = prm.ShowControllingTeam
	o[OverlayViewTargets] = prm.ShowViewTargets
	o[OverlayThreatened] = prm.HighlightIfThreatened
	return o
}

// On reports whether overlay k is shown.
func (o *Overlays) On(k OverlayKind) bool {
	if k < 0 || k >= overlayCount {
		return false
	}
	return o[k]
}

// Toggle flips overlay k. Out of range kinds are ignored.
func (o *Overlays) Toggle(k OverlayKind) {
	if k < 0 || k >= overlayCount {
		return
	}
	o[k] = !o[k]
}

// Legend returns one HUD line per overlay with its number key.
func (o *Overlays) Legend() []string {
	lines := make([]string, 0, overlayCount)
	for k := OverlayKind(0); k < overlayCount; k++ {
		on := " "
		if o[k] {
			on = "*"
		}
		lines = append(lines, fmt.Sprintf("  [%d]%s %s", k+1, on, k))
	}
	return lines
}
