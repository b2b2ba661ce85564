package zonemap

import (
	"github.com/cjeanneret/JoyGo/internal/logic/direction"
)

// Zone summarises where one direction lives on the sample plane.
type Zone struct {
	Label  string `json:"label"`
	Name   string `json:"name"`
	Points int    `json:"points"`

	// Bounding box of the zone, in ADC units. Only meaningful when
	// Points > 0; the Center zone is not contiguous (dead zone plus
	// fallback gaps), so its box usually spans the whole plane.
	XMin uint8 `json:"x_min"`
	XMax uint8 `json:"x_max"`
	YMin uint8 `json:"y_min"`
	YMax uint8 `json:"y_max"`
}

// Map is the full-plane classification summary for one threshold set,
// indexed by direction (Center first, SouthWest last).
type Map struct {
	Zones []Zone `json:"zones"`
}

// Build classifies every possible 8-bit sample pair and aggregates the
// result per direction. 65536 points; cheap enough to recompute on
// demand rather than cache.
func Build(t direction.Thresholds) Map {
	zones := make([]Zone, 9)
	for d := direction.Center; d <= direction.SouthWest; d++ {
		zones[d] = Zone{Label: d.Label(), Name: d.String()}
	}

	for xi := 0; xi <= 255; xi++ {
		for yi := 0; yi <= 255; yi++ {
			x, y := uint8(xi), uint8(yi)
			z := &zones[direction.Classify(x, y, t)]
			if z.Points == 0 {
				z.XMin, z.XMax, z.YMin, z.YMax = x, x, y, y
			} else {
				if x < z.XMin {
					z.XMin = x
				}
				if x > z.XMax {
					z.XMax = x
				}
				if y < z.YMin {
					z.YMin = y
				}
				if y > z.YMax {
					z.YMax = y
				}
			}
			z.Points++
		}
	}
	return Map{Zones: zones}
}

// TotalPoints returns the number of classified samples across all
// zones.
func (m Map) TotalPoints() int {
	total := 0
	for _, z := range m.Zones {
		total += z.Points
	}
	return total
}

// Zone returns the summary for one direction. Out-of-range directions
// return an empty Zone, mirroring the "?" label sentinel.
func (m Map) Zone(d direction.Direction) Zone {
	if d < 0 || int(d) >= len(m.Zones) {
		return Zone{Label: d.Label(), Name: d.String()}
	}
	return m.Zones[d]
}
