package direction

import "fmt"

// Thresholds parameterizes the zone boundaries on the 8-bit (x, y)
// sample plane. All values are raw ADC units (0-255).
//
//	    Y=255 (North)
//	       |
//	 X=0 --+-- X=255
//	(West) |   (East)
//	    Y=0 (South)
type Thresholds struct {
	CenterXMin uint8 // X lower bound of the dead zone
	CenterXMax uint8 // X upper bound of the dead zone
	CenterYMin uint8 // Y lower bound of the dead zone
	CenterYMax uint8 // Y upper bound of the dead zone

	NorthY uint8 // Y at or above this (with X centered) = North
	SouthY uint8 // Y at or below this (with X centered) = South
	EastX  uint8 // X at or above this (with Y centered) = East
	WestX  uint8 // X at or below this (with Y centered) = West

	DiagonalHigh uint8 // floor for the "high" axis of NE/SE
	DiagonalLow  uint8 // ceiling for the "low" axis of NW/SW

	// CorrectedEastWest bounds the Y band of the East/West checks by
	// CenterYMax instead of CenterXMax. The reference boundary logic
	// uses CenterXMax there; keep false for compatibility.
	CorrectedEastWest bool
}

// DefaultThresholds returns the reference calibration for the stock
// joystick module.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CenterXMin:   70,
		CenterXMax:   180,
		CenterYMin:   110,
		CenterYMax:   160,
		NorthY:       240,
		SouthY:       50,
		EastX:        240,
		WestX:        70,
		DiagonalHigh: 230,
		DiagonalLow:  50,
	}
}

// Validate checks the ordering constraints that keep the zones
// non-contradictory. The uint8 fields already guarantee the 0-255
// range.
func (t Thresholds) Validate() error {
	if t.CenterXMin > t.CenterXMax {
		return fmt.Errorf("center X bounds inverted: min %d > max %d", t.CenterXMin, t.CenterXMax)
	}
	if t.CenterYMin > t.CenterYMax {
		return fmt.Errorf("center Y bounds inverted: min %d > max %d", t.CenterYMin, t.CenterYMax)
	}
	if t.DiagonalLow > t.DiagonalHigh {
		return fmt.Errorf("diagonal thresholds inverted: low %d > high %d", t.DiagonalLow, t.DiagonalHigh)
	}
	if t.NorthY <= t.CenterYMax {
		return fmt.Errorf("north Y threshold %d must be above the dead zone (center_y_max %d)", t.NorthY, t.CenterYMax)
	}
	if t.SouthY >= t.CenterYMin {
		return fmt.Errorf("south Y threshold %d must be below the dead zone (center_y_min %d)", t.SouthY, t.CenterYMin)
	}
	if t.EastX <= t.CenterXMax {
		return fmt.Errorf("east X threshold %d must be above the dead zone (center_x_max %d)", t.EastX, t.CenterXMax)
	}
	if t.WestX > t.CenterXMin {
		return fmt.Errorf("west X threshold %d must not exceed the dead zone edge (center_x_min %d)", t.WestX, t.CenterXMin)
	}
	return nil
}
