package direction

// adcMax is the top of the 8-bit sample range.
const adcMax = 255

// IsCentered reports whether (x, y) falls inside the rectangular dead
// zone around the rest position.
func IsCentered(x, y uint8, t Thresholds) bool {
	return x >= t.CenterXMin && x <= t.CenterXMax &&
		y >= t.CenterYMin && y <= t.CenterYMax
}

// Classify maps one (x, y) sample pair to a Direction.
//
// The zones overlap, so evaluation order is the tie-break policy: the
// dead zone wins over everything, diagonals win over cardinals, and a
// reading that matches no zone falls back to Center. Every possible
// 8-bit pair yields exactly one Direction; there is no error case.
func Classify(x, y uint8, t Thresholds) Direction {
	if IsCentered(x, y, t) {
		return Center
	}

	// Diagonals (corners) before cardinals.
	if x > t.DiagonalHigh && y > t.DiagonalHigh {
		return NorthEast
	}
	if x < t.DiagonalLow && y > adcMax-t.DiagonalLow {
		return NorthWest
	}
	if x > t.DiagonalHigh && y < t.DiagonalLow {
		return SouthEast
	}
	if x < t.DiagonalLow && y < t.DiagonalLow {
		return SouthWest
	}

	// Cardinals: the off axis must stay near center.
	if y >= t.NorthY && x >= t.CenterXMin && x <= t.CenterXMax {
		return North
	}
	if y <= t.SouthY && x >= t.CenterXMin && x <= t.CenterXMax {
		return South
	}
	// The East/West Y band historically tops out at CenterXMax rather
	// than CenterYMax; CorrectedEastWest selects the symmetric bound.
	yMax := t.CenterXMax
	if t.CorrectedEastWest {
		yMax = t.CenterYMax
	}
	if x >= t.EastX && y >= t.CenterYMin && y <= yMax {
		return East
	}
	if x <= t.WestX && y >= t.CenterYMin && y <= yMax {
		return West
	}

	// Boundary gaps between zones resolve to the rest position.
	return Center
}
