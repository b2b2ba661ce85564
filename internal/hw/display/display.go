package display

// Display is the high-level contract the rest of the application uses
// to put short text on whatever output device is attached, regardless
// of how it's driven (GPIO parallel bus, I2C, a mock, etc.).
type Display interface {
	// Clear wipes the display and homes the cursor.
	Clear() error
	// SetCursor moves to row (0 or 1) and column (0-15).
	SetCursor(row, col int) error
	// Print writes a string at the current cursor position.
	Print(s string) error
	// PrintInt writes an integer at the current cursor position.
	PrintInt(v int) error
	Close() error
}
