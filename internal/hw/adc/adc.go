package adc

// Sampler produces one completed 8-bit reading per axis on demand.
// Implementations own whatever conversion or event machinery sits
// underneath; by the time Sample returns, both values are plain bytes.
type Sampler interface {
	// Sample returns the current X and Y axis values, 0-255 each.
	Sample() (x, y uint8, err error)
	Close() error
}

// Percent converts a raw 8-bit sample to 0-100.
func Percent(v uint8) uint8 {
	return uint8(uint16(v) * 100 / 255)
}

// scale10to8 keeps the top 8 bits of a 10-bit conversion, like a
// left-adjusted ADC read.
func scale10to8(raw uint16) uint8 {
	return uint8(raw >> 2)
}
