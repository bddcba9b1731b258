package color

// linearTable maps every 8-bit sRGB value to its linear intensity.
var linearTable = buildLinearTable()

func buildLinearTable() (t [256]float32) {
	for i := range t {
		t[i] = SRGBToLinear(float32(i) / 255)
	}
	return t
}

// DecodeChannel returns the linear intensity of an 8-bit sRGB component.
// It is a table lookup and agrees with SRGBToLinear(float32(s)/255).
//
//	DecodeChannel(128) // 0.2158605, not 0.5
func DecodeChannel(s uint8) float32 {
	return linearTable[s]
}
