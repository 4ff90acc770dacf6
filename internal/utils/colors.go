package utils

const maxRGB = 0xFFFFFF

func IntToRGB(rgb uint32) (uint8, uint8, uint8) {
	r := (rgb >> 16) & 0xFF
	g := (rgb >> 8) & 0xFF
	b := rgb & 0xFF

	return uint8(r), uint8(g), uint8(b)
}

func RGBToInt(r, g, b uint8) uint32 {
	return uint32(r)*65536 + uint32(g)*256 + uint32(b)
}

// ClampedRGBToInt packs components that may fall outside 0-255, clamping each.
func ClampedRGBToInt(r, g, b int) uint32 {
	return RGBToInt(uint8(Clamp(r, 0, 255)), uint8(Clamp(g, 0, 255)), uint8(Clamp(b, 0, 255)))
}

func ValidRGB(rgb uint32) bool {
	return rgb <= maxRGB
}
