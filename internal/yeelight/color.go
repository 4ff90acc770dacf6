package yeelight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crazy3lf/colorconv"
	"github.com/cybre/yeelight-office/internal/errors"
	"github.com/cybre/yeelight-office/internal/utils"
)

// RGB is a colour packed the way the bulb expects it: 0xRRGGBB.
type RGB uint32

// ParseHex reads a six digit hex colour. A leading "#" or "0x" is accepted.
func ParseHex(hex string) (RGB, error) {
	digits := strings.TrimSpace(hex)
	digits = strings.TrimPrefix(digits, "#")
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}

	if len(digits) != 6 {
		return 0, errors.Wrapf(ErrRGBInvalid, "parse hex colour %q", hex)
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrRGBInvalid, "parse hex colour %q", hex)
	}

	return RGB(value), nil
}

// MustParseHex is ParseHex for static colour tables.
func MustParseHex(hex string) RGB {
	rgb, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}

	return rgb
}

// RGBFromComponents packs r, g and b, clamping each to 0-255.
func RGBFromComponents(r, g, b int) RGB {
	return RGB(utils.ClampedRGBToInt(r, g, b))
}

// RGBFromHSV converts hue (0-359) and saturation (0-100) to a fully bright
// colour. Brightness is set separately on the bulb.
func RGBFromHSV(hue uint16, saturation uint8) (RGB, error) {
	if hue > 359 {
		return 0, errors.Wrapf(ErrHueInvalid, "hue %d", hue)
	}
	if saturation > 100 {
		return 0, errors.Wrapf(ErrSaturationInvalid, "saturation %d", saturation)
	}

	red, green, blue, err := colorconv.HSVToRGB(float64(hue), float64(saturation)/100.0, 1)
	if err != nil {
		return 0, errors.Wrapf(err, "convert HSV to RGB")
	}

	return RGB(utils.RGBToInt(red, green, blue)), nil
}

func (c RGB) Components() (uint8, uint8, uint8) {
	return utils.IntToRGB(uint32(c))
}

func (c RGB) Hex() string {
	return fmt.Sprintf("%06X", uint32(c))
}

func (c RGB) Valid() bool {
	return utils.ValidRGB(uint32(c))
}
