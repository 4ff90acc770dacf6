package yeelight

import (
	"testing"

	"github.com/cybre/yeelight-office/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestCommandEncode(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want string
	}{
		{
			name: "set power",
			op:   PowerRGB(PowerOn, Smooth, 5),
			want: `{"id":1,"method":"set_power","params":["on","smooth",5,2]}` + "\r\n",
		},
		{
			name: "set brightness",
			op:   SetBrightness{Brightness: 50},
			want: `{"id":1,"method":"set_bright","params":[50]}` + "\r\n",
		},
		{
			name: "set rgb",
			op:   SetRGB{RGB: 0x00FF7F},
			want: `{"id":1,"method":"set_rgb","params":[65407]}` + "\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := newCommand(1, tt.op).encode()
			require.NoError(t, err)
			require.Equal(t, tt.want, string(b))
		})
	}
}

func TestOperationValidate(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want error
	}{
		{"power on", PowerRGB(PowerOn, Smooth, 5), nil},
		{"power off sudden", PowerRGB(PowerOff, Sudden, 0), nil},
		{"bad power", PowerRGB("dim", Smooth, 5), ErrPowerInvalid},
		{"bad effect", PowerRGB(PowerOn, "fade", 5), ErrEffectInvalid},
		{"negative duration", PowerRGB(PowerOn, Smooth, -1), ErrDurationInvalid},
		{"bad mode", SetPower{Power: PowerOn, Effect: Smooth, Mode: 9}, ErrPowerModeInvalid},
		{"brightness low", SetBrightness{Brightness: 0}, ErrBrightnessInvalid},
		{"brightness high", SetBrightness{Brightness: 101}, ErrBrightnessInvalid},
		{"brightness edges", SetBrightness{Brightness: 100}, nil},
		{"rgb max", SetRGB{RGB: 0xFFFFFF}, nil},
		{"rgb overflow", SetRGB{RGB: 0x1000000}, ErrRGBInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseHex(t *testing.T) {
	for _, in := range []string{"00FF7F", "#00ff7f", "0x00FF7F", " 00FF7F "} {
		rgb, err := ParseHex(in)
		require.NoError(t, err, in)
		require.Equal(t, RGB(0x00FF7F), rgb, in)
	}

	for _, in := range []string{"", "FFF", "GG0000", "#1234567"} {
		_, err := ParseHex(in)
		require.ErrorIs(t, err, ErrRGBInvalid, in)
	}

	require.Equal(t, "FFA500", MustParseHex("ffa500").Hex())
	require.Panics(t, func() { MustParseHex("nope") })
}

func TestRGBFromComponents(t *testing.T) {
	for r := 0; r <= 255; r += 5 {
		for g := 0; g <= 255; g += 17 {
			for _, b := range []int{0, 1, 127, 254, 255} {
				rgb := RGBFromComponents(r, g, b)
				require.Equal(t, RGB(r*65536+g*256+b), rgb)

				gotR, gotG, gotB := rgb.Components()
				require.Equal(t, r, int(gotR))
				require.Equal(t, g, int(gotG))
				require.Equal(t, b, int(gotB))
			}
		}
	}

	require.Equal(t, RGB(0xFF0000), RGBFromComponents(999, -1, -50))
}

func TestRGBFromHSV(t *testing.T) {
	red, err := RGBFromHSV(0, 100)
	require.NoError(t, err)
	require.Equal(t, RGB(0xFF0000), red)

	white, err := RGBFromHSV(200, 0)
	require.NoError(t, err)
	require.Equal(t, RGB(0xFFFFFF), white)

	_, err = RGBFromHSV(360, 50)
	require.ErrorIs(t, err, ErrHueInvalid)

	_, err = RGBFromHSV(10, 101)
	require.ErrorIs(t, err, ErrSaturationInvalid)
}

func TestParseConnectionMode(t *testing.T) {
	mode, err := ParseConnectionMode("Per-Command")
	require.NoError(t, err)
	require.Equal(t, ModePerCommand, mode)

	mode, err = ParseConnectionMode("session")
	require.NoError(t, err)
	require.Equal(t, ModeSession, mode)

	_, err = ParseConnectionMode("pooled")
	require.Error(t, err)
	require.NotEmpty(t, errors.Stack(err))
}
