package yeelight

import (
	"encoding/json"

	"github.com/cybre/yeelight-office/internal/errors"
	"github.com/cybre/yeelight-office/internal/utils"
)

type command struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

func newCommand(id int, op Operation) command {
	return command{
		ID:     id,
		Method: op.Method(),
		Params: op.Params(),
	}
}

// encode returns the wire form of the command, CRLF terminated.
func (c command) encode() ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal bulb command")
	}

	return append(b, lineEnding...), nil
}

// Operation is one of the bulb methods this package can send. The set is
// closed: SetPower, SetBrightness and SetRGB.
type Operation interface {
	Method() string
	Params() []any
	Validate() error

	operation()
}

// SetPower switches the bulb on or off. Duration is in milliseconds.
type SetPower struct {
	Power    PowerStatus
	Effect   Effect
	Duration int
	Mode     PowerMode
}

func (op SetPower) Method() string { return "set_power" }

func (op SetPower) Params() []any {
	return []any{op.Power, op.Effect, op.Duration, op.Mode}
}

func (op SetPower) Validate() error {
	if op.Power != PowerOn && op.Power != PowerOff {
		return errors.Wrapf(ErrPowerInvalid, "set_power %q", op.Power)
	}
	if op.Effect != Smooth && op.Effect != Sudden {
		return errors.Wrapf(ErrEffectInvalid, "set_power %q", op.Effect)
	}
	if op.Duration < 0 {
		return errors.Wrapf(ErrDurationInvalid, "set_power %d", op.Duration)
	}
	if !utils.InRange(op.Mode, PowerModeNormal, PowerModeNight) {
		return errors.Wrapf(ErrPowerModeInvalid, "set_power %d", op.Mode)
	}

	return nil
}

func (SetPower) operation() {}

// SetBrightness sets brightness as a percentage, 1-100.
type SetBrightness struct {
	Brightness int
}

func (op SetBrightness) Method() string { return "set_bright" }

func (op SetBrightness) Params() []any {
	return []any{op.Brightness}
}

func (op SetBrightness) Validate() error {
	if !utils.InRange(op.Brightness, 1, 100) {
		return errors.Wrapf(ErrBrightnessInvalid, "set_bright %d", op.Brightness)
	}

	return nil
}

func (SetBrightness) operation() {}

type SetRGB struct {
	RGB RGB
}

func (op SetRGB) Method() string { return "set_rgb" }

func (op SetRGB) Params() []any {
	return []any{uint32(op.RGB)}
}

func (op SetRGB) Validate() error {
	if !op.RGB.Valid() {
		return errors.Wrapf(ErrRGBInvalid, "set_rgb %#x", uint32(op.RGB))
	}

	return nil
}

func (SetRGB) operation() {}

// PowerRGB is set_power with the bulb switching into RGB mode, which is
// what every scene expects.
func PowerRGB(power PowerStatus, effect Effect, duration int) SetPower {
	return SetPower{Power: power, Effect: effect, Duration: duration, Mode: PowerModeRGB}
}
