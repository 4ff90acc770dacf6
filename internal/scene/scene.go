// Package scene holds the lighting presets and runs them against a bulb.
package scene

import (
	"fmt"
	"strings"

	"github.com/cybre/yeelight-office/internal/errors"
	"github.com/cybre/yeelight-office/internal/utils"
	"github.com/cybre/yeelight-office/internal/yeelight"
)

// transition used when powering on, in milliseconds
const transition = 5

var ErrUnknownScene = fmt.Errorf("unknown scene")

// Scene is a named, ordered list of operations.
type Scene struct {
	Name  string
	Steps []yeelight.Operation
}

var (
	Off = Scene{
		Name: "off",
		Steps: []yeelight.Operation{
			yeelight.PowerRGB(yeelight.PowerOff, yeelight.Smooth, 0),
		},
	}
	DoNotDisturb = Scene{
		Name: "dnd",
		Steps: []yeelight.Operation{
			yeelight.PowerRGB(yeelight.PowerOn, yeelight.Smooth, transition),
			yeelight.SetBrightness{Brightness: 75},
			yeelight.SetRGB{RGB: yeelight.MustParseHex("FF0000")},
		},
	}
	Work = Scene{
		Name: "work",
		Steps: []yeelight.Operation{
			yeelight.PowerRGB(yeelight.PowerOn, yeelight.Smooth, transition),
			yeelight.SetBrightness{Brightness: 50},
			yeelight.SetRGB{RGB: yeelight.MustParseHex("00FF7F")},
		},
	}
	Warning = Scene{
		Name: "warning",
		Steps: []yeelight.Operation{
			yeelight.PowerRGB(yeelight.PowerOn, yeelight.Smooth, transition),
			yeelight.SetBrightness{Brightness: 75},
			yeelight.SetRGB{RGB: yeelight.MustParseHex("FFA500")},
		},
	}
)

var scenes = []Scene{Off, DoNotDisturb, Work, Warning}

// Names lists the scenes in a stable order.
func Names() []string {
	return utils.Map(scenes, func(s Scene) string {
		return s.Name
	})
}

func Lookup(name string) (Scene, error) {
	for _, s := range scenes {
		if s.Name == name {
			return s, nil
		}
	}

	return Scene{}, errors.Wrapf(ErrUnknownScene, "%q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Failure is one step of a scene that did not succeed.
type Failure struct {
	Step   int
	Method string
	Err    error
}

// Error is returned when one or more steps failed in per-command mode.
type Error struct {
	Scene    string
	Steps    int
	Failures []Failure
}

func (e *Error) Error() string {
	msgs := utils.Map(e.Failures, func(f Failure) string {
		return fmt.Sprintf("step %d (%s): %v", f.Step, f.Method, f.Err)
	})

	return fmt.Sprintf("scene %s: %d of %d steps failed: %s", e.Scene, len(e.Failures), e.Steps, strings.Join(msgs, "; "))
}

func (e *Error) Unwrap() []error {
	return utils.Map(e.Failures, func(f Failure) error {
		return f.Err
	})
}
