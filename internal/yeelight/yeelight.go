// Package yeelight talks to a single Yeelight bulb over its LAN control
// protocol: newline-delimited JSON commands on TCP port 55443.
package yeelight

import (
	"strings"
	"time"

	"github.com/cybre/yeelight-office/internal/errors"
)

const (
	// DefaultPort is the bulb's LAN control port
	DefaultPort uint16 = 55443
	// DefaultConnectTimeout bounds dialling the bulb
	DefaultConnectTimeout = time.Second * 3
	// DefaultReadTimeout bounds one request/response exchange
	DefaultReadTimeout = time.Second * 3
	// line ending (CRLF)
	lineEnding = "\r\n"
	// upper bound for a single reply line
	maxResponseSize = 1024
)

// ConnectionMode selects how long a connection to the bulb lives.
type ConnectionMode string

const (
	// ModeSession opens one connection in Connect and reuses it until Close.
	ModeSession ConnectionMode = "session"
	// ModePerCommand dials a fresh connection for every command.
	ModePerCommand ConnectionMode = "per-command"
)

func ParseConnectionMode(s string) (ConnectionMode, error) {
	switch mode := ConnectionMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeSession, ModePerCommand:
		return mode, nil
	default:
		return "", errors.Errorf("unknown connection mode %q (want %q or %q)", s, ModeSession, ModePerCommand)
	}
}

type PowerStatus string

const (
	PowerOn  PowerStatus = "on"
	PowerOff PowerStatus = "off"
)

type Effect string

const (
	Sudden Effect = "sudden"
	Smooth Effect = "smooth"
)

// PowerMode is the mode argument of set_power, the light mode the bulb
// switches into when it powers on.
type PowerMode int

const (
	PowerModeNormal PowerMode = iota
	PowerModeColorTemperature
	PowerModeRGB
	PowerModeHSV
	PowerModeColorFlow
	PowerModeNight
)
