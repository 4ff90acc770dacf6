package yeelight

import (
	"fmt"

	"github.com/cybre/yeelight-office/internal/errors"
)

var (
	ErrNotConnected      = fmt.Errorf("bulb is not connected")
	ErrClientClosed      = fmt.Errorf("bulb client is closed")
	ErrPowerInvalid      = fmt.Errorf("power must be %q or %q", PowerOn, PowerOff)
	ErrEffectInvalid     = fmt.Errorf("effect must be %q or %q", Smooth, Sudden)
	ErrDurationInvalid   = fmt.Errorf("duration must not be negative")
	ErrPowerModeInvalid  = fmt.Errorf("power mode must be between %d and %d", PowerModeNormal, PowerModeNight)
	ErrBrightnessInvalid = fmt.Errorf("brightness must be between 1 and 100")
	ErrRGBInvalid        = fmt.Errorf("rgb must be between 0x000000 and 0xFFFFFF")
	ErrHueInvalid        = fmt.Errorf("hue must be between 0 and 359")
	ErrSaturationInvalid = fmt.Errorf("saturation must be between 0 and 100")
	ErrResponseTooLarge  = fmt.Errorf("response exceeds %d bytes", maxResponseSize)
	ErrIDMismatch        = fmt.Errorf("response id does not match command id")
	ErrEmptyResponse     = fmt.Errorf("connection closed before a response arrived")
)

// TransportError reports a failure to dial, write to or read from the bulb,
// including timeouts.
type TransportError struct {
	Op      string
	Addr    string
	Request string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a deadline expiring.
func (e *TransportError) Timeout() bool {
	var timeoutErr interface{ Timeout() bool }
	return errors.As(e.Err, &timeoutErr) && timeoutErr.Timeout()
}

// MalformedResponseError reports a reply that is not a well formed response.
type MalformedResponseError struct {
	Request string
	Payload string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response %q: %v", e.Payload, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ProtocolError is an error object returned by the bulb.
type ProtocolError struct {
	Method   string
	Code     int
	Message  string
	Request  string
	Response string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Method, e.Message, e.Code)
}

// DebugPayloads returns the raw request and response lines behind a failed
// exchange. Either may be empty.
func DebugPayloads(err error) (request, response string) {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Request, ""
	}

	var malformedErr *MalformedResponseError
	if errors.As(err, &malformedErr) {
		return malformedErr.Request, malformedErr.Payload
	}

	var protocolErr *ProtocolError
	if errors.As(err, &protocolErr) {
		return protocolErr.Request, protocolErr.Response
	}

	return "", ""
}
