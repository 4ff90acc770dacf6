package yeelight

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cybre/yeelight-office/internal/errors"
)

// Response is a successful reply to a command.
type Response struct {
	ID     int
	Result []any
}

// OK reports whether the bulb answered with the usual ["ok"].
func (r Response) OK() bool {
	return len(r.Result) == 1 && r.Result[0] == "ok"
}

type deviceError struct {
	Code    *int    `json:"code"`
	Message *string `json:"message"`
}

type rawReply struct {
	ID     *int            `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// isNotification reports lines the bulb pushes on its own, such as
// {"method":"props","params":{...}}, which carry no id.
func (r rawReply) isNotification() bool {
	return r.ID == nil && r.Method != ""
}

func decodeLine(line []byte) (rawReply, error) {
	var reply rawReply
	if err := json.Unmarshal(line, &reply); err != nil {
		return rawReply{}, err
	}

	return reply, nil
}

// interpret turns a decoded reply to cmd into a Response or one of
// *ProtocolError or *MalformedResponseError.
func interpret(cmd command, request string, payload []byte, reply rawReply) (Response, error) {
	malformed := func(err error) error {
		return errors.Wrap(&MalformedResponseError{
			Request: request,
			Payload: string(payload),
			Err:     err,
		})
	}

	if reply.ID == nil {
		return Response{}, malformed(fmt.Errorf("missing id"))
	}
	if *reply.ID != cmd.ID {
		return Response{}, malformed(fmt.Errorf("%w: got %d, want %d", ErrIDMismatch, *reply.ID, cmd.ID))
	}

	hasResult, hasError := present(reply.Result), present(reply.Error)
	switch {
	case hasResult && hasError:
		return Response{}, malformed(fmt.Errorf("both result and error present"))
	case !hasResult && !hasError:
		return Response{}, malformed(fmt.Errorf("neither result nor error present"))
	case hasError:
		var devErr deviceError
		if err := json.Unmarshal(reply.Error, &devErr); err != nil {
			return Response{}, malformed(fmt.Errorf("decode error object: %w", err))
		}
		if devErr.Code == nil || devErr.Message == nil {
			return Response{}, malformed(fmt.Errorf("error object lacks code or message"))
		}

		return Response{}, errors.Wrap(&ProtocolError{
			Method:   cmd.Method,
			Code:     *devErr.Code,
			Message:  *devErr.Message,
			Request:  request,
			Response: string(payload),
		})
	}

	var result []any
	if err := json.Unmarshal(reply.Result, &result); err != nil {
		return Response{}, malformed(fmt.Errorf("decode result: %w", err))
	}

	return Response{ID: *reply.ID, Result: result}, nil
}
