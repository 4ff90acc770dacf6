package yeelight

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/cybre/yeelight-office/internal/errors"
)

type clientState int

const (
	stateUnconnected clientState = iota
	stateConnected
	stateClosed
)

type Option func(*Client)

// WithMode picks session or per-command connections. The default is ModeSession.
func WithMode(mode ConnectionMode) Option {
	return func(c *Client) {
		c.mode = mode
	}
}

// WithDebug logs every raw request and response at debug level.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.connectTimeout = timeout
	}
}

func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.readTimeout = timeout
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

type connection struct {
	conn   net.Conn
	reader *bufio.Reader
	// broken is set once the reader may be out of step with the requests
	// or a late cancellation may still move the deadline.
	broken bool
}

// Client sends commands to one bulb, one at a time. It is not safe for
// concurrent use.
type Client struct {
	addr           string
	mode           ConnectionMode
	debug          bool
	connectTimeout time.Duration
	readTimeout    time.Duration
	logger         *slog.Logger

	state         clientState
	session       *connection
	lastCommandID int
}

func New(host string, port uint16, opts ...Option) *Client {
	c := &Client{
		addr:           net.JoinHostPort(host, strconv.Itoa(int(port))),
		mode:           ModeSession,
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Addr() string {
	return c.addr
}

func (c *Client) Mode() ConnectionMode {
	return c.mode
}

// Connect opens the session connection. In per-command mode there is nothing
// to open and Connect only checks that the client has not been closed.
func (c *Client) Connect(ctx context.Context) error {
	switch c.state {
	case stateClosed:
		return errors.Wrap(ErrClientClosed)
	case stateConnected:
		return nil
	}

	if c.mode == ModePerCommand {
		c.state = stateConnected
		return nil
	}

	conn, err := c.dial(ctx)
	if err != nil {
		c.state = stateClosed
		return err
	}

	c.session = conn
	c.state = stateConnected

	return nil
}

// Close releases the session connection. The client cannot be used afterwards.
func (c *Client) Close() error {
	c.state = stateClosed

	if c.session == nil {
		return nil
	}

	conn := c.session
	c.session = nil

	if err := conn.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return errors.Wrapf(err, "close connection to bulb")
	}

	return nil
}

// Send performs one request/response exchange. Failures are a validation
// error, *TransportError, *MalformedResponseError or *ProtocolError.
func (c *Client) Send(ctx context.Context, op Operation) (Response, error) {
	if op == nil {
		return Response{}, errors.New("nil operation")
	}
	if err := op.Validate(); err != nil {
		return Response{}, err
	}
	if c.state == stateClosed {
		return Response{}, errors.Wrap(ErrClientClosed)
	}

	if c.mode == ModePerCommand {
		conn, err := c.dial(ctx)
		if err != nil {
			return Response{}, err
		}
		defer c.release(conn)

		return c.exchange(ctx, conn, op)
	}

	if c.state != stateConnected || c.session == nil {
		return Response{}, errors.Wrap(ErrNotConnected)
	}

	session := c.session
	resp, err := c.exchange(ctx, session, op)
	var transportErr *TransportError
	if errors.As(err, &transportErr) || session.broken {
		// the stream position is unknown
		if closeErr := c.Close(); closeErr != nil {
			c.logger.Warn("close broken bulb session", slog.Any("error", closeErr))
		}
	}

	return resp, err
}

// SetPower switches the bulb on or off, landing in RGB mode.
func (c *Client) SetPower(ctx context.Context, power PowerStatus, effect Effect, duration int) error {
	_, err := c.Send(ctx, PowerRGB(power, effect, duration))

	return err
}

func (c *Client) SetBrightness(ctx context.Context, brightness int) error {
	_, err := c.Send(ctx, SetBrightness{Brightness: brightness})

	return err
}

func (c *Client) SetRGB(ctx context.Context, rgb RGB) error {
	_, err := c.Send(ctx, SetRGB{RGB: rgb})

	return err
}

func (c *Client) SetRGBHex(ctx context.Context, hex string) error {
	rgb, err := ParseHex(hex)
	if err != nil {
		return err
	}

	return c.SetRGB(ctx, rgb)
}

// SetRGBComponents clamps each component to 0-255 before packing.
func (c *Client) SetRGBComponents(ctx context.Context, red, green, blue int) error {
	return c.SetRGB(ctx, RGBFromComponents(red, green, blue))
}

func (c *Client) dial(ctx context.Context) (*connection, error) {
	if c.debug {
		c.logger.Debug("connecting to bulb", slog.String("addr", c.addr), slog.String("mode", string(c.mode)))
	}

	dialer := net.Dialer{Timeout: c.connectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, c.transportError("connect", "", err)
	}

	return &connection{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, maxResponseSize),
	}, nil
}

func (c *Client) release(conn *connection) {
	if err := conn.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		c.logger.Warn("close bulb connection", slog.Any("error", err))
	}
}

func (c *Client) exchange(ctx context.Context, conn *connection, op Operation) (Response, error) {
	cmd := newCommand(c.nextCommandID(), op)
	payload, err := cmd.encode()
	if err != nil {
		return Response{}, err
	}
	request := strings.TrimSuffix(string(payload), lineEnding)

	if err := ctx.Err(); err != nil {
		return Response{}, c.transportError("write", request, err)
	}
	if err := conn.conn.SetDeadline(c.deadline(ctx)); err != nil {
		return Response{}, c.transportError("set deadline", request, err)
	}

	// unblock pending I/O when ctx is cancelled
	stop := context.AfterFunc(ctx, func() {
		_ = conn.conn.SetDeadline(time.Unix(1, 0))
	})
	defer func() {
		if !stop() {
			conn.broken = true
		}
	}()

	if c.debug {
		c.logger.Debug("sending command", slog.Int("id", cmd.ID), slog.String("command", request))
	}

	if _, err := conn.conn.Write(payload); err != nil {
		return Response{}, c.transportError("write", request, causeOf(ctx, err))
	}

	for {
		line, err := readLine(conn.reader)
		if errors.Is(err, ErrResponseTooLarge) {
			conn.broken = true
			return Response{}, errors.Wrap(&MalformedResponseError{Request: request, Payload: string(line), Err: err})
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("%w: %w", ErrEmptyResponse, err)
			}
			return Response{}, c.transportError("read", request, causeOf(ctx, err))
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		if c.debug {
			c.logger.Debug("received response", slog.Int("id", cmd.ID), slog.String("response", string(line)))
		}

		reply, err := decodeLine(line)
		if err != nil {
			return Response{}, errors.Wrap(&MalformedResponseError{Request: request, Payload: string(line), Err: err})
		}

		if reply.isNotification() {
			continue
		}

		resp, err := interpret(cmd, request, line, reply)
		if errors.Is(err, ErrIDMismatch) {
			conn.broken = true
		}

		return resp, err
	}
}

// deadline is now plus the read timeout, or the context deadline if sooner.
func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.readTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}

	return deadline
}

func (c *Client) nextCommandID() int {
	c.lastCommandID++

	return c.lastCommandID
}

func (c *Client) transportError(op, request string, err error) error {
	return errors.Wrap(&TransportError{
		Op:      op,
		Addr:    c.addr,
		Request: request,
		Err:     err,
	})
}

// readLine returns one reply line. A final line without a terminator is
// still returned when the bulb closes the connection after it.
func readLine(reader *bufio.Reader) ([]byte, error) {
	line, err := reader.ReadSlice('\n')
	line = append([]byte(nil), line...)

	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, bufio.ErrBufferFull):
		return line, ErrResponseTooLarge
	case errors.Is(err, io.EOF) && len(bytes.TrimSpace(line)) > 0:
		return line, nil
	default:
		return nil, err
	}
}

// causeOf attributes an I/O failure to ctx when ctx is done or its deadline,
// which also bounds the connection deadline, has passed.
func causeOf(ctx context.Context, err error) error {
	ctxErr := ctx.Err()
	if deadline, ok := ctx.Deadline(); ctxErr == nil && ok && !time.Now().Before(deadline) {
		ctxErr = context.DeadlineExceeded
	}
	if ctxErr != nil {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}

	return err
}
