// Package yeelighttest provides a fake bulb for tests: a TCP listener on the
// loopback interface that speaks the LAN control protocol.
package yeelighttest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const (
	// NoReply makes the server read the command and answer nothing.
	NoReply = "\x00no-reply"
	// Hangup makes the server close the connection without answering.
	Hangup = "\x00hangup"
)

// Command is a request as received by the fake bulb.
type Command struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
	// Raw is the line exactly as read, terminator included.
	Raw string `json:"-"`
	// Conn numbers the connection the command arrived on, starting at 1.
	Conn int `json:"-"`
}

// Handler returns the raw reply for a command, without line terminator, or
// NoReply or Hangup. A reply may contain several lines separated by "\r\n".
type Handler func(Command) string

// OK answers every command with {"result":["ok"]}.
func OK(cmd Command) string {
	return Result(cmd, "ok")
}

func Result(cmd Command, values ...any) string {
	b, _ := json.Marshal(map[string]any{"id": cmd.ID, "result": values})
	return string(b)
}

func Error(cmd Command, code int, message string) string {
	b, _ := json.Marshal(map[string]any{
		"id":    cmd.ID,
		"error": map[string]any{"code": code, "message": message},
	})
	return string(b)
}

// FailMethod answers commands for method with a device error and all others
// with OK.
func FailMethod(method string, code int, message string) Handler {
	return func(cmd Command) string {
		if cmd.Method == method {
			return Error(cmd, code, message)
		}
		return OK(cmd)
	}
}

type Server struct {
	listener net.Listener
	handler  Handler

	mu       sync.Mutex
	commands []Command
	conns    int
	wg       sync.WaitGroup
}

// NewServer starts a fake bulb. It is stopped by t.Cleanup.
func NewServer(t testing.TB, handler Handler) *Server {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	if handler == nil {
		handler = OK
	}

	s := &Server{listener: listener, handler: handler}
	s.wg.Add(1)
	go s.serve()

	t.Cleanup(s.Close)

	return s
}

func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(s.listener.Addr().String())
	return host
}

func (s *Server) Port() uint16 {
	_, port, _ := net.SplitHostPort(s.listener.Addr().String())
	n, _ := strconv.ParseUint(port, 10, 16)
	return uint16(n)
}

// Commands returns every command received so far, in arrival order.
func (s *Server) Commands() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Command(nil), s.commands...)
}

func (s *Server) Methods() []string {
	commands := s.Commands()
	methods := make([]string, len(commands))
	for i, cmd := range commands {
		methods[i] = cmd.Method
	}
	return methods
}

// Connections returns how many connections were accepted.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conns
}

func (s *Server) Close() {
	_ = s.listener.Close()
	s.wg.Wait()
}

func (s *Server) serve() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.conns++
		id := s.conns
		s.mu.Unlock()

		go s.handle(conn, id)
	}
}

func (s *Server) handle(conn net.Conn, connID int) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		var cmd Command
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &cmd); err != nil {
			_, _ = fmt.Fprintf(conn, `{"id":0,"error":{"code":-1,"message":"invalid command"}}`+"\r\n")
			continue
		}
		cmd.Raw = line
		cmd.Conn = connID

		s.mu.Lock()
		s.commands = append(s.commands, cmd)
		s.mu.Unlock()

		switch reply := s.handler(cmd); reply {
		case NoReply:
			continue
		case Hangup:
			return
		default:
			if _, err := conn.Write([]byte(reply + "\r\n")); err != nil {
				return
			}
		}
	}
}
