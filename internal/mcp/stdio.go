package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// maxLineSize bounds a single JSON-RPC message on the stdio transport.
const maxLineSize = 10 << 20

// StdioTransport reads newline-delimited JSON-RPC messages from in and
// writes responses to out. This is the transport model-driven clients
// launch the gateway under.
type StdioTransport struct {
	srv *Server
	in  io.Reader

	wmu sync.Mutex
	out io.Writer
}

// NewStdioTransport wires a Server to a reader/writer pair.
func NewStdioTransport(srv *Server, in io.Reader, out io.Writer) *StdioTransport {
	return &StdioTransport{srv: srv, in: in, out: out}
}

// Serve processes messages until in is exhausted or ctx is cancelled.
// Notifications produce no output line. Reading happens in a separate
// goroutine so cancellation is honoured even while blocked on input.
func (t *StdioTransport) Serve(ctx context.Context) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(t.in)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("read request: %w", err)
			}
			return nil

		case line := <-lines:
			if err := ctx.Err(); err != nil {
				return err
			}
			if len(line) == 0 {
				continue
			}
			resp := t.srv.HandleRaw(ctx, line)
			if resp == nil {
				continue
			}
			if err := t.write(resp); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
		}
	}
}

func (t *StdioTransport) write(resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	t.wmu.Lock()
	defer t.wmu.Unlock()
	if _, err := t.out.Write(data); err != nil {
		return err
	}
	_, err = t.out.Write([]byte("\n"))
	return err
}
