package client

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// streamChunk is one line of the streaming response. Only the output field
// matters; anything else on the line is ignored.
type streamChunk struct {
	Output string `json:"output"`
}

// ChatStream reads a streaming chat completion as a lazy sequence of text
// fragments. The server writes one JSON object per line with the fragment in
// its "output" field; blank lines are keep-alives and are skipped. The
// sequence is finite and non-restartable: it ends when the server closes the
// connection, and a fresh request is needed to stream again.
type ChatStream struct {
	resp    *http.Response
	scanner *bufio.Scanner
	closed  bool
}

func newChatStream(resp *http.Response) *ChatStream {
	return &ChatStream{
		resp:    resp,
		scanner: bufio.NewScanner(resp.Body),
	}
}

// Recv returns the next fragment. A line without an "output" field yields an
// empty-string fragment, not an error, so callers must use the returned
// error (io.EOF) to detect the end of the stream. A line that is not valid
// JSON fails the call with a decode error.
func (s *ChatStream) Recv() (string, error) {
	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return "", fmt.Errorf("decode stream line: %w", err)
		}
		return chunk.Output, nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("read stream: %w", err)
	}
	return "", io.EOF
}

// Close releases the underlying connection. It is safe to call Close more
// than once, and safe to call while fragments remain unread.
func (s *ChatStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.resp.Body.Close()
}
