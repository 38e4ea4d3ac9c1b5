package reconstruction

import (
	"bytes"
	"errors"
)

var ErrSinkClosed = errors.New("sink is closed")

// InMemorySink collects payloads in memory. Useful when the reassembled stream is consumed in-process.
type InMemorySink struct {
	name    string
	buffer  bytes.Buffer
	appends int
	closed  bool
}

// NewInMemorySink creates an empty sink. It satisfies Opener.
func NewInMemorySink(name string) (Sink, error) {
	return &InMemorySink{name: name}, nil
}

func (s *InMemorySink) Append(payload []byte) error {
	if s.closed {
		return ErrSinkClosed
	}

	s.buffer.Write(payload)
	s.appends++

	return nil
}

func (s *InMemorySink) Close() error {
	if s.closed {
		return ErrSinkClosed
	}
	s.closed = true
	return nil
}

func (s *InMemorySink) Name() string {
	return s.name
}

func (s *InMemorySink) GetWrittenBytes() int64 {
	return int64(s.buffer.Len())
}

// Bytes returns the reassembled stream. The slice is valid until the next Append.
func (s *InMemorySink) Bytes() []byte {
	return s.buffer.Bytes()
}

// GetAppendCount returns how many times Append was called.
func (s *InMemorySink) GetAppendCount() int {
	return s.appends
}

func (s *InMemorySink) IsClosed() bool {
	return s.closed
}
