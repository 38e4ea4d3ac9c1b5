// Package reconstruction writes the accepted payloads of a transfer, in order, to their destination.
// It is not responsible for ordering or detecting duplicates, that is handled in the sequencing package.
package reconstruction

// Sink receives the payload of every accepted chunk exactly once, in packet number order.
type Sink interface {
	// Append writes the payload at the end of the sink.
	Append(payload []byte) error

	// Close flushes and releases the sink. Append must not be called afterwards.
	Close() error

	// Name identifies the destination, e.g. the file path.
	Name() string

	// GetWrittenBytes returns the number of payload bytes appended so far.
	GetWrittenBytes() int64
}

// Opener creates the sink for a destination path.
type Opener func(path string) (Sink, error)
