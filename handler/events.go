package handler

import (
	"fmt"

	"github.com/google/uuid"
)

type EventType int

const (
	EventPathAccepted EventType = iota
	EventChunkWritten
	EventRetransmission
	EventCorrupted
	EventTransferComplete
)

func (t EventType) String() string {
	switch t {
	case EventPathAccepted:
		return "PATH"
	case EventChunkWritten:
		return "CHUNK"
	case EventRetransmission:
		return "RETRANSMISSION"
	case EventCorrupted:
		return "CORRUPTED"
	case EventTransferComplete:
		return "COMPLETE"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event describes one step of the receiver. SessionID is the zero UUID for
// corrupted path packets received before a session exists.
type Event struct {
	Type      EventType
	SessionID uuid.UUID
	PktNum    uint32
	Bytes     int    // Payload bytes written, EventChunkWritten only
	Path      string // Destination path, EventPathAccepted and EventTransferComplete only
}
