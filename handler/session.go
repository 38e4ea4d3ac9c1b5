package handler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"bjoernblessin.de/udpfilereceiver/common"
	"bjoernblessin.de/udpfilereceiver/sequencing"
	"bjoernblessin.de/udpfilereceiver/sequencing/reconstruction"
	"bjoernblessin.de/udpfilereceiver/util/logger"
)

// Stats counts what happened during a transfer.
type Stats struct {
	AcceptedChunks  int
	WrittenBytes    int64
	Retransmissions int
	Corrupted       int
	Truncated       int
}

func (s Stats) String() string {
	return fmt.Sprintf("chunks=%d bytes=%d retransmissions=%d corrupted=%d truncated=%d",
		s.AcceptedChunks, s.WrittenBytes, s.Retransmissions, s.Corrupted, s.Truncated)
}

// Session is the state of the one transfer a PacketHandler receives.
// It exists from the accepted path packet until ListenToPackets returns.
type Session struct {
	ID        uuid.UUID
	DestPath  string
	StartTime time.Time
	Stats     Stats

	sink         reconstruction.Sink
	inSequencing *sequencing.IncomingPktNumHandler
	pathDatagram []byte // Raw accepted path datagram, to recognize its retransmission
	complete     bool
	sinkClosed   bool
}

func newSession(destPath string, sink reconstruction.Sink, pathDatagram []byte, stats Stats) *Session {
	return &Session{
		ID:           uuid.New(),
		DestPath:     destPath,
		StartTime:    time.Now(),
		Stats:        stats,
		sink:         sink,
		inSequencing: sequencing.NewIncomingPktNumHandler(common.FIRST_DATA_PKT_NUM),
		pathDatagram: pathDatagram,
	}
}

// IsComplete reports whether the end marker was received.
func (s *Session) IsComplete() bool {
	return s.complete
}

// GetExpectedPktNum returns the packet number of the next data packet that advances the stream.
func (s *Session) GetExpectedPktNum() int64 {
	return s.inSequencing.GetExpectedPktNum()
}

// GetLastAcceptedPktNum returns the packet number of the last written chunk, or -1.
func (s *Session) GetLastAcceptedPktNum() int64 {
	return s.inSequencing.GetLastAcceptedPktNum()
}

// closeSink closes the sink once; later calls are no-ops.
func (s *Session) closeSink() error {
	if s.sinkClosed {
		return nil
	}
	s.sinkClosed = true

	err := s.sink.Close()
	if err != nil {
		return err
	}

	logger.Debugf("[%s] Closed %s after %d bytes", s.ID, s.sink.Name(), s.sink.GetWrittenBytes())
	return nil
}
