package handler

import (
	"bytes"
	"context"

	"bjoernblessin.de/udpfilereceiver/sequencing"
	"bjoernblessin.de/udpfilereceiver/util/logger"
)

// awaitData receives data packets and writes accepted payloads until the end marker was handled.
// The loop has no other protocol exit: without an end marker it runs until ctx is done.
func (h *PacketHandler) awaitData(ctx context.Context, s *Session) error {
	for {
		in, err := h.receiveAndClassify(ctx, s.inSequencing, &s.Stats)
		if err != nil {
			return err
		}

		if h.isPathRetransmission(s, in) {
			// The sender missed the ACK for the path packet; it shares packet number 0 with the first chunk
			s.Stats.Retransmissions++
			logger.Infof("[%s] Path packet retransmitted by %v, resending ACK", s.ID, in.addr)
			h.acknowledge(in)
			h.notify(Event{Type: EventRetransmission, SessionID: s.ID, PktNum: in.packet.GetPktNum()})
			continue
		}

		switch in.verdict {
		case sequencing.Accepted:
			if len(in.packet.Data()) == 0 {
				return h.handleFinish(ctx, s, in)
			}

			err := h.handleFileTransfer(s, in)
			if err != nil {
				return err
			}
		case sequencing.Retransmission:
			s.Stats.Retransmissions++
			logger.Infof("[%s] Packet %d retransmitted, resending ACK", s.ID, in.packet.GetPktNum())
			h.acknowledge(in)
			h.notify(Event{Type: EventRetransmission, SessionID: s.ID, PktNum: in.packet.GetPktNum()})
		default:
			s.Stats.Corrupted++
			logger.Warnf("[%s] Packet %d corrupted or out of order (expected %d), requesting resend", s.ID, in.packet.GetPktNum(), s.inSequencing.GetExpectedPktNum())
			h.reject(in)
			h.notify(Event{Type: EventCorrupted, SessionID: s.ID, PktNum: in.packet.GetPktNum()})
		}
	}
}

// handleFileTransfer appends an accepted chunk, ACKs it and advances the expected packet number.
func (h *PacketHandler) handleFileTransfer(s *Session, in *incomingPacket) error {
	pktNum := in.packet.GetPktNum()
	data := in.packet.Data()

	err := s.sink.Append(data)
	if err != nil {
		return err
	}

	h.acknowledge(in)
	s.inSequencing.Advance(pktNum)

	s.Stats.AcceptedChunks++
	s.Stats.WrittenBytes += int64(len(data))

	logger.Debugf("[%s] Wrote packet %d (%d bytes)", s.ID, pktNum, len(data))
	h.notify(Event{Type: EventChunkWritten, SessionID: s.ID, PktNum: pktNum, Bytes: len(data)})

	return nil
}

// isPathRetransmission reports whether in repeats the accepted path datagram byte for byte.
// Only possible before the first chunk was accepted.
func (h *PacketHandler) isPathRetransmission(s *Session, in *incomingPacket) bool {
	if s.inSequencing.HasAccepted() {
		return false
	}
	return bytes.Equal(in.raw, s.pathDatagram)
}
