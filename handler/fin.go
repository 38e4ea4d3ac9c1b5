package handler

import (
	"context"
	"errors"
	"time"

	"bjoernblessin.de/udpfilereceiver/sequencing"
	"bjoernblessin.de/udpfilereceiver/util/logger"
)

// handleFinish completes the transfer on an accepted empty data packet (the end marker).
// The sink is closed before the marker is ACKed, so an ACKed marker means the file is on disk.
func (h *PacketHandler) handleFinish(ctx context.Context, s *Session, in *incomingPacket) error {
	s.inSequencing.Advance(in.packet.GetPktNum())

	err := s.closeSink()
	if err != nil {
		return err
	}
	s.complete = true

	h.acknowledge(in)

	elapsed := time.Since(s.StartTime)
	logger.Infof("[%s] Transfer of %s complete in %v: %s", s.ID, s.DestPath, elapsed.Round(time.Millisecond), s.Stats)
	h.notify(Event{Type: EventTransferComplete, SessionID: s.ID, PktNum: in.packet.GetPktNum(), Path: s.DestPath})

	return h.awaitRetransmittedFin(ctx, s)
}

// awaitRetransmittedFin keeps answering retransmitted end markers for h.linger, in case our final ACK was lost.
// Anything else is ignored. Ends without error when the linger period expires.
func (h *PacketHandler) awaitRetransmittedFin(ctx context.Context, s *Session) error {
	if h.linger <= 0 {
		return nil
	}

	lingerCtx, cancel := context.WithTimeout(ctx, h.linger)
	defer cancel()

	for {
		in, err := h.receiveAndClassify(lingerCtx, s.inSequencing, &s.Stats)
		if err != nil {
			if ctx.Err() == nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrIdleTimeout)) {
				return nil
			}
			return err
		}

		if in.verdict == sequencing.Retransmission {
			s.Stats.Retransmissions++
			logger.Debugf("[%s] End marker retransmitted, resending ACK", s.ID)
			h.acknowledge(in)
			continue
		}

		logger.Debugf("[%s] Ignoring packet %v after transfer completed", s.ID, in.packet)
	}
}
