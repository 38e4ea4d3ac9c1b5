package handler

import (
	"context"

	"bjoernblessin.de/udpfilereceiver/common"
	"bjoernblessin.de/udpfilereceiver/sequencing"
	"bjoernblessin.de/udpfilereceiver/util/logger"
)

// awaitPath receives until a valid path packet arrives, NAKing everything else.
// On acceptance the destination is opened (created or truncated) before the ACK is sent.
func (h *PacketHandler) awaitPath(ctx context.Context) (*Session, error) {
	pathSequencing := sequencing.NewIncomingPktNumHandler(common.PATH_PKT_NUM)
	var stats Stats

	for {
		in, err := h.receiveAndClassify(ctx, pathSequencing, &stats)
		if err != nil {
			return nil, err
		}

		if in.verdict != sequencing.Accepted {
			stats.Corrupted++
			logger.Warnf("Path packet from %v corrupted, requesting resend", in.addr)
			h.reject(in)
			h.notify(Event{Type: EventCorrupted, PktNum: in.packet.GetPktNum()})
			continue
		}

		path := in.packet.Path()

		sink, err := h.openSink(path)
		if err != nil {
			return nil, err
		}

		session := newSession(path, sink, in.raw, stats)
		h.acknowledge(in)

		logger.Infof("[%s] Receiving file %s from %v", session.ID, path, in.addr)
		h.notify(Event{Type: EventPathAccepted, SessionID: session.ID, PktNum: in.packet.GetPktNum(), Path: path})

		return session, nil
	}
}
