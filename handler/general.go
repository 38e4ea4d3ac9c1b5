package handler

import (
	"bytes"
	"context"
	"net"

	"bjoernblessin.de/udpfilereceiver/connection"
	"bjoernblessin.de/udpfilereceiver/pkt"
	"bjoernblessin.de/udpfilereceiver/sequencing"
	"bjoernblessin.de/udpfilereceiver/util/logger"
)

// incomingPacket is a decoded datagram together with its verdict.
type incomingPacket struct {
	packet  *pkt.Packet
	raw     []byte
	addr    *net.UDPAddr
	verdict sequencing.Verdict
}

// receiveAndClassify blocks until a decodable datagram arrives and classifies it with inSequencing.
// It is used by every phase of the transfer; only the packet number expectations differ.
// Truncated datagrams are counted and dropped without answer, the sender will time out and resend.
// inSequencing is not advanced.
func (h *PacketHandler) receiveAndClassify(ctx context.Context, inSequencing *sequencing.IncomingPktNumHandler, stats *Stats) (*incomingPacket, error) {
	for {
		data, addr, err := h.receive(ctx)
		if err != nil {
			return nil, err
		}

		logger.Debugf("FROM %v %d bytes: %X", addr, len(data), data)

		packet, err := pkt.ParsePacket(data)
		if err != nil {
			stats.Truncated++
			logger.Warnf("Dropping datagram from %v: %v", addr, err)
			continue
		}

		valid := pkt.VerifyChecksum(packet)
		if !valid {
			logger.Warnf("Invalid checksum for packet %v from %v", packet, addr)
		} else if lenErr := packet.ValidateLength(); lenErr != nil {
			valid = false
			logger.Warnf("Invalid length for packet %v from %v: %v", packet, addr, lenErr)
		}

		verdict := inSequencing.Classify(packet.GetPktNum(), valid)
		logger.Debugf("Packet %v classified as %s (expected %d)", packet, verdict, inSequencing.GetExpectedPktNum())

		return &incomingPacket{
			packet:  packet,
			raw:     bytes.Clone(data),
			addr:    addr,
			verdict: verdict,
		}, nil
	}
}

// acknowledge sends an ACK to the observed sender address of in.
// Send failures are not fatal: the sender retransmits and gets answered again.
func (h *PacketHandler) acknowledge(in *incomingPacket) {
	err := connection.NewPeer(h.socket, in.addr).SendAcknowledgment()
	if err != nil {
		logger.Warnf("Failed to send ACK for packet %d to %v: %v", in.packet.GetPktNum(), in.addr, err)
	}
}

// reject sends a NAK to the observed sender address of in, requesting a resend.
func (h *PacketHandler) reject(in *incomingPacket) {
	err := connection.NewPeer(h.socket, in.addr).SendNegativeAcknowledgment()
	if err != nil {
		logger.Warnf("Failed to send NAK for packet %d to %v: %v", in.packet.GetPktNum(), in.addr, err)
	}
}
