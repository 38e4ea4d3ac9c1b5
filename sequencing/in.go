// Package sequencing classifies incoming packets by their packet number.
// The receiver is stop-and-wait: exactly one packet number advances the stream,
// and only the most recently accepted one is recognized as a retransmission.
// It does not buffer or reorder packets.
package sequencing

import (
	"fmt"

	"bjoernblessin.de/udpfilereceiver/util/assert"
)

type Verdict int

const (
	// Corrupted packets failed verification or carry an unexpected packet number. Answered with a NAK.
	Corrupted Verdict = iota
	// Accepted packets carry the expected packet number and advance the stream.
	Accepted
	// Retransmission packets repeat the last accepted packet because the sender missed our ACK.
	Retransmission
)

func (v Verdict) String() string {
	switch v {
	case Corrupted:
		return "corrupted"
	case Accepted:
		return "accepted"
	case Retransmission:
		return "retransmission"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

const noPktNum = -1

// IncomingPktNumHandler tracks the next expected packet number of one transfer phase.
// Packet numbers are kept as int64 so that "no packet accepted yet" (-1) is representable.
type IncomingPktNumHandler struct {
	expectedPktNum     int64
	lastAcceptedPktNum int64
}

// NewIncomingPktNumHandler creates a handler expecting firstPktNum with no accepted packet.
func NewIncomingPktNumHandler(firstPktNum uint32) *IncomingPktNumHandler {
	return &IncomingPktNumHandler{
		expectedPktNum:     int64(firstPktNum),
		lastAcceptedPktNum: noPktNum,
	}
}

// Classify returns the verdict for a packet with pktNum whose integrity check resulted in valid.
// It does not change state, see Advance.
func (h *IncomingPktNumHandler) Classify(pktNum uint32, valid bool) Verdict {
	if !valid {
		return Corrupted
	}

	switch int64(pktNum) {
	case h.expectedPktNum:
		return Accepted
	case h.lastAcceptedPktNum:
		return Retransmission
	}

	return Corrupted
}

// Advance records pktNum as accepted and moves the expectation to the following packet number.
// pktNum must have been classified as Accepted.
func (h *IncomingPktNumHandler) Advance(pktNum uint32) {
	assert.Assert(int64(pktNum) == h.expectedPktNum, "advancing with packet number %d, expected %d", pktNum, h.expectedPktNum)

	h.lastAcceptedPktNum = h.expectedPktNum
	h.expectedPktNum++

	assert.Assert(h.lastAcceptedPktNum == h.expectedPktNum-1, "last accepted packet number must trail the expected one")
}

// GetExpectedPktNum returns the packet number that advances the stream next.
func (h *IncomingPktNumHandler) GetExpectedPktNum() int64 {
	return h.expectedPktNum
}

// GetLastAcceptedPktNum returns the most recently accepted packet number, or -1 if none was accepted.
func (h *IncomingPktNumHandler) GetLastAcceptedPktNum() int64 {
	return h.lastAcceptedPktNum
}

// HasAccepted reports whether any packet was accepted yet.
func (h *IncomingPktNumHandler) HasAccepted() bool {
	return h.lastAcceptedPktNum != noPktNum
}
