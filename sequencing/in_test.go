package sequencing

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	h := NewIncomingPktNumHandler(0)

	// Nothing accepted yet, only 0 advances
	if v := h.Classify(0, true); v != Accepted {
		t.Errorf("first packet should be accepted, got %v", v)
	}
	if v := h.Classify(0, false); v != Corrupted {
		t.Errorf("invalid packet should be corrupted, got %v", v)
	}
	if v := h.Classify(1, true); v != Corrupted {
		t.Errorf("packet ahead should be corrupted, got %v", v)
	}
	if v := h.Classify(math.MaxUint32, true); v != Corrupted {
		t.Errorf("packet number MaxUint32 must not match the -1 sentinel, got %v", v)
	}

	h.Advance(0)

	if h.GetExpectedPktNum() != 1 || h.GetLastAcceptedPktNum() != 0 {
		t.Fatalf("expected=1 last=0, got expected=%d last=%d", h.GetExpectedPktNum(), h.GetLastAcceptedPktNum())
	}

	// Retransmission of the packet we just accepted
	if v := h.Classify(0, true); v != Retransmission {
		t.Errorf("repeated packet should be a retransmission, got %v", v)
	}
	if v := h.Classify(0, false); v != Corrupted {
		t.Errorf("invalid repeated packet should be corrupted, got %v", v)
	}
	if v := h.Classify(1, true); v != Accepted {
		t.Errorf("next-in-order packet should be accepted, got %v", v)
	}

	// Classify never changes state
	if h.GetExpectedPktNum() != 1 {
		t.Errorf("Classify changed expected packet number to %d", h.GetExpectedPktNum())
	}
}

func TestClassifyFarPacketNumbers(t *testing.T) {
	h := NewIncomingPktNumHandler(0)
	for i := uint32(0); i < 5; i++ {
		h.Advance(i)
	}

	// expected=5, last accepted=4
	tests := []struct {
		pktNum   uint32
		expected Verdict
	}{
		{5, Accepted},
		{4, Retransmission},
		{3, Corrupted},
		{0, Corrupted},
		{6, Corrupted},
		{100, Corrupted},
	}

	for _, tt := range tests {
		if v := h.Classify(tt.pktNum, true); v != tt.expected {
			t.Errorf("Classify(%d, true) = %v, expected %v", tt.pktNum, v, tt.expected)
		}
		if v := h.Classify(tt.pktNum, false); v != Corrupted {
			t.Errorf("Classify(%d, false) = %v, expected corrupted", tt.pktNum, v)
		}
	}
}

func TestAdvanceUnexpectedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Advance with an unexpected packet number should panic")
		}
	}()

	h := NewIncomingPktNumHandler(0)
	h.Advance(3)
}

func TestHasAccepted(t *testing.T) {
	h := NewIncomingPktNumHandler(0)
	if h.HasAccepted() {
		t.Errorf("new handler should not have accepted packets")
	}
	h.Advance(0)
	if !h.HasAccepted() {
		t.Errorf("handler should have accepted packet 0")
	}
}
