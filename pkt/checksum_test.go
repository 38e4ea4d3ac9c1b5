package pkt

import (
	"bytes"
	"testing"
)

func TestVerifyChecksumKnownValue(t *testing.T) {
	// CRC-32/IEEE("123456789") = 0xCBF43926; the header fields double as check input here
	raw := append([]byte{0, 0, 0, 0, 0xcb, 0xf4, 0x39, 0x26}, []byte("123456789")...)

	packet, err := ParsePacket(raw)
	if err != nil {
		t.Fatalf("ParsePacket() unexpected error: %v", err)
	}

	if !VerifyChecksum(packet) {
		t.Errorf("VerifyChecksum() = false for known CRC-32 check value")
	}
}

func TestSetChecksum(t *testing.T) {
	packet := NewPacket(3, []byte("hello"))
	payloadBefore := append(Payload(nil), packet.Payload...)
	headerBefore := packet.Header

	SetChecksum(packet)

	if !VerifyChecksum(packet) {
		t.Fatalf("VerifyChecksum() = false after SetChecksum()")
	}
	if packet.Header.Checksum[0] != 0 || packet.Header.Checksum[1] != 0 || packet.Header.Checksum[2] != 0 || packet.Header.Checksum[3] != 0 {
		t.Errorf("upper 32 bits of the checksum must be zero, got %X", packet.Header.Checksum)
	}

	// Check that packet is not modified except for the checksum
	if headerBefore.PktNum != packet.Header.PktNum ||
		headerBefore.Length != packet.Header.Length ||
		!bytes.Equal(payloadBefore, packet.Payload) {
		t.Errorf("SetChecksum() modified packet unexpectedly:\n - before = %v\n - after  = %v", headerBefore, packet)
	}

	// Checksum survives the wire
	parsed, err := ParsePacket(packet.ToByteArray())
	if err != nil {
		t.Fatalf("ParsePacket() unexpected error: %v", err)
	}
	if !VerifyChecksum(parsed) {
		t.Errorf("VerifyChecksum() = false after parsing serialized packet")
	}
}

func TestVerifyChecksumDetectsSingleBitFlips(t *testing.T) {
	packet := NewPacket(42, []byte("The quick brown fox jumps over the lazy dog"))
	SetChecksum(packet)
	raw := packet.ToByteArray()

	for i := 0; i < len(raw)*8; i++ {
		corrupted := append([]byte(nil), raw...)
		corrupted[i/8] ^= 1 << (i % 8)

		parsed, err := ParsePacket(corrupted)
		if err != nil {
			t.Fatalf("ParsePacket() unexpected error: %v", err)
		}
		if VerifyChecksum(parsed) {
			t.Fatalf("VerifyChecksum() = true with bit %d flipped", i)
		}
	}
}

func TestVerifyChecksumCoversPadding(t *testing.T) {
	packet := NewPacket(1, []byte("abc"))
	packet.Payload = append(packet.Payload, 0, 0, 0)
	SetChecksum(packet)

	packet.Payload[5] = 1
	if VerifyChecksum(packet) {
		t.Errorf("VerifyChecksum() = true after modifying padding")
	}
}
