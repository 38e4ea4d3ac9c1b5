package pkt

import (
	"bytes"
	"errors"
	"testing"
)

func TestParsePacket(t *testing.T) {
	raw := []byte{
		0, 0, 0, 0, 0xde, 0xad, 0xbe, 0xef, // checksum
		0, 0, 0, 7, // packet number
		0, 0, 0, 3, // length
		'a', 'b', 'c', 0, 0, // payload + padding
	}

	packet, err := ParsePacket(raw)
	if err != nil {
		t.Fatalf("ParsePacket() unexpected error: %v", err)
	}

	if packet.GetChecksum() != 0xdeadbeef {
		t.Errorf("GetChecksum() = 0x%X, expected 0xDEADBEEF", packet.GetChecksum())
	}
	if packet.GetPktNum() != 7 {
		t.Errorf("GetPktNum() = %d, expected 7", packet.GetPktNum())
	}
	if packet.GetLength() != 3 {
		t.Errorf("GetLength() = %d, expected 3", packet.GetLength())
	}
	if err := packet.ValidateLength(); err != nil {
		t.Fatalf("ValidateLength() unexpected error: %v", err)
	}
	if !bytes.Equal(packet.Data(), []byte("abc")) {
		t.Errorf("Data() = %q, expected %q", packet.Data(), "abc")
	}
	if !bytes.Equal(packet.ToByteArray(), raw) {
		t.Errorf("ToByteArray() = %x, expected %x", packet.ToByteArray(), raw)
	}

	// The payload must not alias the receive buffer
	raw[16] = 'z'
	if packet.Payload[0] != 'a' {
		t.Errorf("payload aliases the input buffer")
	}
}

func TestParsePacketTruncated(t *testing.T) {
	for _, n := range []int{0, 1, 8, 15} {
		_, err := ParsePacket(make([]byte, n))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("ParsePacket(%d bytes) error = %v, expected ErrTruncated", n, err)
		}
	}

	packet, err := ParsePacket(make([]byte, 16))
	if err != nil {
		t.Fatalf("ParsePacket(16 bytes) unexpected error: %v", err)
	}
	if len(packet.Payload) != 0 || packet.GetLength() != 0 {
		t.Errorf("expected empty packet, got %v", packet)
	}
}

func TestValidateLength(t *testing.T) {
	tests := []struct {
		name    string
		length  uint32
		payload int
		wantErr bool
	}{
		{"Exact", 10, 10, false},
		{"Padded", 5, 984, false},
		{"Empty", 0, 0, false},
		{"Maximum", 984, 984, false},
		{"Longer Than Received", 11, 10, true},
		{"Longer Than Maximum", 985, 990, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packet := NewPacket(1, make([]byte, tt.payload))
			packet.Header.Length = [4]byte{byte(tt.length >> 24), byte(tt.length >> 16), byte(tt.length >> 8), byte(tt.length)}

			err := packet.ValidateLength()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrBadLength) {
				t.Errorf("ValidateLength() error = %v, expected ErrBadLength", err)
			}
		})
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		length   int
		expected string
	}{
		{"Plain", []byte("out.bin"), 7, "out.bin"},
		{"NUL Padding In Length", []byte("out.bin\x00\x00"), 9, "out.bin"},
		{"Space Padding", []byte("dir/file.txt   \n"), 16, "dir/file.txt"},
		{"Padding After Length Ignored", []byte("a.txt\x00\x00\x00"), 5, "a.txt"},
		{"Inner Spaces Kept", []byte("my file.txt "), 12, "my file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packet := NewPacket(0, tt.payload[:tt.length])
			packet.Payload = tt.payload

			if got := packet.Path(); got != tt.expected {
				t.Errorf("Path() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
