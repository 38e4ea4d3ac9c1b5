package protocol

import "testing"

func TestControlBytes(t *testing.T) {
	tests := []struct {
		name     string
		control  Control
		expected string
	}{
		{"Acknowledgment", Ack, "notCorrupted"},
		{"Negative Acknowledgment", Nak, "corrupted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.control.Bytes()); got != tt.expected {
				t.Errorf("Bytes() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestControlBytesNotShared(t *testing.T) {
	b := Ack.Bytes()
	b[0] = 'X'

	if string(Ack.Bytes()) != ACK_TOKEN {
		t.Errorf("Bytes() returned shared storage")
	}
}
